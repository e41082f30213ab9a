package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Isinlor/guitar/internal/search"
	"github.com/Isinlor/guitar/pkg/models"
)

func TestRecorderObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	res := &search.Result{Instrument: "guitar", Complexity: 150, Notes: make([]models.FingeredNote, 12)}
	r.ObserveRun("guitar", res, nil, 20*time.Millisecond)
	r.ObserveRun("guitar", res, nil, 30*time.Millisecond)
	r.ObserveRun("guitar", nil, &models.UnreachablePitchError{Instrument: "guitar", Pitch: 10}, time.Millisecond)

	if got := testutil.ToFloat64(r.runs.WithLabelValues("guitar", ResultOK)); got != 2 {
		t.Errorf("ok runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.runs.WithLabelValues("guitar", ResultUnreachable)); got != 1 {
		t.Errorf("unreachable runs = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.complexity); got != 1 {
		t.Errorf("complexity series = %d, want 1", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestRecorderObserveStage(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	r.ObserveStage(search.StageResult{Stage: search.StageLocalSearch, Duration: time.Millisecond})
	r.ObserveStage(search.StageResult{Stage: search.StageExhaustive, Duration: time.Millisecond})

	if got := testutil.CollectAndCount(r.stages); got != 2 {
		t.Errorf("stage series = %d, want 2", got)
	}
}

func TestRecorderRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected duplicate registration to panic")
		}
	}()
	NewRecorder(reg)
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ResultOK},
		{fmt.Errorf("wrap: %w", models.ErrInvalidInput), ResultInvalid},
		{&models.UnknownInstrumentError{Name: "lute"}, ResultInvalid},
		{&models.UnreachablePitchError{Pitch: 1}, ResultUnreachable},
		{&models.NoViableFretRangeError{}, ResultNoRange},
		{context.Canceled, ResultCanceled},
		{context.DeadlineExceeded, ResultCanceled},
		{errors.New("boom"), ResultError},
	}
	for _, tt := range tests {
		if got := ResultLabel(tt.err); got != tt.want {
			t.Errorf("ResultLabel(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
