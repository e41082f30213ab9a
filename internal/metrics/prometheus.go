package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Isinlor/guitar/internal/search"
	"github.com/Isinlor/guitar/pkg/models"
)

const namespace = "guitar"

// Run outcomes used as the result label.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid_input"
	ResultUnreachable = "unreachable"
	ResultNoRange     = "no_viable_range"
	ResultCanceled    = "canceled"
	ResultError       = "error"
)

// Recorder exports fingering run metrics to Prometheus.
type Recorder struct {
	runs       *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	complexity *prometheus.HistogramVec
	notes      prometheus.Histogram
	stages     *prometheus.HistogramVec
}

// NewRecorder registers the run metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Fingering runs by instrument and result.",
		}, []string{"instrument", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of fingering runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"instrument"}),
		complexity: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_complexity",
			Help:      "Final complexity of successful runs.",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 12),
		}, []string{"instrument"}),
		notes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_notes",
			Help:      "Track length of successful runs.",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 10),
		}),
		stages: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"stage"}),
	}
}

// ObserveRun records a finished run. res may be nil when err is set.
func (r *Recorder) ObserveRun(instrument string, res *search.Result, err error, elapsed time.Duration) {
	r.runs.WithLabelValues(instrument, ResultLabel(err)).Inc()
	r.duration.WithLabelValues(instrument).Observe(elapsed.Seconds())
	if err != nil || res == nil {
		return
	}
	r.complexity.WithLabelValues(instrument).Observe(float64(res.Complexity))
	r.notes.Observe(float64(len(res.Notes)))
}

// ObserveStage records one pipeline stage.
func (r *Recorder) ObserveStage(sr search.StageResult) {
	r.stages.WithLabelValues(string(sr.Stage)).Observe(sr.Duration.Seconds())
}

// ResultLabel classifies a run error.
func ResultLabel(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrUnknownInstrument):
		return ResultInvalid
	case errors.Is(err, models.ErrUnreachablePitch):
		return ResultUnreachable
	case errors.Is(err, models.ErrNoViableFretRange):
		return ResultNoRange
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultError
	}
}
