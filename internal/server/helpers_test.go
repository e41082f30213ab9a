package server

import (
	"math"
	"testing"

	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/internal/search"
	"github.com/Isinlor/guitar/pkg/logger"
	"github.com/Isinlor/guitar/pkg/models"
)

// melody is a short phrase in E minor.
var melody = []models.Pitch{52, 55, 57, 59, 62, 59, 57, 55, 52, 50, 52, 55}

func track(pitches ...models.Pitch) []models.NoteEvent {
	notes := make([]models.NoteEvent, len(pitches))
	for i, p := range pitches {
		notes[i] = models.NoteEvent{Pitch: p, StartTimeMs: int64(i) * 250, DurationMs: 250}
	}
	return notes
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	registry, err := fretboard.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	opts := search.DefaultOptions()
	opts.Seed = 7
	opts.Budget.BaseSteps = 1000
	return NewService(registry, opts, NewRunStore(10)).WithLogger(logger.Discard())
}

// largeComplexity does not fit in an int32.
const largeComplexity = math.MaxInt32 * 3

// storeLargeRun stores a run whose complexity exceeds the int32 range and
// returns its id.
func storeLargeRun(t *testing.T, svc *Service) (string, *FingerTrackResponse) {
	t.Helper()
	resp := &FingerTrackResponse{
		InstrumentName: "guitar",
		Complexity:     largeComplexity,
		Seed:           7,
		Notes: []models.FingeredNote{{
			NoteEvent: models.NoteEvent{Pitch: 41, DurationMs: 250},
			Fingering: models.Fingering{String: 6, Fret: 1, Finger: 1},
		}},
	}
	id, err := svc.store.Put(resp)
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	return id, resp
}

// leapingTrack cycles wide leaps across the neck so that the hand keeps
// moving, which drives the hand movement term past the int32 range.
func leapingTrack(n int) []models.NoteEvent {
	var cycle []models.Pitch
	for p := models.Pitch(41); p <= 76; p += 7 {
		cycle = append(cycle, p)
	}
	for p := models.Pitch(70); p >= 52; p -= 6 {
		cycle = append(cycle, p)
	}
	pitches := make([]models.Pitch, n)
	for i := range pitches {
		pitches[i] = cycle[i%len(cycle)]
	}
	return track(pitches...)
}
