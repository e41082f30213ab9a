package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isinlor/guitar/internal/constraint"
	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

func track(pitches ...models.Pitch) []models.NoteEvent {
	notes := make([]models.NoteEvent, len(pitches))
	for i, p := range pitches {
		notes[i] = models.NoteEvent{Pitch: p, StartTimeMs: int64(i) * 250, DurationMs: 250}
	}
	return notes
}

// melody is a short phrase in E minor.
var melody = []models.Pitch{52, 55, 57, 59, 62, 59, 57, 55, 52, 50, 52, 55, 59, 57, 55, 52}

func newSearcher(t *testing.T, seed int64, pitches ...models.Pitch) *Searcher {
	t.Helper()
	notes := track(pitches...)
	set, err := fretboard.Guitar().CandidateFingerings(models.Pitches(notes))
	require.NoError(t, err)
	perNote, err := set.PerNote(models.Pitches(notes))
	require.NoError(t, err)
	s, err := NewSearcher(notes, perNote, constraint.DefaultWeights(), utils.NewRandSource(seed))
	require.NoError(t, err)
	return s
}

func TestNewSearcherRejectsMismatch(t *testing.T) {
	_, err := NewSearcher(track(40, 41), [][]models.Fingering{{{String: 6, Fret: 0}}}, nil, utils.NewRandSource(1))
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = NewSearcher(track(40), [][]models.Fingering{{}}, nil, utils.NewRandSource(1))
	assert.ErrorIs(t, err, models.ErrNoFingeringAlternatives)
}

func TestRandomAssignmentDrawsFromCandidates(t *testing.T) {
	s := newSearcher(t, 7, melody...)
	a := s.RandomAssignment()
	require.Len(t, a, len(melody))
	for i, f := range a {
		assert.Contains(t, s.candidates[i], f)
	}
}

func TestLocalSearchNeverWorsens(t *testing.T) {
	s := newSearcher(t, 11, melody...)
	store := s.NewStore(s.RandomAssignment())
	before := store.Penalty()

	require.NoError(t, s.LocalSearch(context.Background(), store, 2000, 3))

	assert.LessOrEqual(t, store.Penalty(), before)
	assert.Equal(t, s.Complexity(store.Assignment()), store.Penalty())
}

func TestLocalSearchHonoursCancellation(t *testing.T) {
	s := newSearcher(t, 11, melody...)
	store := s.NewStore(s.RandomAssignment())
	before := store.Assignment()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.LocalSearch(ctx, store, 1000, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, store.Assignment())
}

func TestRandomRestartIsDeterministic(t *testing.T) {
	a, scoreA, err := newSearcher(t, 99, melody...).RandomRestart(context.Background(), 4, 300, 5)
	require.NoError(t, err)
	b, scoreB, err := newSearcher(t, 99, melody...).RandomRestart(context.Background(), 4, 300, 5)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, scoreA, scoreB)
	assert.Equal(t, constraint.Complexity(track(melody...), a, constraint.DefaultWeights()), scoreA)
}

func TestRandomRestartRequiresRestarts(t *testing.T) {
	_, _, err := newSearcher(t, 1, melody...).RandomRestart(context.Background(), 0, 10, 5)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestExhaustiveDepthZeroIsNoop(t *testing.T) {
	s := newSearcher(t, 3, melody...)
	store := s.NewStore(s.RandomAssignment())
	before := store.Assignment()

	require.NoError(t, s.Exhaustive(context.Background(), store, 0, 0, store.Len()))
	assert.Equal(t, before, store.Assignment())
}

func TestExhaustiveReachesSingleChangeOptimum(t *testing.T) {
	s := newSearcher(t, 5, melody...)
	store := s.NewStore(s.RandomAssignment())
	before := store.Penalty()

	require.NoError(t, s.Exhaustive(context.Background(), store, 1, 0, store.Len()))
	require.LessOrEqual(t, store.Penalty(), before)

	best := store.Assignment()
	for i := range best {
		for _, f := range s.candidates[i] {
			alt := append([]models.Fingering(nil), best...)
			alt[i] = f
			assert.GreaterOrEqual(t, s.Complexity(alt), store.Penalty(), "note %d fingering %+v", i, f)
		}
	}
}

func TestExhaustiveRespectsRange(t *testing.T) {
	s := newSearcher(t, 5, melody...)
	store := s.NewStore(s.RandomAssignment())
	before := store.Assignment()

	require.NoError(t, s.Exhaustive(context.Background(), store, 1, 4, 8))
	after := store.Assignment()
	assert.Equal(t, before[:4], after[:4])
	assert.Equal(t, before[8:], after[8:])
}

func TestSlidingWindowNeverWorsens(t *testing.T) {
	s := newSearcher(t, 17, melody...)
	store := s.NewStore(s.RandomAssignment())
	before := store.Penalty()

	require.NoError(t, s.SlidingWindow(context.Background(), store, DefaultWindowOptions()))
	assert.LessOrEqual(t, store.Penalty(), before)
	assert.Equal(t, s.Complexity(store.Assignment()), store.Penalty())
}

func TestSlidingWindowShortTrackIsNoop(t *testing.T) {
	s := newSearcher(t, 17, 52, 55, 57)
	store := s.NewStore(s.RandomAssignment())
	before := store.Assignment()

	require.NoError(t, s.SlidingWindow(context.Background(), store, DefaultWindowOptions()))
	assert.Equal(t, before, store.Assignment())
}

func TestSlidingWindowRejectsBadOptions(t *testing.T) {
	s := newSearcher(t, 1, melody...)
	err := s.SlidingWindow(context.Background(), s.NewStore(s.RandomAssignment()), WindowOptions{Size: 0, Step: 1})
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}
