package constraint

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isinlor/guitar/pkg/models"
)

func fg(s, fret, finger int) models.Fingering {
	return models.Fingering{String: s, Fret: fret, Finger: finger}
}

func randomFingering(rng *rand.Rand) models.Fingering {
	fret := rng.Intn(8)
	finger := 0
	if fret > 0 {
		finger = 1 + rng.Intn(4)
	}
	return fg(1+rng.Intn(6), fret, finger)
}

func randomTrack(rng *rand.Rand, n int) ([]models.NoteEvent, []models.Fingering) {
	notes := make([]models.NoteEvent, n)
	a := make([]models.Fingering, n)
	var t int64
	for i := range notes {
		notes[i] = models.NoteEvent{Pitch: models.Pitch(40 + rng.Intn(6)), StartTimeMs: t, DurationMs: 100}
		t += int64(rng.Intn(3) * 50) // includes simultaneous onsets
		a[i] = randomFingering(rng)
	}
	return notes, a
}

func TestHandMovementConcrete(t *testing.T) {
	tests := []struct {
		name string
		a    []models.Fingering
		want int
	}{
		{"matched movement", []models.Fingering{fg(1, 1, 1), fg(1, 2, 2)}, 0},
		{"one fret up", []models.Fingering{fg(1, 1, 1), fg(1, 2, 1)}, 7},
		{"two frets up", []models.Fingering{fg(1, 1, 1), fg(1, 3, 1)}, 10},
		{"finger reach", []models.Fingering{fg(1, 1, 1), fg(1, 1, 3)}, 10},
		{"up the neck", []models.Fingering{fg(1, 1, 1), fg(1, 12, 1)}, 127},
		{"down the neck", []models.Fingering{fg(1, 8, 1), fg(1, 1, 1)}, 55},
		{"open string bridged", []models.Fingering{fg(1, 1, 1), fg(2, 0, 0), fg(1, 2, 2)}, 0},
		{"open string at the edges", []models.Fingering{fg(2, 0, 0), fg(1, 3, 1), fg(2, 0, 0)}, 0},
		{"two shifts", []models.Fingering{fg(1, 1, 1), fg(1, 2, 1), fg(1, 1, 1)}, 6 + 6 + 16},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandMovementPenalty(tt.a))
			assert.Equal(t, tt.want, NewHandMovement(tt.a).Penalty())
		})
	}
}

func TestFingerCrossingPenalty(t *testing.T) {
	assert.Equal(t, 0, FingerCrossingPenalty([]models.Fingering{fg(1, 1, 1), fg(1, 2, 2), fg(1, 3, 3)}))
	assert.Equal(t, 1, FingerCrossingPenalty([]models.Fingering{fg(1, 1, 2), fg(1, 2, 1)}))
	assert.Equal(t, 1, FingerCrossingPenalty([]models.Fingering{fg(1, 2, 1), fg(1, 2, 2)}))
	// fret drops to an open string while the finger drops to zero
	assert.Equal(t, 0, FingerCrossingPenalty([]models.Fingering{fg(1, 2, 1), fg(1, 0, 0)}))
}

func TestFingerVelocityPenalty(t *testing.T) {
	notes := []models.NoteEvent{{Pitch: 60, StartTimeMs: 0}, {Pitch: 62, StartTimeMs: 100}, {Pitch: 64, StartTimeMs: 100}}
	tests := []struct {
		name string
		a    []models.Fingering
		want int
	}{
		{"same finger slides", []models.Fingering{fg(1, 1, 1), fg(1, 3, 1), fg(1, 3, 2)}, 100},
		{"different fingers", []models.Fingering{fg(1, 1, 1), fg(1, 3, 3), fg(1, 5, 1)}, 0},
		{"open string", []models.Fingering{fg(1, 0, 0), fg(1, 3, 1), fg(1, 0, 0)}, 0},
		{"simultaneous onset", []models.Fingering{fg(1, 1, 2), fg(1, 3, 1), fg(2, 3, 1)}, 1000},
		{"string change", []models.Fingering{fg(1, 1, 1), fg(2, 1, 1), fg(2, 1, 2)}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FingerVelocityPenalty(notes, tt.a))
			assert.Equal(t, tt.want, NewFingerVelocity(notes, tt.a).Penalty())
		})
	}
}

func TestFingerVelocityRoundsEachPair(t *testing.T) {
	notes := []models.NoteEvent{{Pitch: 60, StartTimeMs: 0}, {Pitch: 62, StartTimeMs: 3}, {Pitch: 64, StartTimeMs: 6}}
	a := []models.Fingering{fg(1, 1, 1), fg(2, 1, 1), fg(3, 1, 1)}
	// each pair is ceil(1000/3) = 334; a rounded total would give 667
	assert.Equal(t, 668, FingerVelocityPenalty(notes, a))
	assert.Equal(t, 668, NewFingerVelocity(notes, a).Penalty())
}

func TestFingerStringJumpingPenalty(t *testing.T) {
	a := []models.Fingering{
		fg(1, 1, 1),
		fg(6, 0, 0), // open strings never move a finger
		fg(3, 1, 1),
		fg(4, 2, 2),
		fg(2, 1, 1),
		fg(4, 2, 2),
	}
	// finger 1: 1 -> 3 -> 2, finger 2 stays on string 4
	assert.Equal(t, 3, FingerStringJumpingPenalty(a))
	assert.Equal(t, 3, NewFingerStringJumping(a).Penalty())
}

func TestLessUsedFingeringsPerNotePenalty(t *testing.T) {
	notes := []models.NoteEvent{{Pitch: 45}, {Pitch: 45}, {Pitch: 45}, {Pitch: 50}, {Pitch: 50}}
	a := []models.Fingering{fg(5, 0, 0), fg(6, 5, 1), fg(5, 0, 0), fg(4, 0, 0), fg(5, 5, 1)}
	// pitch 45: one outlier; pitch 50: a tie, one of the two counts
	assert.Equal(t, 2, LessUsedFingeringsPerNotePenalty(notes, a))
	assert.Equal(t, 2, NewLessUsedFingeringsPerNote(notes, a).Penalty())
}

func TestCountingConstraints(t *testing.T) {
	a := []models.Fingering{fg(1, 3, 1), fg(2, 3, 1), fg(1, 5, 3), fg(1, 0, 0)}
	assert.Equal(t, 3, NewUniqueCount(MetricUniqueFrets, fretOf, a).Penalty())
	assert.Equal(t, 2, NewUniqueCount(MetricUniqueStrings, stringOf, a).Penalty())
	assert.Equal(t, 3, NewUniqueCount(MetricUniqueFretFingers, fretFingerOf, a).Penalty())
	assert.Equal(t, 4, NewUniqueCount(MetricUniqueFingerings, fingeringOf, a).Penalty())
	assert.Equal(t, 8, NewDistinctSum(MetricHighFrets, fretOf, a).Penalty())
	assert.Equal(t, 4, NewDistinctSum(MetricHighFingers, fingerOf, a).Penalty())
}

func TestCounter(t *testing.T) {
	c := NewCounter[string]()
	assert.True(t, c.Add("a"))
	assert.False(t, c.Add("a"))
	assert.True(t, c.Add("b"))
	assert.Equal(t, 2, c.Unique())
	assert.Equal(t, 2, c.Count("a"))
	assert.False(t, c.Remove("a"))
	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("missing"))
	assert.Equal(t, 1, c.Unique())
}

func TestIncrementalMatchesPure(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, m := range Metrics {
		t.Run(m.Name, func(t *testing.T) {
			for _, n := range []int{1, 2, 7, 60} {
				notes, a := randomTrack(rng, n)
				sc := m.New(notes, a)
				require.Equal(t, m.Pure(notes, a), sc.Penalty(), "initial n=%d", n)
				for step := 0; step < 500; step++ {
					i := rng.Intn(n)
					to := randomFingering(rng)
					if rng.Intn(5) == 0 {
						to = a[i] // repeated fingering
					}
					sc.Apply(i, a[i], to)
					a[i] = to
					require.Equal(t, m.Pure(notes, a), sc.Penalty(), "n=%d step=%d", n, step)
				}
			}
		})
	}
}

func TestWeightedAndComposite(t *testing.T) {
	a := []models.Fingering{fg(1, 1, 1), fg(1, 2, 1)}
	hm := NewHandMovement(a)
	fc := NewFingerCrossing(a)
	c := NewComposite(Weighted{SoftConstraint: hm, Weight: 10}, fc)
	assert.Equal(t, 70+1, c.Penalty())
	assert.Len(t, c.Constraints(), 2)

	c.Apply(1, a[1], fg(1, 2, 2))
	assert.Equal(t, 0, c.Penalty())
	assert.Equal(t, MetricHandMovement, Weighted{SoftConstraint: hm, Weight: 2}.Name())
}

func TestComplexityAndReport(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	notes, a := randomTrack(rng, 40)
	w := DefaultWeights()

	total := Complexity(notes, a, w)
	assert.Equal(t, total, Build(notes, a, w).Penalty())

	r := NewReport(notes, a, w)
	assert.Equal(t, total, r.Total)
	assert.Len(t, r.Entries, len(Metrics))
	for _, e := range r.Entries {
		assert.Equal(t, e.Value*e.Weight, e.Weighted)
		if e.Metric == MetricUniqueStrings || e.Metric == MetricUniqueFingers {
			assert.Zero(t, e.Weight)
		}
	}
}

func TestComplexityIsOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	notes, a := randomTrack(rng, 30)
	w := DefaultWeights()

	updates := map[int]models.Fingering{3: fg(2, 4, 2), 11: fg(1, 0, 0), 20: fg(5, 7, 4), 29: fg(3, 2, 1)}
	order1 := []int{3, 11, 20, 29}
	order2 := []int{29, 20, 11, 3}

	s1 := NewStore(notes, a, w)
	s2 := NewStore(notes, a, w)
	for k := range order1 {
		s1.Set(order1[k], updates[order1[k]])
		s2.Set(order2[k], updates[order2[k]])
	}
	assert.Equal(t, s1.Assignment(), s2.Assignment())
	assert.Equal(t, s1.Penalty(), s2.Penalty())
	assert.Equal(t, Complexity(notes, s1.Assignment(), w), s1.Penalty())
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	assert.ErrorIs(t, Weights{"bogus": 1}.Validate(), models.ErrInvalidInput)
	assert.ErrorIs(t, Weights{MetricHandMovement: -1}.Validate(), models.ErrInvalidInput)
}
