package fretboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isinlor/guitar/pkg/models"
)

func span(from, to int) []int {
	out := []int{}
	for t := from; t <= to; t++ {
		out = append(out, t)
	}
	return out
}

func TestPossibleTranspositions(t *testing.T) {
	g := Guitar()
	tests := []struct {
		name    string
		pitches []models.Pitch
		want    []int
	}{
		{"lowest note", []models.Pitch{40}, span(0, 36)},
		{"highest note", []models.Pitch{76}, span(-36, 0)},
		{"full range", []models.Pitch{40, 76}, []int{0}},
		{"scale", []models.Pitch{45, 50, 55, 59}, span(-5, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.PossibleTranspositions(tt.pitches)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := g.PossibleTranspositions(nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestTranspositionsWithSmallestFretRange(t *testing.T) {
	g := Guitar()
	tests := []struct {
		name     string
		pitches  []models.Pitch
		want     []int
		lowest   int
		accurate int
	}{
		{"lowest note", []models.Pitch{40}, span(0, 36), 0, 0},
		{"highest note", []models.Pitch{76}, span(-36, 0), -36, 0},
		{"full range", []models.Pitch{40, 76}, []int{0}, 0, 0},
		{"shift down one", []models.Pitch{41, 76}, []int{-1}, -1, -1},
		{"open strings", []models.Pitch{45, 50, 55, 59}, append([]int{-5, -4}, span(0, 12)...), -5, 0},
		{"E major scale", []models.Pitch{44, 46, 47, 49, 51, 52, 54, 56}, []int{-4, 1}, -4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.TranspositionsWithSmallestFretRange(tt.pitches)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			lowest, err := g.LowestTransposition(tt.pitches)
			require.NoError(t, err)
			assert.Equal(t, tt.lowest, lowest)

			accurate, err := g.MostAccurateTransposition(tt.pitches)
			require.NoError(t, err)
			assert.Equal(t, tt.accurate, accurate)
		})
	}
}

func TestMostAccurateTranspositionPrefersLowerOnTie(t *testing.T) {
	// only the octave shifts -12 and +12 fit a single fret window here
	in, err := New("two-octave", 0, map[int]float64{1: models.FrequencyFromPitch(48), 2: models.FrequencyFromPitch(72)})
	require.NoError(t, err)
	ts, err := in.TranspositionsWithSmallestFretRange([]models.Pitch{60})
	require.NoError(t, err)
	assert.Equal(t, []int{-12, 12}, ts)

	best, err := in.MostAccurateTransposition([]models.Pitch{60})
	require.NoError(t, err)
	assert.Equal(t, -12, best)
}

func TestTranspositionsEmpty(t *testing.T) {
	_, err := Guitar().TranspositionsWithSmallestFretRange(nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestTranspositionsTooWide(t *testing.T) {
	_, err := Ukulele().TranspositionsWithSmallestFretRange([]models.Pitch{40, 76})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnreachablePitch)
}
