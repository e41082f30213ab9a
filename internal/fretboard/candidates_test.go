package fretboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isinlor/guitar/pkg/models"
)

func TestCandidateFingerings(t *testing.T) {
	g := Guitar()
	tests := []struct {
		name    string
		pitches []models.Pitch
		fingers []int
		want    CandidateSet
	}{
		{
			name:    "open string only",
			pitches: []models.Pitch{40},
			want:    CandidateSet{40: {{String: 6, Fret: 0, Finger: 0}}},
		},
		{
			name:    "window on the nut keeps only the open string",
			pitches: []models.Pitch{45},
			want:    CandidateSet{45: {{String: 5, Fret: 0, Finger: 0}}},
		},
		{
			name:    "window widened upwards for three fingers",
			pitches: []models.Pitch{41},
			fingers: []int{1, 2, 3},
			want: CandidateSet{41: {
				{String: 6, Fret: 1, Finger: 1},
				{String: 6, Fret: 1, Finger: 2},
				{String: 6, Fret: 1, Finger: 3},
			}},
		},
		{
			name:    "E and F share the first fret window",
			pitches: []models.Pitch{40, 41},
			want: CandidateSet{
				40: {{String: 6, Fret: 0, Finger: 0}},
				41: {{String: 6, Fret: 1, Finger: 1}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.CandidateFingerings(tt.pitches, tt.fingers...)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CandidateFingerings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCandidateFingeringsScale(t *testing.T) {
	g := Guitar()
	pitches := []models.Pitch{44, 46, 47, 49, 51, 52, 54, 56}
	set, err := g.CandidateFingerings(pitches)
	require.NoError(t, err)

	// window [1,4]: every pitch has exactly one fretted position, four fingers each
	assert.Equal(t, 32, set.Total())
	assert.Equal(t, []models.Fingering{
		{String: 6, Fret: 4, Finger: 1},
		{String: 6, Fret: 4, Finger: 2},
		{String: 6, Fret: 4, Finger: 3},
		{String: 6, Fret: 4, Finger: 4},
	}, set[44])
}

func TestCandidateFingeringsNeverMixOpenAndFinger(t *testing.T) {
	for _, in := range []*Instrument{Guitar(), Ukulele(), Kantele()} {
		t.Run(in.Name(), func(t *testing.T) {
			r := in.Range()
			for lo := r.Lowest; lo+4 <= r.Highest; lo += 3 {
				pitches := []models.Pitch{}
				for p := lo; p <= lo+4; p++ {
					if in.CanPlay(p) {
						pitches = append(pitches, p)
					}
				}
				if len(pitches) == 0 {
					continue
				}
				set, err := in.CandidateFingerings(pitches)
				require.NoError(t, err)
				for p, fingerings := range set {
					require.NotEmpty(t, fingerings, "pitch %d", p)
					for _, f := range fingerings {
						if f.Fret == 0 {
							assert.Zero(t, f.Finger, "%+v", f)
						} else {
							assert.NotZero(t, f.Finger, "%+v", f)
						}
						assert.Equal(t, p, in.PositionToPitch(f.Position()))
					}
				}
			}
		})
	}
}

func TestCandidateFingeringsInvalidFingers(t *testing.T) {
	g := Guitar()
	for _, fingers := range [][]int{{0}, {5}, {1, 1}} {
		_, err := g.CandidateFingerings([]models.Pitch{41}, fingers...)
		assert.ErrorIs(t, err, models.ErrInvalidInput, "%v", fingers)
	}
}

func TestWidenStopsAtLastFret(t *testing.T) {
	short, err := New("short", 2, map[int]float64{1: 110})
	require.NoError(t, err)
	set, err := short.CandidateFingerings([]models.Pitch{46}, 1, 2, 3, 4)
	require.NoError(t, err)
	assert.Len(t, set[46], 4)
}

func TestWidenFromNut(t *testing.T) {
	g := Guitar()
	tests := []struct {
		name string
		in   FretWindow
		n    int
		want FretWindow
	}{
		{"nut window starts at first fret", FretWindow{Lo: 0, Hi: 0}, 4, FretWindow{Lo: 1, Hi: 4}},
		{"nut window reaching up keeps its top", FretWindow{Lo: 0, Hi: 2}, 4, FretWindow{Lo: 1, Hi: 4}},
		{"wide enough nut window is untouched", FretWindow{Lo: 0, Hi: 0}, 1, FretWindow{Lo: 0, Hi: 0}},
		{"fretted window lowers first", FretWindow{Lo: 3, Hi: 3}, 2, FretWindow{Lo: 2, Hi: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.widen(tt.in, tt.n))
		})
	}

	set, err := g.CandidateFingerings([]models.Pitch{40, 45}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Fingering{{String: 5, Fret: 0, Finger: 0}}, set[45])
}

func TestPerNote(t *testing.T) {
	g := Guitar()
	track := []models.Pitch{40, 41, 40}
	set, err := g.CandidateFingerings(track)
	require.NoError(t, err)

	perNote, err := set.PerNote(track)
	require.NoError(t, err)
	require.Len(t, perNote, 3)
	assert.Equal(t, set[40], perNote[0])
	assert.Equal(t, set[41], perNote[1])

	_, err = set.PerNote([]models.Pitch{50})
	assert.ErrorIs(t, err, models.ErrNoFingeringAlternatives)
}
