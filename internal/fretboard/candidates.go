package fretboard

import (
	"fmt"

	"github.com/Isinlor/guitar/pkg/models"
)

// MaxFingers is the number of fretting fingers.
const MaxFingers = models.MaxFinger

// CandidateSet maps every pitch to the fingerings allowed for it.
type CandidateSet map[models.Pitch][]models.Fingering

// Total counts the candidates over all pitches of the set.
func (c CandidateSet) Total() int {
	total := 0
	for _, fingerings := range c {
		total += len(fingerings)
	}
	return total
}

// PerNote expands the set into one candidate list per note of a track.
// The lists are shared with the set and must not be modified.
func (c CandidateSet) PerNote(pitches []models.Pitch) ([][]models.Fingering, error) {
	out := make([][]models.Fingering, len(pitches))
	for i, p := range pitches {
		fingerings, ok := c[p]
		if !ok || len(fingerings) == 0 {
			return nil, &models.NoFingeringAlternativesError{Pitch: p}
		}
		out[i] = fingerings
	}
	return out, nil
}

// CandidateFingerings computes the candidate fingerings for a set of pitches.
// The hand is placed on the lowest smallest fret window; if it spans fewer
// frets than there are fingers, it is widened down towards fret 1 and then
// up the neck. Fretted positions inside the window pair with every finger;
// open positions pair with finger 0 only.
//
// When fingers is empty, as many fingers as the window is wide are used
// (one to four).
func (in *Instrument) CandidateFingerings(pitches []models.Pitch, fingers ...int) (CandidateSet, error) {
	unique := models.UniquePitches(pitches)
	window, err := in.LowestSmallestFretWindow(unique)
	if err != nil {
		return nil, err
	}

	if len(fingers) == 0 {
		n := max(min(MaxFingers, window.Width()), 1)
		fingers = make([]int, n)
		for i := range fingers {
			fingers[i] = i + 1
		}
	} else if err := validateFingers(fingers); err != nil {
		return nil, err
	}

	window = in.widen(window, len(fingers))

	set := make(CandidateSet, len(unique))
	for _, p := range unique {
		positions := in.positions[p]
		var candidates []models.Fingering
		for _, finger := range fingers {
			for _, pos := range positions {
				if pos.Open() || !window.Admits(pos.Fret) {
					continue
				}
				candidates = append(candidates, models.Fingering{String: pos.String, Fret: pos.Fret, Finger: finger})
			}
		}
		for _, pos := range positions {
			if pos.Open() {
				candidates = append(candidates, models.Fingering{String: pos.String, Fret: 0, Finger: 0})
			}
		}
		if len(candidates) == 0 {
			return nil, &models.NoFingeringAlternativesError{
				Instrument: in.name, Pitch: p, Lo: window.Lo, Hi: window.Hi, Fingers: fingers,
			}
		}
		set[p] = candidates
	}
	return set, nil
}

// widen grows w until it spans at least n frets, lowering Lo while it is
// above fret 1 and then raising Hi, never past the last fret. A window
// resting on the nut starts from fret 1, since open strings need no finger.
func (in *Instrument) widen(w FretWindow, n int) FretWindow {
	if w.Width() < n && w.Lo == 0 && in.frets > 0 {
		w.Lo, w.Hi = 1, max(w.Hi, 1)
	}
	for w.Width() < n {
		switch {
		case w.Lo > 1:
			w.Lo--
		case w.Hi < in.frets:
			w.Hi++
		default:
			return w
		}
	}
	return w
}

func validateFingers(fingers []int) error {
	seen := make(map[int]bool, len(fingers))
	for _, f := range fingers {
		if f < 1 || f > MaxFingers {
			return fmt.Errorf("%w: finger %d outside 1-%d", models.ErrInvalidInput, f, MaxFingers)
		}
		if seen[f] {
			return fmt.Errorf("%w: finger %d listed twice", models.ErrInvalidInput, f)
		}
		seen[f] = true
	}
	return nil
}
