package fretboard

import (
	"errors"
	"fmt"

	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

// PossibleTranspositions returns every shift between the one aligning the
// lowest pitch with the instrument's lowest note and the one aligning the
// highest pitch with its highest note, ascending.
func (in *Instrument) PossibleTranspositions(pitches []models.Pitch) ([]int, error) {
	if len(pitches) == 0 {
		return nil, fmt.Errorf("%w: no pitches to transpose", models.ErrInvalidInput)
	}
	lowest, highest := pitches[0], pitches[0]
	for _, p := range pitches[1:] {
		lowest = min(lowest, p)
		highest = max(highest, p)
	}

	r := in.Range()
	down := int(r.Lowest - lowest)
	up := int(r.Highest - highest)
	start, end := min(down, up), max(down, up)

	out := make([]int, 0, end-start+1)
	for t := start; t <= end; t++ {
		out = append(out, t)
	}
	return out, nil
}

// TranspositionsWithSmallestFretRange returns every transposition whose
// shifted pitch set fits the narrowest fret window found over all possible
// transpositions. Transpositions the instrument cannot play are skipped.
func (in *Instrument) TranspositionsWithSmallestFretRange(pitches []models.Pitch) ([]int, error) {
	unique := models.UniquePitches(pitches)
	candidates, err := in.PossibleTranspositions(unique)
	if err != nil {
		return nil, err
	}

	var (
		best     []int
		bestSize = -1
		lastErr  error
	)
	shifted := make([]models.Pitch, len(unique))
	for _, t := range candidates {
		for i, p := range unique {
			shifted[i] = p + models.Pitch(t)
		}
		windows, err := in.SmallestFretWindows(shifted)
		if err != nil {
			if errors.Is(err, models.ErrUnreachablePitch) || errors.Is(err, models.ErrNoViableFretRange) {
				lastErr = err
				continue
			}
			return nil, err
		}
		size := windows[0].Width()
		switch {
		case bestSize < 0 || size < bestSize:
			bestSize = size
			best = []int{t}
		case size == bestSize:
			best = append(best, t)
		}
	}

	if best == nil {
		if lastErr == nil {
			lastErr = &models.NoViableFretRangeError{Instrument: in.name, Pitches: unique}
		}
		return nil, fmt.Errorf("no transposition fits the %s: %w", in.name, lastErr)
	}
	return best, nil
}

// LowestTransposition returns the lowest transposition with the smallest
// fret range.
func (in *Instrument) LowestTransposition(pitches []models.Pitch) (int, error) {
	ts, err := in.TranspositionsWithSmallestFretRange(pitches)
	if err != nil {
		return 0, err
	}
	return ts[0], nil
}

// MostAccurateTransposition returns the transposition with the smallest fret
// range closest to zero, preferring the lower one on ties.
func (in *Instrument) MostAccurateTransposition(pitches []models.Pitch) (int, error) {
	ts, err := in.TranspositionsWithSmallestFretRange(pitches)
	if err != nil {
		return 0, err
	}
	best := ts[0]
	for _, t := range ts[1:] {
		if utils.Abs(t) < utils.Abs(best) {
			best = t
		}
	}
	return best, nil
}
