package fretboard

import (
	"fmt"

	"github.com/Isinlor/guitar/pkg/models"
)

// FretWindow is an inclusive span of frets [Lo, Hi] the fretting hand
// covers. Open strings are always reachable regardless of the window.
type FretWindow struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Width is the number of frets in the window.
func (w FretWindow) Width() int {
	return w.Hi - w.Lo + 1
}

// Admits reports whether a fret can be played with the hand on w.
func (w FretWindow) Admits(fret int) bool {
	return fret == 0 || (fret >= w.Lo && fret <= w.Hi)
}

func (w FretWindow) String() string {
	return fmt.Sprintf("[%d,%d]", w.Lo, w.Hi)
}

// ViableFretWindows enumerates every window, over the span of all frets
// at which the pitches occur, in which each pitch has at least one position.
// Windows are ordered by Lo, then Hi.
func (in *Instrument) ViableFretWindows(pitches []models.Pitch) ([]FretWindow, error) {
	unique := models.UniquePitches(pitches)
	if len(unique) == 0 {
		return nil, fmt.Errorf("%w: no pitches to place on the %s", models.ErrInvalidInput, in.name)
	}

	fretsPerPitch := make([][]int, len(unique))
	lo, hi := in.frets, 0
	for i, p := range unique {
		frets, err := in.fretsFor(p)
		if err != nil {
			return nil, err
		}
		fretsPerPitch[i] = frets
		for _, f := range frets {
			lo = min(lo, f)
			hi = max(hi, f)
		}
	}

	var windows []FretWindow
	for i := lo; i <= hi; i++ {
		for j := i; j <= hi; j++ {
			w := FretWindow{Lo: i, Hi: j}
			if coversAll(w, fretsPerPitch) {
				windows = append(windows, w)
			}
		}
	}

	if len(windows) == 0 {
		return nil, &models.NoViableFretRangeError{Instrument: in.name, Pitches: unique}
	}
	return windows, nil
}

func coversAll(w FretWindow, fretsPerPitch [][]int) bool {
	for _, frets := range fretsPerPitch {
		covered := false
		for _, f := range frets {
			if w.Admits(f) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// SmallestFretWindows returns the viable windows of minimal width.
func (in *Instrument) SmallestFretWindows(pitches []models.Pitch) ([]FretWindow, error) {
	windows, err := in.ViableFretWindows(pitches)
	if err != nil {
		return nil, err
	}
	return narrowest(windows), nil
}

func narrowest(windows []FretWindow) []FretWindow {
	width := windows[0].Width()
	for _, w := range windows[1:] {
		width = min(width, w.Width())
	}
	out := make([]FretWindow, 0, len(windows))
	for _, w := range windows {
		if w.Width() == width {
			out = append(out, w)
		}
	}
	return out
}

// LowestSmallestFretWindow returns the smallest window starting lowest on
// the neck.
func (in *Instrument) LowestSmallestFretWindow(pitches []models.Pitch) (FretWindow, error) {
	windows, err := in.SmallestFretWindows(pitches)
	if err != nil {
		return FretWindow{}, err
	}
	best := windows[0]
	for _, w := range windows[1:] {
		if w.Lo < best.Lo {
			best = w
		}
	}
	return best, nil
}
