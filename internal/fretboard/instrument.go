package fretboard

import (
	"fmt"
	"math"
	"sort"

	"github.com/Isinlor/guitar/pkg/models"
)

// Instrument is a string instrument: a name, a fret count and the open
// frequency of every string.
type Instrument struct {
	name    string
	frets   int
	open    map[int]float64
	strings []int

	positions map[models.Pitch][]models.Position
	pitches   []models.Pitch
}

// PitchRange is the playable span of an instrument.
type PitchRange struct {
	Lowest  models.Pitch `json:"lowest" yaml:"lowest"`
	Highest models.Pitch `json:"highest" yaml:"highest"`
	// Span counts pitches from Lowest to Highest inclusive.
	Span int `json:"span" yaml:"span"`
}

// New builds a custom instrument from its open-string frequencies.
func New(name string, frets int, openFrequencies map[int]float64) (*Instrument, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: instrument name is required", models.ErrInvalidInput)
	}
	if frets < 0 {
		return nil, fmt.Errorf("%w: instrument %s has negative fret count %d", models.ErrInvalidInput, name, frets)
	}
	if len(openFrequencies) == 0 {
		return nil, fmt.Errorf("%w: instrument %s has no strings", models.ErrInvalidInput, name)
	}

	in := &Instrument{
		name:      name,
		frets:     frets,
		open:      make(map[int]float64, len(openFrequencies)),
		strings:   make([]int, 0, len(openFrequencies)),
		positions: make(map[models.Pitch][]models.Position),
	}
	for s, freq := range openFrequencies {
		if s < 1 {
			return nil, fmt.Errorf("%w: instrument %s: string numbers start at 1, got %d", models.ErrInvalidInput, name, s)
		}
		if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
			return nil, fmt.Errorf("%w: instrument %s: string %d has frequency %v", models.ErrInvalidInput, name, s, freq)
		}
		in.open[s] = freq
		in.strings = append(in.strings, s)
	}
	sort.Ints(in.strings)

	// strings ascending, then frets ascending
	for _, s := range in.strings {
		for fret := 0; fret <= frets; fret++ {
			pos := models.Position{String: s, Fret: fret}
			p := in.PositionToPitch(pos)
			if _, ok := in.positions[p]; !ok {
				in.pitches = append(in.pitches, p)
			}
			in.positions[p] = append(in.positions[p], pos)
		}
	}
	sort.Slice(in.pitches, func(i, j int) bool { return in.pitches[i] < in.pitches[j] })

	return in, nil
}

func mustNew(name string, frets int, open map[int]float64) *Instrument {
	in, err := New(name, frets, open)
	if err != nil {
		panic(err)
	}
	return in
}

// Name returns the instrument name.
func (in *Instrument) Name() string { return in.name }

// Frets returns the highest fret number; 0 means an unfretted instrument.
func (in *Instrument) Frets() int { return in.frets }

// Strings returns the string numbers in ascending order.
func (in *Instrument) Strings() []int {
	out := make([]int, len(in.strings))
	copy(out, in.strings)
	return out
}

// OpenFrequency returns the open frequency of a string.
func (in *Instrument) OpenFrequency(s int) (float64, bool) {
	f, ok := in.open[s]
	return f, ok
}

// OpenFrequencies returns a copy of the tuning table.
func (in *Instrument) OpenFrequencies() map[int]float64 {
	out := make(map[int]float64, len(in.open))
	for s, f := range in.open {
		out[s] = f
	}
	return out
}

// PositionToFrequency returns the frequency sounded at pos. The string must
// belong to the instrument.
func (in *Instrument) PositionToFrequency(pos models.Position) float64 {
	return in.open[pos.String] * math.Pow(2, float64(pos.Fret)/12)
}

// PositionToPitch returns the pitch sounded at pos.
func (in *Instrument) PositionToPitch(pos models.Position) models.Pitch {
	return models.PitchFromFrequency(in.PositionToFrequency(pos))
}

// PositionsForPitch lists every position producing p, strings ascending
// then frets ascending.
func (in *Instrument) PositionsForPitch(p models.Pitch) ([]models.Position, error) {
	positions, ok := in.positions[p]
	if !ok {
		return nil, &models.UnreachablePitchError{Instrument: in.name, Pitch: p}
	}
	out := make([]models.Position, len(positions))
	copy(out, positions)
	return out, nil
}

// CanPlay reports whether p is reachable.
func (in *Instrument) CanPlay(p models.Pitch) bool {
	_, ok := in.positions[p]
	return ok
}

// CanPlayOpen reports whether p is available on an open string.
func (in *Instrument) CanPlayOpen(p models.Pitch) bool {
	for _, pos := range in.positions[p] {
		if pos.Open() {
			return true
		}
	}
	return false
}

// Pitches returns every reachable pitch, ascending.
func (in *Instrument) Pitches() []models.Pitch {
	out := make([]models.Pitch, len(in.pitches))
	copy(out, in.pitches)
	return out
}

// Range returns the lowest and highest reachable pitch.
func (in *Instrument) Range() PitchRange {
	lo, hi := in.pitches[0], in.pitches[len(in.pitches)-1]
	return PitchRange{Lowest: lo, Highest: hi, Span: int(hi-lo) + 1}
}

func (in *Instrument) String() string {
	return fmt.Sprintf("%s (%d strings, %d frets)", in.name, len(in.strings), in.frets)
}

// frets lists the fret numbers of every position producing p.
func (in *Instrument) fretsFor(p models.Pitch) ([]int, error) {
	positions, ok := in.positions[p]
	if !ok {
		return nil, &models.UnreachablePitchError{Instrument: in.name, Pitch: p}
	}
	frets := make([]int, len(positions))
	for i, pos := range positions {
		frets[i] = pos.Fret
	}
	return frets, nil
}
