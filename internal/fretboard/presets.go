package fretboard

import (
	"fmt"
	"sort"

	"github.com/Isinlor/guitar/pkg/models"
)

// Preset instrument names.
const (
	GuitarName  = "guitar"
	UkuleleName = "ukulele"
	KanteleName = "kantele"
)

// Guitar returns a six string guitar in standard tuning with 12 frets.
func Guitar() *Instrument {
	return mustNew(GuitarName, 12, map[int]float64{
		1: 329.63, // E4
		2: 246.94, // B3
		3: 196.00, // G3
		4: 146.83, // D3
		5: 110.00, // A2
		6: 82.41,  // E2
	})
}

// Ukulele returns a soprano ukulele in re-entrant GCEA tuning with 12 frets.
func Ukulele() *Instrument {
	return mustNew(UkuleleName, 12, map[int]float64{
		1: 440,    // A4
		2: 329.63, // E4
		3: 261.63, // C4
		4: 392,    // G4, re-entrant
	})
}

// Kantele returns an eleven string kantele. It has no frets.
func Kantele() *Instrument {
	return mustNew(KanteleName, 0, map[int]float64{
		1:  783.99, // G5
		2:  739.99, // F#5
		3:  659.26, // E5
		4:  587.33, // D5
		5:  554.37, // C#5
		6:  493.88, // B4
		7:  440.00, // A4
		8:  392.00, // G4
		9:  369.99, // F#4
		10: 329.63, // E4
		11: 293.66, // D4
	})
}

var presets = map[string]func() *Instrument{
	GuitarName:  Guitar,
	UkuleleName: Ukulele,
	KanteleName: Kantele,
}

// Lookup returns a preset instrument by name.
func Lookup(name string) (*Instrument, error) {
	build, ok := presets[name]
	if !ok {
		return nil, &models.UnknownInstrumentError{Name: name}
	}
	return build(), nil
}

// PresetNames lists the preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry resolves instrument names to instruments: the presets plus any
// custom instruments registered at construction.
type Registry struct {
	instruments map[string]*Instrument
	names       []string
}

// NewRegistry returns a registry holding the presets and custom.
func NewRegistry(custom ...*Instrument) (*Registry, error) {
	r := &Registry{instruments: make(map[string]*Instrument)}
	for _, name := range PresetNames() {
		r.add(presets[name]())
	}
	for _, in := range custom {
		if _, exists := r.instruments[in.Name()]; exists {
			return nil, fmt.Errorf("%w: instrument %q registered twice", models.ErrInvalidInput, in.Name())
		}
		r.add(in)
	}
	return r, nil
}

func (r *Registry) add(in *Instrument) {
	r.instruments[in.Name()] = in
	r.names = append(r.names, in.Name())
}

// Lookup returns the instrument registered under name.
func (r *Registry) Lookup(name string) (*Instrument, error) {
	in, ok := r.instruments[name]
	if !ok {
		return nil, &models.UnknownInstrumentError{Name: name}
	}
	return in, nil
}

// All returns the registered instruments in registration order.
func (r *Registry) All() []*Instrument {
	out := make([]*Instrument, len(r.names))
	for i, name := range r.names {
		out[i] = r.instruments[name]
	}
	return out
}
