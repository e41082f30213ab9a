// Package setup turns a loaded configuration into the engine's registry
// and search options.
package setup

import (
	"fmt"
	"maps"

	"github.com/Isinlor/guitar/internal/constraint"
	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/internal/search"
	"github.com/Isinlor/guitar/pkg/config"
)

// SearchOptions converts the search section to pipeline options. Weights
// not named in the section keep their defaults. Unknown weight names are
// rejected here.
func SearchOptions(s config.Search) (search.Options, error) {
	weights := constraint.DefaultWeights()
	maps.Copy(weights, s.Weights)
	opts := search.Options{
		Seed:                  s.Seed,
		Restarts:              s.Restarts,
		RestartDisruption:     s.RestartDisruption,
		LocalSearchDisruption: s.LocalSearchDisruption,
		Budget: search.Budget{
			BaseSteps:           s.Budget.BaseSteps,
			ReferenceNotes:      s.Budget.ReferenceNotes,
			ReferenceCandidates: s.Budget.ReferenceCandidates,
		},
		Window: search.WindowOptions{
			Size:          s.Window.Size,
			StaticContext: s.Window.StaticContext,
			Step:          s.Window.Step,
			Depth:         s.Window.Depth,
		},
		PolishDepth: s.PolishDepth,
		Weights:     weights,
		Fingers:     append([]int(nil), s.Fingers...),
	}
	if err := opts.Validate(); err != nil {
		return search.Options{}, fmt.Errorf("invalid search configuration: %w", err)
	}
	return opts, nil
}

// Registry builds the instrument registry: the presets plus the custom
// instruments of the configuration. A custom instrument may not reuse a
// preset name.
func Registry(cfg *config.Config) (*fretboard.Registry, error) {
	custom := make([]*fretboard.Instrument, 0, len(cfg.Instruments))
	for _, ic := range cfg.Instruments {
		if _, err := fretboard.Lookup(ic.Name); err == nil {
			return nil, fmt.Errorf("instrument %s shadows a preset", ic.Name)
		}
		in, err := fretboard.New(ic.Name, ic.Frets, ic.Strings)
		if err != nil {
			return nil, fmt.Errorf("instrument %s: %w", ic.Name, err)
		}
		custom = append(custom, in)
	}
	return fretboard.NewRegistry(custom...)
}
