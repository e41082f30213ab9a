// Package search finds low-complexity fingerings for a track. It provides
// the individual algorithms (random initialisation, stochastic local
// search, random restarts, exhaustive and sliding-window exhaustive search)
// and the Optimizer pipeline that chains them.
package search

import (
	"context"
	"fmt"

	"github.com/Isinlor/guitar/internal/constraint"
	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

// ctxCheckInterval is how many local search attempts run between two
// context checks.
const ctxCheckInterval = 1024

// Searcher runs the search algorithms over one track. The candidate list of
// note i is the search domain of that note. A Searcher is single-threaded.
type Searcher struct {
	notes      []models.NoteEvent
	candidates [][]models.Fingering
	weights    constraint.Weights
	rng        *utils.RandSource
}

// NewSearcher returns a searcher over notes and their candidate fingerings.
func NewSearcher(notes []models.NoteEvent, candidates [][]models.Fingering, weights constraint.Weights, rng *utils.RandSource) (*Searcher, error) {
	if len(notes) != len(candidates) {
		return nil, fmt.Errorf("%w: %d notes but %d candidate lists", models.ErrInvalidInput, len(notes), len(candidates))
	}
	for i, c := range candidates {
		if len(c) == 0 {
			return nil, &models.NoFingeringAlternativesError{Pitch: notes[i].Pitch}
		}
	}
	return &Searcher{notes: notes, candidates: candidates, weights: weights, rng: rng}, nil
}

// Len returns the track length.
func (s *Searcher) Len() int { return len(s.notes) }

// NewStore returns a store over a and the searcher's weights.
func (s *Searcher) NewStore(a []models.Fingering) *constraint.Store {
	return constraint.NewStore(s.notes, a, s.weights)
}

// Complexity scores an assignment from scratch.
func (s *Searcher) Complexity(a []models.Fingering) int {
	return constraint.Complexity(s.notes, a, s.weights)
}

// RandomAssignment picks one candidate per note uniformly at random.
func (s *Searcher) RandomAssignment() []models.Fingering {
	a := make([]models.Fingering, len(s.candidates))
	for i, c := range s.candidates {
		a[i] = utils.Pick(s.rng, c)
	}
	return a
}

// LocalSearch makes attempts rounds of disruption random refingerings and
// keeps a round when the penalty does not grow; otherwise the round is
// undone, most recent change first.
func (s *Searcher) LocalSearch(ctx context.Context, store *constraint.Store, attempts, disruption int) error {
	if store.Len() == 0 {
		return nil
	}
	current := store.Penalty()
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		mark := store.Mark()
		for k := 0; k < disruption; k++ {
			i := s.rng.Intn(store.Len())
			store.Set(i, utils.Pick(s.rng, s.candidates[i]))
		}
		if p := store.Penalty(); p <= current {
			current = p
			store.Commit(mark)
		} else {
			store.Rollback(mark)
		}
	}
	return nil
}

// RandomRestart runs restarts independent local searches, each from a fresh
// random assignment, and returns the best assignment found with its
// complexity.
func (s *Searcher) RandomRestart(ctx context.Context, restarts, attemptsPerRestart, disruption int) ([]models.Fingering, int, error) {
	var (
		best      []models.Fingering
		bestScore int
	)
	for r := 0; r < restarts; r++ {
		store := s.NewStore(s.RandomAssignment())
		if err := s.LocalSearch(ctx, store, attemptsPerRestart, disruption); err != nil {
			return nil, 0, err
		}
		if best == nil || store.Penalty() < bestScore {
			best, bestScore = store.Assignment(), store.Penalty()
		}
	}
	if best == nil {
		return nil, 0, fmt.Errorf("%w: no restarts requested", models.ErrInvalidInput)
	}
	return best, bestScore, nil
}

// Exhaustive refines notes [start, end) by first improvement: every
// candidate of every note is tried, refined by a nested exhaustive search
// one level shallower, and the first that lowers the penalty is kept before
// the scan starts over. It stops when a whole scan improves nothing.
// Depth 0 does nothing.
func (s *Searcher) Exhaustive(ctx context.Context, store *constraint.Store, depth, start, end int) error {
	if depth <= 0 {
		return nil
	}
	start = max(start, 0)
	end = min(end, store.Len())

	current := store.Penalty()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		improved, err := s.scan(ctx, store, depth, start, end, &current)
		if err != nil {
			return err
		}
		if !improved {
			return nil
		}
	}
}

func (s *Searcher) scan(ctx context.Context, store *constraint.Store, depth, start, end int, current *int) (bool, error) {
	for i := start; i < end; i++ {
		for _, f := range s.candidates[i] {
			mark := store.Mark()
			store.Set(i, f)
			if err := s.Exhaustive(ctx, store, depth-1, start, end); err != nil {
				store.Rollback(mark)
				return false, err
			}
			if p := store.Penalty(); p < *current {
				*current = p
				store.Commit(mark)
				return true, nil
			}
			store.Rollback(mark)
		}
	}
	return false, nil
}

// WindowOptions shape the sliding-window exhaustive search.
type WindowOptions struct {
	// Size is the number of notes in a window.
	Size int `yaml:"size" json:"size"`
	// StaticContext is the number of leading notes of every window after
	// the first that are scored but kept fixed.
	StaticContext int `yaml:"static_context" json:"staticContext"`
	// Step is how far the window advances.
	Step int `yaml:"step" json:"step"`
	// Depth is the exhaustive search depth inside a window.
	Depth int `yaml:"depth" json:"depth"`
}

// DefaultWindowOptions returns a 7 note window with 3 notes of context,
// advancing by 3, searched at depth 2.
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{Size: 7, StaticContext: 3, Step: 3, Depth: 2}
}

// SlidingWindow slides a window along the track, searching each window
// exhaustively as a track of its own. The refined window is written back
// only if the penalty of the whole track does not grow.
func (s *Searcher) SlidingWindow(ctx context.Context, store *constraint.Store, opts WindowOptions) error {
	if opts.Size <= 0 || opts.Step <= 0 {
		return fmt.Errorf("%w: window size %d and step %d must be positive", models.ErrInvalidInput, opts.Size, opts.Step)
	}
	n := store.Len()
	for i := 0; i+opts.Size < n; i += opts.Step {
		end := i + opts.Size
		window := &Searcher{
			notes:      s.notes[i:end],
			candidates: s.candidates[i:end],
			weights:    s.weights,
			rng:        s.rng,
		}
		local := window.NewStore(store.Assignment()[i:end])
		start := 0
		if i > 0 {
			start = opts.StaticContext - 1
		}
		if err := window.Exhaustive(ctx, local, opts.Depth, start, opts.Size); err != nil {
			return err
		}

		before := store.Penalty()
		mark := store.Mark()
		for j := 0; j < opts.Size; j++ {
			store.Set(i+j, local.Fingering(j))
		}
		if store.Penalty() <= before {
			store.Commit(mark)
		} else {
			store.Rollback(mark)
		}
	}
	return nil
}
