package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Isinlor/guitar/internal/constraint"
	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/pkg/logger"
	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

// Stage names the steps of the optimization pipeline.
type Stage string

const (
	StageRandom        Stage = "random"
	StageRandomRestart Stage = "random_restart"
	StageLocalSearch   Stage = "local_search"
	StageSlidingWindow Stage = "sliding_window"
	StageExhaustive    Stage = "exhaustive"
)

// Budget scales the local search step count with the size of the problem.
type Budget struct {
	BaseSteps           int `yaml:"base_steps" json:"baseSteps"`
	ReferenceNotes      int `yaml:"reference_notes" json:"referenceNotes"`
	ReferenceCandidates int `yaml:"reference_candidates" json:"referenceCandidates"`
}

// DefaultBudget returns 20000 steps for a 67 note track with 26 candidates.
func DefaultBudget() Budget {
	return Budget{BaseSteps: 20000, ReferenceNotes: 67, ReferenceCandidates: 26}
}

// Steps returns round(base * notes/refNotes * candidates/refCandidates).
func (b Budget) Steps(notes, candidates int) int {
	if b.ReferenceNotes <= 0 || b.ReferenceCandidates <= 0 {
		return b.BaseSteps
	}
	scaled := float64(b.BaseSteps) *
		(float64(notes) / float64(b.ReferenceNotes)) *
		(float64(candidates) / float64(b.ReferenceCandidates))
	return int(math.Round(scaled))
}

// Options configure the optimization pipeline.
type Options struct {
	// Seed drives every random choice. Zero seeds from the clock.
	Seed                  int64
	Restarts              int
	RestartDisruption     int
	LocalSearchDisruption int
	Budget                Budget
	Window                WindowOptions
	PolishDepth           int
	Weights               constraint.Weights
	// Fingers restricts fretting fingers. Empty means the default set.
	Fingers []int
}

// DefaultOptions returns the standard pipeline: 10 restarts of local search
// at disruption 5, a full-budget local search at disruption 3, the default
// sliding window and a depth 1 exhaustive polish.
func DefaultOptions() Options {
	return Options{
		Restarts:              10,
		RestartDisruption:     5,
		LocalSearchDisruption: 3,
		Budget:                DefaultBudget(),
		Window:                DefaultWindowOptions(),
		PolishDepth:           1,
		Weights:               constraint.DefaultWeights(),
	}
}

// Validate checks the options for values the pipeline cannot run with.
func (o Options) Validate() error {
	switch {
	case o.Restarts < 0:
		return fmt.Errorf("%w: restarts must be non-negative, got %d", models.ErrInvalidInput, o.Restarts)
	case o.RestartDisruption <= 0 || o.LocalSearchDisruption <= 0:
		return fmt.Errorf("%w: disruption must be positive", models.ErrInvalidInput)
	case o.Budget.BaseSteps < 0:
		return fmt.Errorf("%w: base steps must be non-negative, got %d", models.ErrInvalidInput, o.Budget.BaseSteps)
	case o.Window.Size <= 0 || o.Window.Step <= 0:
		return fmt.Errorf("%w: window size and step must be positive", models.ErrInvalidInput)
	case o.Window.StaticContext < 1 || o.Window.StaticContext > o.Window.Size:
		return fmt.Errorf("%w: static context must be in [1, %d], got %d", models.ErrInvalidInput, o.Window.Size, o.Window.StaticContext)
	case o.Window.Depth < 0 || o.PolishDepth < 0:
		return fmt.Errorf("%w: depth must be non-negative", models.ErrInvalidInput)
	}
	return o.Weights.Validate()
}

// StageResult records the outcome of one pipeline stage.
type StageResult struct {
	Stage      Stage         `json:"stage"`
	Complexity int           `json:"complexity"`
	Steps      int           `json:"steps"`
	Duration   time.Duration `json:"duration"`
}

// Result is the outcome of one optimization run.
type Result struct {
	Instrument    string                `json:"instrument"`
	Transposition int                   `json:"transposition"`
	Notes         []models.FingeredNote `json:"notes"`
	Complexity    int                   `json:"complexity"`
	Report        constraint.Report     `json:"report"`
	Stages        []StageResult         `json:"stages"`
	Seed          int64                 `json:"seed"`
	Steps         int                   `json:"steps"`
	Candidates    int                   `json:"candidates"`
}

// Assignment returns the chosen fingering of every note.
func (r *Result) Assignment() []models.Fingering {
	a := make([]models.Fingering, len(r.Notes))
	for i, n := range r.Notes {
		a[i] = n.Fingering
	}
	return a
}

// ProgressReporter is told about every finished stage.
type ProgressReporter func(StageResult)

// Optimizer chains the search algorithms into the fingering pipeline.
type Optimizer struct {
	opts     Options
	log      *slog.Logger
	progress ProgressReporter
}

// NewOptimizer creates an optimizer. Invalid options surface from Run.
func NewOptimizer(opts Options) *Optimizer {
	if opts.Weights == nil {
		opts.Weights = constraint.DefaultWeights()
	}
	return &Optimizer{
		opts: opts,
		log:  logger.Component("search"),
	}
}

// WithLogger sets the logger stage progress is written to.
func (o *Optimizer) WithLogger(l *slog.Logger) *Optimizer {
	o.log = l
	return o
}

// WithProgressReporter sets a callback invoked after every stage.
func (o *Optimizer) WithProgressReporter(fn ProgressReporter) *Optimizer {
	o.progress = fn
	return o
}

// Options returns the options the optimizer runs with.
func (o *Optimizer) Options() Options { return o.opts }

// Run fingers events on the instrument. The track is transposed by the most
// accurate transposition first; the returned notes carry the transposed
// pitches.
func (o *Optimizer) Run(ctx context.Context, instrument *fretboard.Instrument, events []models.NoteEvent) (*Result, error) {
	if instrument == nil {
		return nil, fmt.Errorf("%w: instrument is required", models.ErrInvalidInput)
	}
	if err := o.opts.Validate(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: track has no notes", models.ErrInvalidInput)
	}
	if err := models.ValidateTrack(events); err != nil {
		return nil, err
	}

	pitches := models.Pitches(events)
	transposition, err := instrument.MostAccurateTransposition(pitches)
	if err != nil {
		return nil, fmt.Errorf("failed to transpose track: %w", err)
	}
	notes := models.Transpose(events, transposition)
	pitches = models.Pitches(notes)

	set, err := instrument.CandidateFingerings(pitches, o.opts.Fingers...)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate candidates: %w", err)
	}
	perNote, err := set.PerNote(pitches)
	if err != nil {
		return nil, err
	}

	rng := utils.NewRandSource(o.opts.Seed)
	searcher, err := NewSearcher(notes, perNote, o.opts.Weights, rng)
	if err != nil {
		return nil, err
	}

	steps := o.opts.Budget.Steps(len(notes), set.Total())
	result := &Result{
		Instrument:    instrument.Name(),
		Transposition: transposition,
		Seed:          rng.Seed(),
		Steps:         steps,
		Candidates:    set.Total(),
	}
	o.log.Debug("starting fingering search",
		"instrument", instrument.Name(),
		"notes", len(notes),
		"transposition", transposition,
		"candidates", set.Total(),
		"steps", steps,
		"seed", rng.Seed())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	store := searcher.NewStore(searcher.RandomAssignment())
	o.record(result, StageRandom, store.Penalty(), 0, start)

	if o.opts.Restarts > 0 {
		start = time.Now()
		perRestart := int(math.Round(float64(steps) / float64(o.opts.Restarts)))
		best, _, err := searcher.RandomRestart(ctx, o.opts.Restarts, perRestart, o.opts.RestartDisruption)
		if err != nil {
			return nil, err
		}
		store.Load(best)
		o.record(result, StageRandomRestart, store.Penalty(), perRestart*o.opts.Restarts, start)
	}

	start = time.Now()
	if err := searcher.LocalSearch(ctx, store, steps, o.opts.LocalSearchDisruption); err != nil {
		return nil, err
	}
	o.record(result, StageLocalSearch, store.Penalty(), steps, start)

	start = time.Now()
	if err := searcher.SlidingWindow(ctx, store, o.opts.Window); err != nil {
		return nil, err
	}
	o.record(result, StageSlidingWindow, store.Penalty(), 0, start)

	start = time.Now()
	if err := searcher.Exhaustive(ctx, store, o.opts.PolishDepth, 0, store.Len()); err != nil {
		return nil, err
	}
	o.record(result, StageExhaustive, store.Penalty(), 0, start)

	assignment := store.Assignment()
	result.Notes = make([]models.FingeredNote, len(notes))
	for i := range notes {
		result.Notes[i] = models.FingeredNote{NoteEvent: notes[i], Fingering: assignment[i]}
	}
	result.Complexity = store.Penalty()
	result.Report = constraint.NewReport(notes, assignment, o.opts.Weights)

	o.log.Info("fingering search finished",
		"instrument", instrument.Name(),
		"notes", len(notes),
		"complexity", result.Complexity)
	return result, nil
}

func (o *Optimizer) record(result *Result, stage Stage, complexity, steps int, start time.Time) {
	sr := StageResult{Stage: stage, Complexity: complexity, Steps: steps, Duration: time.Since(start)}
	result.Stages = append(result.Stages, sr)
	o.log.Debug("stage finished", "stage", string(stage), "complexity", complexity, "duration", sr.Duration)
	if o.progress != nil {
		o.progress(sr)
	}
}
