// Package constraint holds the ergonomic soft constraints that score a track
// fingering. Each constraint keeps its penalty up to date incrementally as
// single notes are refingered; a pure counterpart of every metric recomputes
// the same value from scratch and is the reference the incremental state
// must always agree with.
package constraint

import (
	"github.com/Isinlor/guitar/pkg/models"
)

// SoftConstraint is an incrementally maintained penalty over an assignment.
type SoftConstraint interface {
	// Name identifies the metric.
	Name() string
	// Apply records that the note at index changed from one fingering to
	// another. Calls must describe the actual sequence of changes.
	Apply(index int, from, to models.Fingering)
	// Penalty returns the current penalty.
	Penalty() int
}

// Weighted scales the penalty of a constraint by a fixed factor.
type Weighted struct {
	SoftConstraint
	Weight int
}

// Penalty returns the weighted penalty.
func (w Weighted) Penalty() int {
	return w.SoftConstraint.Penalty() * w.Weight
}

// Composite sums a list of constraints and fans every change out to all of
// them.
type Composite struct {
	constraints []SoftConstraint
}

// NewComposite returns the sum of constraints.
func NewComposite(constraints ...SoftConstraint) *Composite {
	return &Composite{constraints: constraints}
}

// Name implements SoftConstraint.
func (c *Composite) Name() string { return "composite" }

// Apply implements SoftConstraint.
func (c *Composite) Apply(index int, from, to models.Fingering) {
	for _, sc := range c.constraints {
		sc.Apply(index, from, to)
	}
}

// Penalty implements SoftConstraint.
func (c *Composite) Penalty() int {
	total := 0
	for _, sc := range c.constraints {
		total += sc.Penalty()
	}
	return total
}

// Constraints returns the members of the composite.
func (c *Composite) Constraints() []SoftConstraint {
	return c.constraints
}
