package constraint

import (
	"github.com/Isinlor/guitar/pkg/models"
)

// crossingPenalty is 1 when the fret and the finger do not move in the same
// direction between two consecutive notes.
func crossingPenalty(a, b models.Fingering) int {
	higherFret := a.Fret < b.Fret
	higherFinger := a.Finger < b.Finger
	if higherFret != higherFinger {
		return 1
	}
	return 0
}

// FingerCrossing penalises every adjacent pair whose fret progression is
// not matched by the finger progression.
type FingerCrossing struct {
	assignment []models.Fingering
	penalty    int
}

// NewFingerCrossing builds the constraint over a copy of initial.
func NewFingerCrossing(initial []models.Fingering) *FingerCrossing {
	c := &FingerCrossing{assignment: append([]models.Fingering(nil), initial...)}
	for i := 0; i+1 < len(c.assignment); i++ {
		c.penalty += crossingPenalty(c.assignment[i], c.assignment[i+1])
	}
	return c
}

// Name implements SoftConstraint.
func (c *FingerCrossing) Name() string { return MetricFingerCrossing }

func (c *FingerCrossing) around(index int) int {
	p := 0
	if index > 0 {
		p += crossingPenalty(c.assignment[index-1], c.assignment[index])
	}
	if index+1 < len(c.assignment) {
		p += crossingPenalty(c.assignment[index], c.assignment[index+1])
	}
	return p
}

// Apply implements SoftConstraint.
func (c *FingerCrossing) Apply(index int, _, to models.Fingering) {
	c.penalty -= c.around(index)
	c.assignment[index] = to
	c.penalty += c.around(index)
}

// Penalty implements SoftConstraint.
func (c *FingerCrossing) Penalty() int { return c.penalty }
