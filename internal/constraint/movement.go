package constraint

import (
	"github.com/Isinlor/guitar/internal/tracker"
	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

// handShiftCost is the cost of moving the hand between two positions.
func handShiftCost(from, to int) int {
	d := to - from
	return 5 + d*d
}

// HandMovement penalises changes of hand position along the track. Open
// strings leave the hand where it is, so they are placeholders in the
// position list. On top of the per-shift cost, the number of shifts is
// raised to the fourth power so that many small shifts cost more than a
// few larger ones.
type HandMovement struct {
	positions *tracker.PlaceholderTracker[int]
	shifts    int
}

// NewHandMovement builds the constraint from an initial assignment.
func NewHandMovement(initial []models.Fingering) *HandMovement {
	h := &HandMovement{positions: tracker.NewPlaceholder[int](len(initial))}
	for i, f := range initial {
		if !f.Open() {
			h.record(h.positions.Set(i, f.HandPosition()))
		}
	}
	return h
}

func (h *HandMovement) record(deltas []tracker.Delta[int]) {
	for _, d := range deltas {
		cost := handShiftCost(d.From, d.To)
		if d.Kind == tracker.Removed {
			cost = -cost
		}
		h.shifts += cost
	}
}

// Name implements SoftConstraint.
func (h *HandMovement) Name() string { return MetricHandMovement }

// Apply implements SoftConstraint.
func (h *HandMovement) Apply(index int, _, to models.Fingering) {
	if to.Open() {
		h.record(h.positions.Unset(index))
		return
	}
	h.record(h.positions.Set(index, to.HandPosition()))
}

// Penalty implements SoftConstraint.
func (h *HandMovement) Penalty() int {
	return h.shifts + utils.IntPow(h.positions.Transitions(), 4)
}
