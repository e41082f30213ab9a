package constraint

import (
	"github.com/Isinlor/guitar/internal/tracker"
	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

// FingerStringJumping penalises a fretting finger landing on a different
// string than the one it last pressed, by the distance between the strings.
// Each finger has its own list of strings, set only where the finger is used.
type FingerStringJumping struct {
	strings [models.MaxFinger + 1]*tracker.PlaceholderTracker[int]
	penalty int
}

// NewFingerStringJumping builds the constraint from an initial assignment.
func NewFingerStringJumping(initial []models.Fingering) *FingerStringJumping {
	j := &FingerStringJumping{}
	for finger := 1; finger <= models.MaxFinger; finger++ {
		j.strings[finger] = tracker.NewPlaceholder[int](len(initial))
	}
	for i, f := range initial {
		if fretting(f.Finger) {
			j.record(j.strings[f.Finger].Set(i, f.String))
		}
	}
	return j
}

func fretting(finger int) bool {
	return finger >= 1 && finger <= models.MaxFinger
}

func (j *FingerStringJumping) record(deltas []tracker.Delta[int]) {
	for _, d := range deltas {
		distance := utils.Abs(d.To - d.From)
		if d.Kind == tracker.Removed {
			distance = -distance
		}
		j.penalty += distance
	}
}

// Name implements SoftConstraint.
func (j *FingerStringJumping) Name() string { return MetricFingerStringJumping }

// Apply implements SoftConstraint.
func (j *FingerStringJumping) Apply(index int, from, to models.Fingering) {
	if fretting(from.Finger) {
		j.record(j.strings[from.Finger].Unset(index))
	}
	if fretting(to.Finger) {
		j.record(j.strings[to.Finger].Set(index, to.String))
	}
}

// Penalty implements SoftConstraint.
func (j *FingerStringJumping) Penalty() int { return j.penalty }
