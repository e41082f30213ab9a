package constraint

import (
	"github.com/Isinlor/guitar/pkg/models"
	"github.com/Isinlor/guitar/pkg/utils"
)

// velocityPenalty scores one finger sliding between two consecutive fretted
// notes: a fret counts five times a string, scaled per millisecond and
// rounded up. Simultaneous onsets count as one millisecond apart.
// Rounding applies to each consecutive pair, so a track scores the sum of
// rounded pair penalties rather than one rounded total.
func velocityPenalty(a, b models.Fingering, dtMs int64) int {
	if a.Open() || b.Open() || a.Finger != b.Finger {
		return 0
	}
	distance := int64(utils.Abs(a.Fret-b.Fret)*5 + utils.Abs(a.String-b.String))
	if distance == 0 {
		return 0
	}
	if dtMs <= 0 {
		dtMs = 1
	}
	return int((distance*1000 + dtMs - 1) / dtMs)
}

// FingerVelocity penalises a finger that has to travel far in little time.
type FingerVelocity struct {
	starts     []int64
	assignment []models.Fingering
	penalty    int
}

// NewFingerVelocity builds the constraint for a track.
func NewFingerVelocity(notes []models.NoteEvent, initial []models.Fingering) *FingerVelocity {
	v := &FingerVelocity{
		starts:     make([]int64, len(notes)),
		assignment: append([]models.Fingering(nil), initial...),
	}
	for i, n := range notes {
		v.starts[i] = n.StartTimeMs
	}
	for i := 0; i+1 < len(v.assignment); i++ {
		v.penalty += v.pair(i)
	}
	return v
}

func (v *FingerVelocity) pair(i int) int {
	return velocityPenalty(v.assignment[i], v.assignment[i+1], v.starts[i+1]-v.starts[i])
}

func (v *FingerVelocity) around(index int) int {
	p := 0
	if index > 0 {
		p += v.pair(index - 1)
	}
	if index+1 < len(v.assignment) {
		p += v.pair(index)
	}
	return p
}

// Name implements SoftConstraint.
func (v *FingerVelocity) Name() string { return MetricFingerVelocity }

// Apply implements SoftConstraint.
func (v *FingerVelocity) Apply(index int, _, to models.Fingering) {
	v.penalty -= v.around(index)
	v.assignment[index] = to
	v.penalty += v.around(index)
}

// Penalty implements SoftConstraint.
func (v *FingerVelocity) Penalty() int { return v.penalty }
