package constraint

import (
	"github.com/Isinlor/guitar/pkg/models"
)

// Metric names.
const (
	MetricUniqueFrets               = "unique_frets"
	MetricHighFrets                 = "high_frets"
	MetricHighFingers               = "high_fingers"
	MetricUniqueStrings             = "unique_strings"
	MetricUniqueFingers             = "unique_fingers"
	MetricLessUsedFingeringsPerNote = "less_used_fingerings_per_note"
	MetricUniqueFretFingers         = "unique_fret_fingers"
	MetricUniqueFingerings          = "unique_fingerings"
	MetricFingerCrossing            = "finger_crossing"
	MetricFingerVelocity            = "finger_velocity"
	MetricFingerStringJumping       = "finger_string_jumping"
	MetricHandMovement              = "hand_movement"
)

// Metric pairs the incremental constraint of a criterion with its pure,
// stateless evaluation.
type Metric struct {
	Name string
	// New builds the incremental constraint for a track and its initial
	// assignment.
	New func(notes []models.NoteEvent, initial []models.Fingering) SoftConstraint
	// Pure evaluates the criterion from scratch.
	Pure func(notes []models.NoteEvent, assignment []models.Fingering) int
}

// Metrics lists every criterion in reporting order.
var Metrics = []Metric{
	{
		Name: MetricUniqueFrets,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewUniqueCount(MetricUniqueFrets, fretOf, a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return uniqueCount(a, fretOf) },
	},
	{
		Name: MetricHighFrets,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewDistinctSum(MetricHighFrets, fretOf, a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return distinctSum(a, fretOf) },
	},
	{
		Name: MetricHighFingers,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewDistinctSum(MetricHighFingers, fingerOf, a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return distinctSum(a, fingerOf) },
	},
	{
		Name: MetricUniqueStrings,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewUniqueCount(MetricUniqueStrings, stringOf, a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return uniqueCount(a, stringOf) },
	},
	{
		Name: MetricUniqueFingers,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewUniqueCount(MetricUniqueFingers, fingerOf, a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return uniqueCount(a, fingerOf) },
	},
	{
		Name: MetricLessUsedFingeringsPerNote,
		New: func(n []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewLessUsedFingeringsPerNote(n, a)
		},
		Pure: LessUsedFingeringsPerNotePenalty,
	},
	{
		Name: MetricUniqueFretFingers,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewUniqueCount(MetricUniqueFretFingers, fretFingerOf, a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return uniqueCount(a, fretFingerOf) },
	},
	{
		Name: MetricUniqueFingerings,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewUniqueCount(MetricUniqueFingerings, fingeringOf, a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return uniqueCount(a, fingeringOf) },
	},
	{
		Name: MetricFingerCrossing,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewFingerCrossing(a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return FingerCrossingPenalty(a) },
	},
	{
		Name: MetricFingerVelocity,
		New: func(n []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewFingerVelocity(n, a)
		},
		Pure: FingerVelocityPenalty,
	},
	{
		Name: MetricFingerStringJumping,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewFingerStringJumping(a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return FingerStringJumpingPenalty(a) },
	},
	{
		Name: MetricHandMovement,
		New: func(_ []models.NoteEvent, a []models.Fingering) SoftConstraint {
			return NewHandMovement(a)
		},
		Pure: func(_ []models.NoteEvent, a []models.Fingering) int { return HandMovementPenalty(a) },
	},
}

// LookupMetric finds a metric by name.
func LookupMetric(name string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}
