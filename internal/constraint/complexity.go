package constraint

import (
	"fmt"
	"sort"

	"github.com/Isinlor/guitar/pkg/models"
)

// Weights maps metric names to their factor in the total complexity.
// Metrics absent from the map do not contribute.
type Weights map[string]int

// DefaultWeights returns the weights of the standard complexity score.
func DefaultWeights() Weights {
	return Weights{
		MetricUniqueFrets:               2,
		MetricHighFrets:                 1,
		MetricHighFingers:               1,
		MetricLessUsedFingeringsPerNote: 1,
		MetricUniqueFretFingers:         3,
		MetricUniqueFingerings:          5,
		MetricFingerCrossing:            100,
		MetricFingerVelocity:            1,
		MetricFingerStringJumping:       1,
		MetricHandMovement:              10,
	}
}

// Validate rejects unknown metric names and negative weights.
func (w Weights) Validate() error {
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := LookupMetric(name); !ok {
			return fmt.Errorf("%w: unknown metric %q", models.ErrInvalidInput, name)
		}
		if w[name] < 0 {
			return fmt.Errorf("%w: metric %q has negative weight %d", models.ErrInvalidInput, name, w[name])
		}
	}
	return nil
}

// Build returns the weighted sum of every metric with a positive weight,
// initialised from the assignment.
func Build(notes []models.NoteEvent, initial []models.Fingering, weights Weights) *Composite {
	var constraints []SoftConstraint
	for _, m := range Metrics {
		w := weights[m.Name]
		if w <= 0 {
			continue
		}
		constraints = append(constraints, Weighted{SoftConstraint: m.New(notes, initial), Weight: w})
	}
	return NewComposite(constraints...)
}

// Complexity evaluates the weighted score of an assignment from scratch.
func Complexity(notes []models.NoteEvent, a []models.Fingering, weights Weights) int {
	total := 0
	for _, m := range Metrics {
		if w := weights[m.Name]; w > 0 {
			total += w * m.Pure(notes, a)
		}
	}
	return total
}

// ReportEntry is the contribution of one metric to the complexity.
type ReportEntry struct {
	Metric   string `json:"metric"`
	Value    int    `json:"value"`
	Weight   int    `json:"weight"`
	Weighted int    `json:"weighted"`
}

// Report breaks the complexity down by metric.
type Report struct {
	Entries []ReportEntry `json:"entries"`
	Total   int           `json:"total"`
}

// NewReport evaluates every metric, including unweighted ones.
func NewReport(notes []models.NoteEvent, a []models.Fingering, weights Weights) Report {
	r := Report{Entries: make([]ReportEntry, 0, len(Metrics))}
	for _, m := range Metrics {
		e := ReportEntry{Metric: m.Name, Value: m.Pure(notes, a), Weight: max(weights[m.Name], 0)}
		e.Weighted = e.Value * e.Weight
		r.Total += e.Weighted
		r.Entries = append(r.Entries, e)
	}
	return r
}
