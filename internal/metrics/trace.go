package metrics

import (
	"time"

	"github.com/Isinlor/guitar/internal/search"
)

// Metric names recorded into a Collector.
const (
	MetricStageComplexity = "stage_complexity"
	MetricStageDurationMs = "stage_duration_ms"
	MetricStageSteps      = "stage_steps"
	MetricRunComplexity   = "run_complexity"
	MetricRunDurationMs   = "run_duration_ms"
)

// RunLabels creates a labels map for a run on an instrument
func RunLabels(instrument string) map[string]string {
	return map[string]string{
		"instrument": instrument,
	}
}

// StageLabels creates a labels map for one stage of a run
func StageLabels(instrument string, stage search.Stage) map[string]string {
	return map[string]string{
		"instrument": instrument,
		"stage":      string(stage),
	}
}

// RecordStage records the outcome of a pipeline stage.
func RecordStage(c *Collector, instrument string, sr search.StageResult) {
	labels := StageLabels(instrument, sr.Stage)
	now := time.Now()
	c.Record(MetricStageComplexity, float64(sr.Complexity), now, labels)
	c.Record(MetricStageDurationMs, float64(sr.Duration.Microseconds())/1000, now, labels)
	c.Record(MetricStageSteps, float64(sr.Steps), now, labels)
}

// StageReporter returns a progress reporter feeding c.
func StageReporter(c *Collector, instrument string) search.ProgressReporter {
	return func(sr search.StageResult) {
		RecordStage(c, instrument, sr)
	}
}

// RecordRun records the final complexity and wall time of a run.
func RecordRun(c *Collector, res *search.Result, elapsed time.Duration) {
	labels := RunLabels(res.Instrument)
	now := time.Now()
	c.Record(MetricRunComplexity, float64(res.Complexity), now, labels)
	c.Record(MetricRunDurationMs, float64(elapsed.Microseconds())/1000, now, labels)
}
