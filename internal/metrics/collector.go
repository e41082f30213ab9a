// Package metrics records how fingering runs progress. Collector keeps an
// in-memory trace of labelled time-series points for one or more runs;
// Recorder exports run outcomes to Prometheus.
package metrics

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Isinlor/guitar/pkg/utils"
)

// Point is one recorded value.
type Point struct {
	Timestamp time.Time         `json:"timestamp"`
	Name      string            `json:"name"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// Aggregation summarises the points of one series.
type Aggregation struct {
	Count int64   `json:"count"`
	Sum   float64 `json:"sum"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
}

// Summary is a snapshot of everything a collector holds.
type Summary struct {
	StartTime    time.Time               `json:"startTime"`
	EndTime      time.Time               `json:"endTime"`
	Duration     time.Duration           `json:"duration"`
	Metrics      map[string][]float64    `json:"metrics"`
	Aggregations map[string]*Aggregation `json:"aggregations"`
}

// Collector collects time-series metrics during fingering runs
type Collector struct {
	mu sync.RWMutex

	startTime time.Time
	endTime   time.Time

	// metric name -> label key -> points
	timeSeries map[string]map[string][]*Point
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		startTime:  time.Now(),
		timeSeries: make(map[string]map[string][]*Point),
	}
}

// Start marks the start of metric collection
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startTime = time.Now()
}

// Stop marks the end of metric collection
func (c *Collector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endTime = time.Now()
}

// Record records a metric value at a specific timestamp
func (c *Collector) Record(name string, value float64, timestamp time.Time, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := labelKey(labels)
	if c.timeSeries[name] == nil {
		c.timeSeries[name] = make(map[string][]*Point)
	}
	c.timeSeries[name][key] = append(c.timeSeries[name][key], &Point{
		Timestamp: timestamp,
		Name:      name,
		Value:     value,
		Labels:    copyLabels(labels),
	})
}

// RecordNow records a metric value at the current time
func (c *Collector) RecordNow(name string, value float64, labels map[string]string) {
	c.Record(name, value, time.Now(), labels)
}

// GetTimeSeries returns a copy of the points recorded for a metric and
// exact label set.
func (c *Collector) GetTimeSeries(name string, labels map[string]string) []*Point {
	c.mu.RLock()
	defer c.mu.RUnlock()

	points := c.timeSeries[name][labelKey(labels)]
	if points == nil {
		return nil
	}
	result := make([]*Point, len(points))
	for i, p := range points {
		cp := *p
		cp.Labels = copyLabels(p.Labels)
		result[i] = &cp
	}
	return result
}

// GetAggregation calculates aggregated statistics for a metric and exact
// label set. It returns nil when nothing was recorded.
func (c *Collector) GetAggregation(name string, labels map[string]string) *Aggregation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return calculateAggregation(values(c.timeSeries[name][labelKey(labels)]))
}

// GetAggregationAll aggregates a metric across every label set.
func (c *Collector) GetAggregationAll(name string) *Aggregation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return calculateAggregation(c.allValues(name))
}

// GetSummary returns a summary of all collected metrics
func (c *Collector) GetSummary() *Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	end := c.endTime
	if end.IsZero() {
		end = time.Now()
	}
	summary := &Summary{
		StartTime:    c.startTime,
		EndTime:      c.endTime,
		Duration:     end.Sub(c.startTime),
		Metrics:      make(map[string][]float64, len(c.timeSeries)),
		Aggregations: make(map[string]*Aggregation, len(c.timeSeries)),
	}
	for name := range c.timeSeries {
		all := c.allValues(name)
		summary.Metrics[name] = all
		if agg := calculateAggregation(all); agg != nil {
			summary.Aggregations[name] = agg
		}
	}
	return summary
}

// GetMetricNames returns the names of all collected metrics, sorted.
func (c *Collector) GetMetricNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.timeSeries))
	for name := range c.timeSeries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetLabelsForMetric returns all label combinations for a metric
func (c *Collector) GetLabelsForMetric(name string) []map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.timeSeries[name]))
	for key := range c.timeSeries[name] {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		if points := c.timeSeries[name][key]; len(points) > 0 {
			out = append(out, copyLabels(points[0].Labels))
		}
	}
	return out
}

// Clear clears all collected metrics
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timeSeries = make(map[string]map[string][]*Point)
	c.startTime = time.Now()
	c.endTime = time.Time{}
}

// allValues collects the values of every series of a metric, ordered by
// label key. Caller must hold the lock.
func (c *Collector) allValues(name string) []float64 {
	keys := make([]string, 0, len(c.timeSeries[name]))
	for key := range c.timeSeries[name] {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []float64
	for _, key := range keys {
		out = append(out, values(c.timeSeries[name][key])...)
	}
	return out
}

func values(points []*Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// labelKey creates a key from labels for map lookup
func labelKey(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
		b.WriteByte(',')
	}
	return b.String()
}

func copyLabels(labels map[string]string) map[string]string {
	if labels == nil {
		return nil
	}
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}

func calculateAggregation(vals []float64) *Aggregation {
	if len(vals) == 0 {
		return nil
	}
	return &Aggregation{
		Count: int64(len(vals)),
		Sum:   utils.Sum(vals),
		Min:   slices.Min(vals),
		Max:   slices.Max(vals),
		Mean:  utils.Mean(vals),
		P50:   utils.Percentile(vals, 50),
		P95:   utils.Percentile(vals, 95),
		P99:   utils.Percentile(vals, 99),
	}
}
