// Package series aligns per-thread benchmark timelines onto one shared
// step axis for charting.
package series

import "fmt"

// Presentation defaults. These are fixed viewport ranges, not derived
// from the data: values outside them are clipped by the chart.
const (
	// DefaultLatencyMin and DefaultLatencyMax bound the left axis (microseconds).
	DefaultLatencyMin = 0.0
	DefaultLatencyMax = 2000.0

	// DefaultMemoryMin and DefaultMemoryMax bound the right axis.
	DefaultMemoryMin = 0.0
	DefaultMemoryMax = 100.0

	// DefaultMemoryScale stretches memory samples away from the latency range.
	DefaultMemoryScale = 100.0
)

// Range is a closed axis domain.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// ChartModel is the aligned, presentation-ready series bundle.
// It is derived data and is not modified after Build returns.
type ChartModel struct {
	// Title is the benchmark header.
	Title string `json:"title"`

	// TimePoints are the reference thread's step indices: 0..n-1.
	TimePoints []int `json:"time_points"`

	// MemorySeries has one scaled memory sample per time point.
	MemorySeries []float64 `json:"memory_series"`

	// LatencySeries maps thread index to its latency samples, clipped to
	// len(TimePoints).
	LatencySeries map[int][]float64 `json:"latency_series"`

	// Labels maps thread index to the label from the results file.
	Labels map[int]string `json:"labels,omitempty"`

	// XDomain spans TimePoints.
	XDomain Range `json:"x_domain"`

	// LeftDomain is the latency axis range.
	LeftDomain Range `json:"left_domain"`

	// RightDomain is the memory axis range.
	RightDomain Range `json:"right_domain"`
}

// ThreadCount returns the number of latency series.
func (m *ChartModel) ThreadCount() int {
	return len(m.LatencySeries)
}

// XValues returns the first n time points as floats for plotting.
func (m *ChartModel) XValues(n int) []float64 {
	if n > len(m.TimePoints) {
		n = len(m.TimePoints)
	}
	xs := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(m.TimePoints[i])
	}
	return xs
}

// LegendName returns the legend entry for thread t.
func (m *ChartModel) LegendName(t int) string {
	return fmt.Sprintf("Latencies (us) - Thread %d", t)
}
