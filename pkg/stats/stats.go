// Package stats summarizes per-thread latency and memory behavior of a run.
package stats

import (
	"math"
	"sort"

	"github.com/ccollicutt/benchgraph/pkg/parser"
)

// ThreadSummary describes one thread's operations.
type ThreadSummary struct {
	Index      int    `json:"index"`
	Label      string `json:"label"`
	Operations int    `json:"operations"`

	// Dropped is how many operations fall past the reference thread's
	// length and are clipped from the chart.
	Dropped int `json:"dropped"`

	MinLatencyUS  int     `json:"min_latency_us"`
	MaxLatencyUS  int     `json:"max_latency_us"`
	MeanLatencyUS float64 `json:"mean_latency_us"`
	P50LatencyUS  int     `json:"p50_latency_us"`
	P99LatencyUS  int     `json:"p99_latency_us"`

	MinMemoryPct float64 `json:"min_memory_pct"`
	MaxMemoryPct float64 `json:"max_memory_pct"`

	// Kinds counts operations by kind (alloc, free). Unnamed tuples are not counted.
	Kinds map[string]int `json:"kinds,omitempty"`
}

// RunSummary describes a whole run.
type RunSummary struct {
	Title           string          `json:"title"`
	Threads         []ThreadSummary `json:"threads"`
	ReferenceLength int             `json:"reference_length"`
	TotalOperations int             `json:"total_operations"`
	TotalDropped    int             `json:"total_dropped"`
}

// Summarize computes statistics for every thread in run.
func Summarize(run *parser.ThreadedRun) *RunSummary {
	s := &RunSummary{Title: run.Title}
	if ref := run.Reference(); ref != nil {
		s.ReferenceLength = ref.Len()
	}

	s.Threads = make([]ThreadSummary, 0, len(run.Threads))
	for i := range run.Threads {
		ts := summarizeThread(i, &run.Threads[i], s.ReferenceLength)
		s.TotalOperations += ts.Operations
		s.TotalDropped += ts.Dropped
		s.Threads = append(s.Threads, ts)
	}

	return s
}

func summarizeThread(index int, thread *parser.ThreadRecord, refLen int) ThreadSummary {
	ts := ThreadSummary{
		Index:      index,
		Label:      thread.Label,
		Operations: thread.Len(),
	}
	if ts.Operations > refLen {
		ts.Dropped = ts.Operations - refLen
	}
	if ts.Operations == 0 {
		return ts
	}

	latencies := make([]int, 0, ts.Operations)
	sum := 0
	ts.MinMemoryPct = math.Inf(1)
	ts.MaxMemoryPct = math.Inf(-1)
	for _, op := range thread.Operations {
		latencies = append(latencies, op.LatencyUS)
		sum += op.LatencyUS
		ts.MinMemoryPct = math.Min(ts.MinMemoryPct, op.MemoryPct)
		ts.MaxMemoryPct = math.Max(ts.MaxMemoryPct, op.MemoryPct)
		if op.Kind != "" {
			if ts.Kinds == nil {
				ts.Kinds = make(map[string]int)
			}
			ts.Kinds[op.Kind]++
		}
	}

	sort.Ints(latencies)
	ts.MinLatencyUS = latencies[0]
	ts.MaxLatencyUS = latencies[len(latencies)-1]
	ts.MeanLatencyUS = float64(sum) / float64(len(latencies))
	ts.P50LatencyUS = Percentile(latencies, 50)
	ts.P99LatencyUS = Percentile(latencies, 99)

	return ts
}

// Percentile returns the nearest-rank percentile of sorted values.
func Percentile(sorted []int, p float64) int {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// HasDropped reports whether any thread was clipped.
func (s *RunSummary) HasDropped() bool {
	return s.TotalDropped > 0
}
