// Package output provides formatting and output generation for run reports.
package output

import (
	"time"

	"github.com/ccollicutt/benchgraph/pkg/parser"
	"github.com/ccollicutt/benchgraph/pkg/stats"
)

// Report is the complete inspection output for one results file.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Threads contains per-thread statistics in file order.
	Threads []stats.ThreadSummary `json:"threads"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Benchmark is the header line of the results file.
	Benchmark string `json:"benchmark"`

	// Threads is the number of thread records.
	Threads int `json:"threads"`

	// TimePoints is the reference thread length, i.e. the chart's x extent.
	TimePoints int `json:"time_points"`

	// TotalOperations counts operations across all threads.
	TotalOperations int `json:"total_operations"`

	// DroppedOperations counts operations clipped by the reference length.
	DroppedOperations int `json:"dropped_operations"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Source is the results file that was read.
	Source string `json:"source"`

	// ConfigFile is the configuration used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	// InspectedAt is when the report was created.
	InspectedAt time.Time `json:"inspected_at"`
}

// NewReport creates a Report from a parsed run.
func NewReport(run *parser.ThreadedRun, configFile string) *Report {
	s := stats.Summarize(run)

	return &Report{
		Threads: s.Threads,
		Metadata: Metadata{
			Source:      run.Source,
			ConfigFile:  configFile,
			InspectedAt: time.Now(),
		},
		Summary: Summary{
			Benchmark:         s.Title,
			Threads:           len(s.Threads),
			TimePoints:        s.ReferenceLength,
			TotalOperations:   s.TotalOperations,
			DroppedOperations: s.TotalDropped,
		},
	}
}

// HasDroppedOperations returns true if any thread was longer than the reference.
func (r *Report) HasDroppedOperations() bool {
	return r.Summary.DroppedOperations > 0
}
