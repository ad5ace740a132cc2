package output

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ccollicutt/benchgraph/pkg/stats"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d threads, %d time points, %d operations, %d dropped\n",
		report.Summary.Benchmark,
		report.Summary.Threads,
		report.Summary.TimePoints,
		report.Summary.TotalOperations,
		report.Summary.DroppedOperations)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "=== %s ===\n", report.Summary.Benchmark)
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	}
	fmt.Fprintln(w)

	for i := range report.Threads {
		f.formatThread(&report.Threads[i], w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d threads, %d time points, %d operations\n",
		report.Summary.Threads,
		report.Summary.TimePoints,
		report.Summary.TotalOperations)

	if report.HasDroppedOperations() {
		fmt.Fprintf(w, "Warning: %d operation(s) beyond the reference thread are not charted\n",
			report.Summary.DroppedOperations)
	}

	return nil
}

func (f *TextFormatter) formatThread(ts *stats.ThreadSummary, w io.Writer) {
	fmt.Fprintf(w, "[thread %d] %s\n", ts.Index, ts.Label)
	fmt.Fprintf(w, "  Operations: %d", ts.Operations)
	if ts.Dropped > 0 {
		fmt.Fprintf(w, " (%d dropped)", ts.Dropped)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Latency: min %dus, mean %.1fus, max %dus\n",
		ts.MinLatencyUS, ts.MeanLatencyUS, ts.MaxLatencyUS)

	if f.opts.Verbose {
		fmt.Fprintf(w, "  Percentiles: p50 %dus, p99 %dus\n", ts.P50LatencyUS, ts.P99LatencyUS)
		fmt.Fprintf(w, "  Memory: %.2f%% - %.2f%%\n", ts.MinMemoryPct, ts.MaxMemoryPct)
		if len(ts.Kinds) > 0 {
			fmt.Fprintf(w, "  Kinds: %s\n", formatKinds(ts.Kinds))
		}
	}

	fmt.Fprintln(w)
}

func formatKinds(kinds map[string]int) string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", k, kinds[k]))
	}
	return strings.Join(parts, " ")
}
