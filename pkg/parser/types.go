// Package parser reads allocator stress benchmark results into per-thread
// operation sequences.
package parser

// ThreadPrefix marks a line that starts a new thread record.
const ThreadPrefix = "thread"

// Operation is a single measured (latency, memory) sample.
type Operation struct {
	// Kind is the operation name written before the tuple (alloc, free).
	// Empty when the benchmark did not write one.
	Kind string `json:"kind,omitempty"`

	// LatencyUS is the operation latency in microseconds.
	LatencyUS int `json:"latency_us"`

	// MemoryPct is the arena usage in percent at the time of the operation.
	MemoryPct float64 `json:"memory_pct"`
}

// ThreadRecord is one worker's ordered timeline of operations.
// The index into Operations is the thread-local step.
type ThreadRecord struct {
	// Label is the text between "thread" and the first ':' (e.g. "#0").
	Label string `json:"label"`

	// LineNum is the 1-based line number the record was read from.
	LineNum int `json:"line_num"`

	// Operations in temporal order.
	Operations []Operation `json:"operations"`
}

// Len returns the number of operations in the record.
func (t *ThreadRecord) Len() int {
	return len(t.Operations)
}

// ThreadedRun is a parsed benchmark results file.
// It always holds at least one thread, and every thread at least one operation.
type ThreadedRun struct {
	// Title is the benchmark header line. Metadata only.
	Title string `json:"title"`

	// Source is the file the run was read from, if any.
	Source string `json:"source,omitempty"`

	// Threads in file order.
	Threads []ThreadRecord `json:"threads"`
}

// Reference returns the first thread, which defines the time axis.
// Returns nil when the run has no threads.
func (r *ThreadedRun) Reference() *ThreadRecord {
	if r == nil || len(r.Threads) == 0 {
		return nil
	}
	return &r.Threads[0]
}

// TotalOperations returns the operation count across all threads.
func (r *ThreadedRun) TotalOperations() int {
	total := 0
	for i := range r.Threads {
		total += r.Threads[i].Len()
	}
	return total
}
