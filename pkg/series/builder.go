package series

import (
	"github.com/ccollicutt/benchgraph/pkg/parser"
)

// AlignmentError reports a run that cannot be aligned onto a time axis.
type AlignmentError struct {
	Reason string
}

func (e *AlignmentError) Error() string {
	return "alignment error: " + e.Reason
}

// Builder turns parsed runs into chart models.
type Builder struct {
	leftDomain  Range
	rightDomain Range
	memoryScale float64
}

// Option configures a Builder.
type Option func(*Builder)

// WithLeftDomain overrides the latency axis range.
func WithLeftDomain(r Range) Option {
	return func(b *Builder) {
		b.leftDomain = r
	}
}

// WithRightDomain overrides the memory axis range.
func WithRightDomain(r Range) Option {
	return func(b *Builder) {
		b.rightDomain = r
	}
}

// WithMemoryScale overrides the factor applied to memory samples.
func WithMemoryScale(scale float64) Option {
	return func(b *Builder) {
		b.memoryScale = scale
	}
}

// NewBuilder creates a Builder with the default presentation ranges.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		leftDomain:  Range{Min: DefaultLatencyMin, Max: DefaultLatencyMax},
		rightDomain: Range{Min: DefaultMemoryMin, Max: DefaultMemoryMax},
		memoryScale: DefaultMemoryScale,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build aligns run onto the reference thread's timeline using the default
// presentation ranges.
func Build(run *parser.ThreadedRun, opts ...Option) (*ChartModel, error) {
	return NewBuilder(opts...).Build(run)
}

// Build aligns run onto the reference thread's timeline.
//
// The first thread defines both the time axis and the memory series. Every
// thread, the reference included, contributes its latency prefix clipped to
// the reference length; operations past that length are dropped.
func (b *Builder) Build(run *parser.ThreadedRun) (*ChartModel, error) {
	ref := run.Reference()
	if ref == nil {
		return nil, &AlignmentError{Reason: "run has no threads"}
	}
	if ref.Len() == 0 {
		return nil, &AlignmentError{Reason: "reference thread has no operations"}
	}

	n := ref.Len()
	model := &ChartModel{
		Title:         run.Title,
		TimePoints:    make([]int, n),
		MemorySeries:  make([]float64, n),
		LatencySeries: make(map[int][]float64, len(run.Threads)),
		Labels:        make(map[int]string, len(run.Threads)),
		XDomain:       Range{Min: 0, Max: float64(n - 1)},
		LeftDomain:    b.leftDomain,
		RightDomain:   b.rightDomain,
	}

	for i, op := range ref.Operations {
		model.TimePoints[i] = i
		model.MemorySeries[i] = op.MemoryPct * b.memoryScale
	}

	for t := range run.Threads {
		thread := &run.Threads[t]
		count := thread.Len()
		if count > n {
			count = n
		}

		latencies := make([]float64, count)
		for i := 0; i < count; i++ {
			latencies[i] = float64(thread.Operations[i].LatencyUS)
		}
		model.LatencySeries[t] = latencies
		model.Labels[t] = thread.Label
	}

	return model, nil
}
