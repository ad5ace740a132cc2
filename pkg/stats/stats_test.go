package stats

import (
	"testing"

	"github.com/ccollicutt/benchgraph/pkg/parser"
)

func TestSummarize(t *testing.T) {
	run, err := parser.Parse([]string{
		"stress_multi",
		"thread #0: alloc (10us, 1%), alloc (30us, 2%), free (20us, 1.5%)",
		"thread #1: alloc (5us, 3%), alloc (7us, 4%), free (1us, 3%), free (2us, 2%), alloc (9us, 2.5%)",
		"thread #2: (100us, 9%)",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	s := Summarize(run)

	if s.ReferenceLength != 3 {
		t.Errorf("ReferenceLength = %d, want 3", s.ReferenceLength)
	}
	if s.TotalOperations != 9 {
		t.Errorf("TotalOperations = %d, want 9", s.TotalOperations)
	}
	if s.TotalDropped != 2 || !s.HasDropped() {
		t.Errorf("TotalDropped = %d, want 2", s.TotalDropped)
	}

	t0 := s.Threads[0]
	if t0.MinLatencyUS != 10 || t0.MaxLatencyUS != 30 {
		t.Errorf("thread 0 min/max = %d/%d, want 10/30", t0.MinLatencyUS, t0.MaxLatencyUS)
	}
	if t0.MeanLatencyUS != 20 {
		t.Errorf("thread 0 mean = %v, want 20", t0.MeanLatencyUS)
	}
	if t0.P50LatencyUS != 20 {
		t.Errorf("thread 0 p50 = %d, want 20", t0.P50LatencyUS)
	}
	if t0.MinMemoryPct != 1 || t0.MaxMemoryPct != 2 {
		t.Errorf("thread 0 memory = %v..%v, want 1..2", t0.MinMemoryPct, t0.MaxMemoryPct)
	}
	if t0.Kinds["alloc"] != 2 || t0.Kinds["free"] != 1 {
		t.Errorf("thread 0 kinds = %v", t0.Kinds)
	}
	if t0.Label != "#0" {
		t.Errorf("thread 0 label = %q", t0.Label)
	}

	if s.Threads[1].Dropped != 2 {
		t.Errorf("thread 1 dropped = %d, want 2", s.Threads[1].Dropped)
	}
	if s.Threads[2].Dropped != 0 || s.Threads[2].Kinds != nil {
		t.Errorf("thread 2 = %+v", s.Threads[2])
	}
}

func TestPercentile(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		p    float64
		want int
	}{
		{0, 1},
		{50, 5},
		{90, 9},
		{99, 10},
		{100, 10},
	}
	for _, tt := range tests {
		if got := Percentile(values, tt.p); got != tt.want {
			t.Errorf("Percentile(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
	if got := Percentile(nil, 50); got != 0 {
		t.Errorf("Percentile(nil) = %d, want 0", got)
	}
}
