package render

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/guptarohit/asciigraph"

	"github.com/ccollicutt/benchgraph/pkg/parser"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

func createTestModel(t *testing.T) *series.ChartModel {
	t.Helper()
	run, err := parser.Parse([]string{
		"stress_multi",
		"thread #0: alloc (100us, 10%), alloc (200us, 12%), free (50us, 11%)",
		"thread #1: alloc (150us, 20%), free (300us, 25%)",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	model, err := series.Build(run)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return model
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		r, err := New(format, Options{})
		if err != nil {
			t.Fatalf("New(%q) error = %v", format, err)
		}
		if r.Name() != format {
			t.Errorf("Name() = %q, want %q", r.Name(), format)
		}
	}

	if _, err := New("pdf", Options{}); err == nil {
		t.Error("New(pdf) expected error")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]string{
		"chart.png":     "png",
		"out/CHART.SVG": "svg",
		"model.json":    "json",
		"preview.txt":   "ascii",
		"chart":         "",
		"chart.bmp":     "",
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestImageRenderer_PNG(t *testing.T) {
	model := createTestModel(t)
	r := NewImageRenderer(ImagePNG, Options{Width: 640, Height: 320})

	var buf bytes.Buffer
	if err := r.Render(context.Background(), model, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestImageRenderer_SVG(t *testing.T) {
	model := createTestModel(t)
	r := NewImageRenderer(ImageSVG, Options{})

	var buf bytes.Buffer
	if err := r.Render(context.Background(), model, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("output is not SVG")
	}
	if !strings.Contains(out, "Memory Usage (%)") {
		t.Error("SVG missing memory axis name")
	}
}

func TestImageRenderer_SingleStep(t *testing.T) {
	run, err := parser.Parse([]string{"bench", "thread0: (10us, 1%)"})
	if err != nil {
		t.Fatal(err)
	}
	model, err := series.Build(run)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewImageRenderer(ImagePNG, Options{}).Render(context.Background(), model, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestImageRenderer_BadBackground(t *testing.T) {
	model := createTestModel(t)
	r := NewImageRenderer(ImagePNG, Options{Background: "nope"})

	var buf bytes.Buffer
	if err := r.Render(context.Background(), model, &buf); err == nil {
		t.Error("Render() expected error for invalid background")
	}
}

func TestImageRenderer_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewImageRenderer(ImagePNG, Options{}).Render(ctx, createTestModel(t), &buf)
	if err != context.Canceled {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestASCIIRenderer(t *testing.T) {
	model := createTestModel(t)
	r := NewASCIIRenderer(Options{Width: 1200, Height: 600})

	var buf bytes.Buffer
	if err := r.Render(context.Background(), model, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"stress_multi - Latencies (us)", "Memory Usage (%)", "Latencies (us) - Thread 0", "Latencies (us) - Thread 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestJSONRenderer(t *testing.T) {
	model := createTestModel(t)

	var buf bytes.Buffer
	if err := NewJSONRenderer().Render(context.Background(), model, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded series.ChartModel
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded.LatencySeries, model.LatencySeries) {
		t.Errorf("LatencySeries = %v, want %v", decoded.LatencySeries, model.LatencySeries)
	}
	if decoded.LeftDomain != model.LeftDomain {
		t.Errorf("LeftDomain = %v, want %v", decoded.LeftDomain, model.LeftDomain)
	}
}

func TestDownsample(t *testing.T) {
	values := []float64{1, 5, 2, 2, 9}
	if got := downsample(values, 2); !reflect.DeepEqual(got, []float64{5, 2, 9}) {
		t.Errorf("downsample() = %v, want [5 2 9]", got)
	}
	if got := downsample(values, 1); !reflect.DeepEqual(got, values) {
		t.Errorf("downsample(1) = %v", got)
	}
}

func TestBucketSize(t *testing.T) {
	if got := bucketSize(50, 100); got != 1 {
		t.Errorf("bucketSize(50, 100) = %d, want 1", got)
	}
	if got := bucketSize(250, 100); got != 3 {
		t.Errorf("bucketSize(250, 100) = %d, want 3", got)
	}
}

func TestNearestANSI(t *testing.T) {
	r := NewASCIIRenderer(Options{})
	if got := nearestANSI(r.opts.Palette.Color(5)); got != asciigraph.DarkRed {
		t.Errorf("nearestANSI(#A50026) = %v, want DarkRed", got)
	}
}
