package render

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ccollicutt/benchgraph/pkg/palette"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

// ImageKind selects the go-chart output backend.
type ImageKind string

const (
	ImagePNG ImageKind = "png"
	ImageSVG ImageKind = "svg"
)

// ImageRenderer draws the dual-axis chart as PNG or SVG.
type ImageRenderer struct {
	kind ImageKind
	opts Options
}

// NewImageRenderer creates an image renderer.
func NewImageRenderer(kind ImageKind, opts Options) *ImageRenderer {
	return &ImageRenderer{kind: kind, opts: opts.withDefaults()}
}

// Name returns the format name.
func (r *ImageRenderer) Name() string {
	return string(r.kind)
}

// Render draws the memory series on the secondary axis and one latency
// line per thread on the primary axis.
func (r *ImageRenderer) Render(ctx context.Context, model *series.ChartModel, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bg, err := palette.Parse(r.opts.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	memColor, err := palette.Parse(palette.MemoryColor)
	if err != nil {
		return err
	}

	ch := chart.Chart{
		Title:  model.Title,
		Width:  r.opts.Width,
		Height: r.opts.Height,
		Background: chart.Style{
			FillColor: toDrawing(bg),
			Padding:   chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: toDrawing(bg)},
		XAxis: chart.XAxis{
			Name:  "Time Points",
			Range: xRange(model.XDomain),
		},
		YAxis: chart.YAxis{
			Name:  "Latencies (us)",
			Range: &chart.ContinuousRange{Min: model.LeftDomain.Min, Max: model.LeftDomain.Max},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "Memory Usage (%)",
			Range: &chart.ContinuousRange{Min: model.RightDomain.Min, Max: model.RightDomain.Max},
		},
	}

	ch.Series = append(ch.Series, chart.ContinuousSeries{
		Name:    "Memory Usage (%)",
		XValues: model.XValues(len(model.MemorySeries)),
		YValues: model.MemorySeries,
		YAxis:   chart.YAxisSecondary,
		Style: chart.Style{
			StrokeColor: toDrawing(memColor),
			StrokeWidth: 2,
		},
	})

	for _, t := range threadIndices(model) {
		ys := model.LatencySeries[t]
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    model.LegendName(t),
			XValues: model.XValues(len(ys)),
			YValues: ys,
			Style: chart.Style{
				StrokeColor: toDrawing(r.opts.Palette.Color(t)),
				StrokeWidth: 1,
			},
		})
	}

	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	provider := chart.PNG
	if r.kind == ImageSVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("rendering %s chart: %w", r.kind, err)
	}
	return nil
}

// xRange widens a single-step domain so the axis has a non-zero span.
func xRange(d series.Range) *chart.ContinuousRange {
	if d.Span() <= 0 {
		return &chart.ContinuousRange{Min: d.Min, Max: d.Min + 1}
	}
	return &chart.ContinuousRange{Min: d.Min, Max: d.Max}
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// threadIndices returns the model's thread indices in ascending order.
func threadIndices(model *series.ChartModel) []int {
	idx := make([]int, 0, len(model.LatencySeries))
	for t := range model.LatencySeries {
		idx = append(idx, t)
	}
	sort.Ints(idx)
	return idx
}
