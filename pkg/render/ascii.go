package render

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/ccollicutt/benchgraph/pkg/series"
)

// DefaultASCIIWidth and DefaultASCIIHeight size the terminal preview when
// the options carry image dimensions.
const (
	DefaultASCIIWidth  = 100
	DefaultASCIIHeight = 15
)

// ASCIIRenderer draws a terminal preview: latencies in one plot, memory
// usage in a second plot below it.
type ASCIIRenderer struct {
	opts Options
}

// NewASCIIRenderer creates a terminal renderer.
func NewASCIIRenderer(opts Options) *ASCIIRenderer {
	if opts.Width <= 0 || opts.Width > 400 {
		opts.Width = DefaultASCIIWidth
	}
	if opts.Height <= 0 || opts.Height > 100 {
		opts.Height = DefaultASCIIHeight
	}
	return &ASCIIRenderer{opts: opts.withDefaults()}
}

// Name returns the format name.
func (r *ASCIIRenderer) Name() string {
	return "ascii"
}

// Render writes both plots to w.
func (r *ASCIIRenderer) Render(ctx context.Context, model *series.ChartModel, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(model.TimePoints) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	bucket := bucketSize(len(model.TimePoints), r.opts.Width)

	threads := threadIndices(model)
	data := make([][]float64, 0, len(threads))
	legends := make([]string, 0, len(threads))
	seriesColors := make([]asciigraph.AnsiColor, 0, len(threads))
	for _, t := range threads {
		data = append(data, plotable(downsample(model.LatencySeries[t], bucket)))
		legends = append(legends, model.LegendName(t))
		seriesColors = append(seriesColors, nearestANSI(r.opts.Palette.Color(t)))
	}

	latency := asciigraph.PlotMany(data,
		asciigraph.Height(r.opts.Height),
		asciigraph.LowerBound(model.LeftDomain.Min),
		asciigraph.SeriesColors(seriesColors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.Caption(captionFor(model, "Latencies (us)", bucket)),
	)

	memory := asciigraph.Plot(plotable(downsample(model.MemorySeries, bucket)),
		asciigraph.Height(r.opts.Height/2+1),
		asciigraph.LowerBound(model.RightDomain.Min),
		asciigraph.SeriesColors(asciigraph.Green),
		asciigraph.Caption(captionFor(model, "Memory Usage (%)", bucket)),
	)

	if _, err := fmt.Fprintf(w, "%s\n\n%s\n", latency, memory); err != nil {
		return fmt.Errorf("writing ascii chart: %w", err)
	}
	return nil
}

func captionFor(model *series.ChartModel, what string, bucket int) string {
	caption := what
	if model.Title != "" {
		caption = model.Title + " - " + what
	}
	if bucket > 1 {
		caption += fmt.Sprintf(" (max per %d steps)", bucket)
	}
	return caption
}

// bucketSize returns how many steps share one column.
func bucketSize(steps, width int) int {
	if width <= 0 || steps <= width {
		return 1
	}
	return (steps + width - 1) / width
}

// downsample keeps the maximum of each bucket. Every series uses the same
// bucket boundaries, so clipped series stay aligned with the reference.
func downsample(values []float64, bucket int) []float64 {
	if bucket <= 1 {
		return values
	}
	out := make([]float64, 0, (len(values)+bucket-1)/bucket)
	for start := 0; start < len(values); start += bucket {
		end := start + bucket
		if end > len(values) {
			end = len(values)
		}
		m := values[start]
		for _, v := range values[start+1 : end] {
			if v > m {
				m = v
			}
		}
		out = append(out, m)
	}
	return out
}

// plotable pads a single sample so asciigraph has a line to draw.
func plotable(values []float64) []float64 {
	if len(values) == 1 {
		return []float64{values[0], values[0]}
	}
	return values
}

var ansiChoices = []struct {
	rgb  [3]float64
	ansi asciigraph.AnsiColor
}{
	{[3]float64{255, 0, 0}, asciigraph.Red},
	{[3]float64{139, 0, 0}, asciigraph.DarkRed},
	{[3]float64{255, 165, 0}, asciigraph.Orange},
	{[3]float64{255, 255, 0}, asciigraph.Yellow},
	{[3]float64{0, 128, 0}, asciigraph.Green},
	{[3]float64{0, 255, 255}, asciigraph.Cyan},
	{[3]float64{135, 206, 235}, asciigraph.SkyBlue},
	{[3]float64{0, 0, 255}, asciigraph.Blue},
	{[3]float64{0, 0, 128}, asciigraph.Navy},
	{[3]float64{255, 0, 255}, asciigraph.Magenta},
}

// nearestANSI maps a palette color to the closest terminal color.
func nearestANSI(c color.RGBA) asciigraph.AnsiColor {
	best := asciigraph.Default
	bestDist := math.MaxFloat64
	for _, choice := range ansiChoices {
		dr := float64(c.R) - choice.rgb[0]
		dg := float64(c.G) - choice.rgb[1]
		db := float64(c.B) - choice.rgb[2]
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = choice.ansi, d
		}
	}
	return best
}
