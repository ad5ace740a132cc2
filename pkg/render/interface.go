// Package render draws chart models onto output surfaces.
package render

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ccollicutt/benchgraph/pkg/palette"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

// Renderer draws a chart model in a specific format.
type Renderer interface {
	// Render draws the model to the given writer.
	Render(ctx context.Context, model *series.ChartModel, w io.Writer) error

	// Name returns the format name (png, svg, ascii, json).
	Name() string
}

// Default chart dimensions.
const (
	DefaultWidth      = 1200
	DefaultHeight     = 600
	DefaultBackground = "#FAFAFA"
)

// Options controls renderer behavior.
type Options struct {
	// Width and Height are pixels for image formats and columns/rows for ascii.
	Width  int
	Height int

	// Palette colors the latency series. Defaults to palette.Default().
	Palette *palette.Palette

	// Background is the chart background color.
	Background string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Palette == nil {
		o.Palette = palette.Default()
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	return o
}

// Formats lists the supported format names.
var Formats = []string{"png", "svg", "ascii", "json"}

// New returns the renderer for the named format.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case "png":
		return NewImageRenderer(ImagePNG, opts), nil
	case "svg":
		return NewImageRenderer(ImageSVG, opts), nil
	case "ascii":
		return NewASCIIRenderer(opts), nil
	case "json":
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}

// FormatForPath infers a format from a file extension.
// Returns "" when the extension is not recognized.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".svg":
		return "svg"
	case ".json":
		return "json"
	case ".txt":
		return "ascii"
	default:
		return ""
	}
}
