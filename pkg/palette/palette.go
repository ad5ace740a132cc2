// Package palette assigns stable colors to chart series.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"gopkg.in/go-playground/colors.v1"
)

// Sunset is the default series palette.
var Sunset = []string{"#364B9A", "#6EA6CD", "#C2E4EF", "#FEDA8B", "#F67E4B", "#A50026"}

// MemoryColor is used for the memory usage series.
const MemoryColor = "#008000"

// Palette cycles through a fixed list of colors by series index, so a
// thread keeps its color across renders.
type Palette struct {
	hexes  []string
	colors []color.RGBA
}

// New parses hex, rgb() or rgba() color strings into a palette.
func New(specs []string) (*Palette, error) {
	if len(specs) == 0 {
		return nil, errors.New("palette needs at least one color")
	}

	p := &Palette{
		hexes:  make([]string, 0, len(specs)),
		colors: make([]color.RGBA, 0, len(specs)),
	}
	for i, spec := range specs {
		c, err := Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		p.colors = append(p.colors, c)
		p.hexes = append(p.hexes, fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	}
	return p, nil
}

// Default returns the Sunset palette.
func Default() *Palette {
	p, err := New(Sunset)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse converts a single color string to RGBA.
func Parse(spec string) (color.RGBA, error) {
	c, err := colors.Parse(strings.ToLower(strings.TrimSpace(spec)))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", spec, err)
	}

	rgba := c.ToRGBA()
	return color.RGBA{
		R: rgba.R,
		G: rgba.G,
		B: rgba.B,
		A: uint8(rgba.A * 255),
	}, nil
}

// Len returns the number of distinct colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Color returns the color for series i.
func (p *Palette) Color(i int) color.RGBA {
	return p.colors[index(i, len(p.colors))]
}

// Hex returns the normalized hex string for series i.
func (p *Palette) Hex(i int) string {
	return p.hexes[index(i, len(p.hexes))]
}

func index(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
