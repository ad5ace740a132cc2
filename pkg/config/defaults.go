package config

import (
	"os"
	"strings"
	"time"

	"github.com/ccollicutt/benchgraph/pkg/palette"
	"github.com/ccollicutt/benchgraph/pkg/render"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

// Default values for configuration.
const (
	DefaultInput          = "results.txt"
	DefaultWebhookTimeout = 10 * time.Second
	DefaultEnvFile        = ".env"
)

// Environment variable names.
const (
	EnvInput   = "BENCHGRAPH_INPUT"
	EnvPalette = "BENCHGRAPH_PALETTE"
)

// DefaultConfig returns a configuration with the standard chart layout.
func DefaultConfig() *Config {
	return &Config{
		Input: DefaultInput,
		Chart: ChartConfig{
			Width:        render.DefaultWidth,
			Height:       render.DefaultHeight,
			LatencyRange: AxisRange{series.DefaultLatencyMin, series.DefaultLatencyMax},
			MemoryRange:  AxisRange{series.DefaultMemoryMin, series.DefaultMemoryMax},
			MemoryScale:  series.DefaultMemoryScale,
			Background:   render.DefaultBackground,
			Palette:      append([]string(nil), palette.Sunset...),
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if input := os.Getenv(EnvInput); input != "" {
		c.Input = input
	}

	if p := os.Getenv(EnvPalette); p != "" {
		var colors []string
		for _, s := range strings.Split(p, ",") {
			if s = strings.TrimSpace(s); s != "" {
				colors = append(colors, s)
			}
		}
		c.Chart.Palette = colors
	}
}
