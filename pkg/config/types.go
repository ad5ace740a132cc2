// Package config provides configuration loading and validation for benchgraph.
package config

import (
	"time"

	"github.com/ccollicutt/benchgraph/pkg/palette"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Input is the benchmark results file.
	Input string `yaml:"input"`

	// Chart holds presentation settings.
	Chart ChartConfig `yaml:"chart"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ChartConfig controls chart presentation. The ranges are fixed viewports,
// never derived from the data.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// LatencyRange is the left axis [min, max] in microseconds.
	LatencyRange AxisRange `yaml:"latency_range"`

	// MemoryRange is the right axis [min, max].
	MemoryRange AxisRange `yaml:"memory_range"`

	// MemoryScale multiplies every memory sample before plotting.
	MemoryScale float64 `yaml:"memory_scale"`

	// Background is the chart background color.
	Background string `yaml:"background"`

	// Palette colors the latency series, cycling by thread index.
	Palette []string `yaml:"palette,omitempty"`

	// compiledPalette is the parsed palette (populated during validation).
	compiledPalette *palette.Palette
}

// CompiledPalette returns the palette parsed during validation.
func (c *ChartConfig) CompiledPalette() *palette.Palette {
	return c.compiledPalette
}

// AxisRange is a two-element [min, max] list.
type AxisRange []float64

// Min returns the lower bound.
func (r AxisRange) Min() float64 {
	return r[0]
}

// Max returns the upper bound.
func (r AxisRange) Max() float64 {
	return r[1]
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnDropped fires only when operations were clipped (default).
	WebhookTriggerOnDropped WebhookTrigger = "on_dropped"
	// WebhookTriggerAlways fires after every render.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for publishing run reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token for authentication.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires.
	// Defaults to "on_dropped" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout.
	// Defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
