package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/benchgraph/pkg/palette"
	"github.com/ccollicutt/benchgraph/pkg/render"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

// Load reads and validates a configuration file.
// An empty path yields the defaults with environment overrides applied.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Validate checks a configuration for errors and parses the palette.
func Validate(cfg *Config) error {
	if cfg.Input == "" {
		return errors.New("input: a results file is required")
	}

	if err := validateChart(&cfg.Chart); err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	// Webhooks are optional, but validate if present
	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateChart(c *ChartConfig) error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}

	if err := validateRange(c.LatencyRange); err != nil {
		return fmt.Errorf("latency_range: %w", err)
	}
	if err := validateRange(c.MemoryRange); err != nil {
		return fmt.Errorf("memory_range: %w", err)
	}

	if c.MemoryScale <= 0 {
		return fmt.Errorf("memory_scale must be positive, got %g", c.MemoryScale)
	}

	if _, err := palette.Parse(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}

	p, err := palette.New(c.Palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	c.compiledPalette = p

	return nil
}

func validateRange(r AxisRange) error {
	if len(r) != 2 {
		return fmt.Errorf("must be [min, max], got %d value(s)", len(r))
	}
	if r.Min() >= r.Max() {
		return fmt.Errorf("min %g must be below max %g", r.Min(), r.Max())
	}
	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	// Validate URL format
	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnDropped, WebhookTriggerAlways, WebhookTriggerNever:
			// Valid
		default:
			return fmt.Errorf("invalid trigger %q (must be on_dropped, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnDropped
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}

	return s
}

// BuilderOptions returns the series builder options for this config.
func (c *Config) BuilderOptions() []series.Option {
	return []series.Option{
		series.WithLeftDomain(series.Range{Min: c.Chart.LatencyRange.Min(), Max: c.Chart.LatencyRange.Max()}),
		series.WithRightDomain(series.Range{Min: c.Chart.MemoryRange.Min(), Max: c.Chart.MemoryRange.Max()}),
		series.WithMemoryScale(c.Chart.MemoryScale),
	}
}

// RenderOptions returns renderer options for this config.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Width:      c.Chart.Width,
		Height:     c.Chart.Height,
		Palette:    c.Chart.CompiledPalette(),
		Background: c.Chart.Background,
	}
}
