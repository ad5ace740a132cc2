package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ccollicutt/benchgraph/pkg/config"
	"github.com/ccollicutt/benchgraph/pkg/output"
	"github.com/ccollicutt/benchgraph/pkg/render"
	"github.com/ccollicutt/benchgraph/pkg/series"
	"github.com/ccollicutt/benchgraph/pkg/watcher"
	"github.com/ccollicutt/benchgraph/pkg/webhook"
)

// DefaultChartFile is where render writes when --output is not given.
const DefaultChartFile = "chart.png"

// RenderOptions holds command-line options for the render command.
type RenderOptions struct {
	Output string
	Format string
	Width  int
	Height int
	Watch  bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(g *GlobalOptions) *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a benchmark results file as a chart",
		Long: `Render a stress benchmark results file as a time-aligned chart.

The first thread defines the time axis and the memory usage line (right
axis). Every thread gets a latency line (left axis), clipped to the first
thread's length.

Formats:
  png, svg  Dual-axis chart image
  ascii     Terminal preview
  json      Aligned chart model for other tools

Exit codes:
  0 - Chart rendered
  1 - Malformed results file
  2 - Configuration or runtime error
  3 - Results could not be aligned`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, opts)
		},
	}

	AddRenderFlags(cmd, opts)

	return cmd
}

// AddRenderFlags registers render flags on cmd. The root command shares them
// so that running it bare renders with the same options.
func AddRenderFlags(cmd *cobra.Command, opts *RenderOptions) {
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultChartFile, "Output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format (png|svg|ascii|json); inferred from --output when empty")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Chart width (overrides config)")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "Chart height (overrides config)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-render whenever the results file changes")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_dropped", "When to fire webhook (on_dropped|always|never)")
}

// RunRender renders with the given options. Exposed for the root command.
func RunRender(cmd *cobra.Command, g *GlobalOptions, opts *RenderOptions) error {
	return runRender(cmd, g, opts)
}

func runRender(cmd *cobra.Command, g *GlobalOptions, opts *RenderOptions) error {
	ctx := commandContext(cmd)

	cfg, input, err := g.load(ctx)
	if err != nil {
		return err
	}

	if opts.Width > 0 {
		cfg.Chart.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Chart.Height = opts.Height
	}

	format, err := resolveFormat(opts)
	if err != nil {
		return err
	}

	if format == "png" && opts.Output == "-" && isTerminal(cmd.OutOrStdout()) {
		return fmt.Errorf("refusing to write png to a terminal (use --output or --format ascii)")
	}

	renderer, err := render.New(format, cfg.RenderOptions())
	if err != nil {
		return err
	}

	once := func(ctx context.Context) error {
		return renderOnce(ctx, cmd, cfg, g, opts, input, renderer)
	}

	if !opts.Watch {
		return once(ctx)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", input)
	return watcher.Watch(ctx, input, once, watcher.Options{
		OnError: func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		},
	})
}

// resolveFormat picks the explicit format, else one inferred from the
// output path, else png (ascii when writing to stdout).
func resolveFormat(opts *RenderOptions) (string, error) {
	if opts.Format != "" {
		return opts.Format, nil
	}
	if opts.Output == "-" {
		return "ascii", nil
	}
	if format := render.FormatForPath(opts.Output); format != "" {
		return format, nil
	}
	return "", fmt.Errorf("cannot infer format from %q (use --format)", opts.Output)
}

func renderOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, g *GlobalOptions,
	opts *RenderOptions, input string, renderer render.Renderer) error {
	run, err := parseInput(ctx, input)
	if err != nil {
		return err
	}

	model, err := series.Build(run, cfg.BuilderOptions()...)
	if err != nil {
		return err
	}

	// Render into memory first so a failure never leaves a truncated chart.
	var buf bytes.Buffer
	if err := renderer.Render(ctx, model, &buf); err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.Output, buf.Bytes()); err != nil {
		return err
	}

	report := output.NewReport(run, g.ConfigFile)
	if opts.Output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %s: %d thread(s), %d time point(s)\n",
			opts.Output, report.Summary.Threads, report.Summary.TimePoints)
	}
	if report.HasDroppedOperations() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d operation(s) beyond the reference thread were not charted\n",
			report.Summary.DroppedOperations)
	}

	sendWebhooks(ctx, cmd.ErrOrStderr(), cfg, opts, report)

	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil { // #nosec G306 -- charts are meant to be shared
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the render.
func sendWebhooks(ctx context.Context, stderr io.Writer, cfg *config.Config, opts *RenderOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	chart := ""
	if opts.Output != "-" {
		chart = opts.Output
	}

	client := webhook.NewClient()
	for _, wh := range webhooks {
		if !webhook.ShouldFire(wh.Trigger, report) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
			Chart:   chart,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *RenderOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnDropped
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}
