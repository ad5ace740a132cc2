package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/benchgraph/pkg/output"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(g *GlobalOptions) *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a benchmark results file",
		Long: `Parse a stress benchmark results file and print per-thread statistics
without rendering a chart.

Reports operation counts, latency min/mean/max and, with --verbose, latency
percentiles, memory usage range and operation kinds. Operations beyond the
first thread's length are counted as dropped since the chart cannot show
them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show percentiles, memory range and operation kinds")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runInspect(cmd *cobra.Command, g *GlobalOptions, opts *InspectOptions) error {
	ctx := commandContext(cmd)

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	cfg, input, err := g.load(ctx)
	if err != nil {
		return err
	}

	run, err := parseInput(ctx, input)
	if err != nil {
		return err
	}

	// Same alignment checks as render, so inspect fails where render would.
	if _, err := series.Build(run, cfg.BuilderOptions()...); err != nil {
		return err
	}

	report := output.NewReport(run, g.ConfigFile)
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

func createFormatter(opts *InspectOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}
