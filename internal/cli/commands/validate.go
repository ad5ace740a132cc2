package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/benchgraph/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a benchgraph configuration file without rendering.

Checks:
  - YAML syntax
  - Axis ranges and memory scale
  - Background and palette colors
  - Webhook URLs and triggers
  - Results file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	chart := cfg.Chart
	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Input:         %s\n", cfg.Input)
	fmt.Fprintf(out, "  Size:          %dx%d\n", chart.Width, chart.Height)
	fmt.Fprintf(out, "  Latency range: %v to %v us\n", chart.LatencyRange.Min(), chart.LatencyRange.Max())
	fmt.Fprintf(out, "  Memory range:  %v to %v (scale x%v)\n", chart.MemoryRange.Min(), chart.MemoryRange.Max(), chart.MemoryScale)
	fmt.Fprintf(out, "  Palette:       %d color(s)\n", chart.CompiledPalette().Len())
	fmt.Fprintf(out, "  Webhooks:      %d\n", len(cfg.Webhooks))

	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Fprintf(out, "    %d. [%s] %s\n", i+1, wh.Trigger, name)
	}

	if _, err := os.Stat(cfg.Input); err != nil {
		fmt.Fprintf(out, "\nWarning: results file %s is not readable: %v\n", cfg.Input, err)
	}

	return nil
}
