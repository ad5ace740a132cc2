package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/benchgraph/pkg/config"
	"github.com/ccollicutt/benchgraph/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	// Input overrides the results file from config and environment.
	Input string

	// ConfigFile is an optional YAML config path.
	ConfigFile string
}

// AddFlags registers the shared flags on cmd as persistent flags.
func (g *GlobalOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&g.Input, "input", "i", "",
		fmt.Sprintf("Path to benchmark results (default %q)", config.DefaultInput))
	cmd.PersistentFlags().StringVarP(&g.ConfigFile, "config", "c", "", "Path to YAML config file")
}

// load reads the config and resolves the results path. The --input flag
// wins over config and environment.
func (g *GlobalOptions) load(ctx context.Context) (*config.Config, string, error) {
	cfg, err := config.Load(ctx, g.ConfigFile)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	input := g.Input
	if input == "" {
		input = cfg.Input
	}
	return cfg, input, nil
}

// parseInput reads and parses the results file. A *parser.FormatError
// stays reachable through errors.As.
func parseInput(ctx context.Context, input string) (*parser.ThreadedRun, error) {
	run, err := parser.ParseFile(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", input, err)
	}
	return run, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
