// Package cli provides the command-line interface for benchgraph.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/benchgraph/internal/cli/commands"
	"github.com/ccollicutt/benchgraph/pkg/config"
	"github.com/ccollicutt/benchgraph/pkg/parser"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

// Exit codes.
const (
	ExitOK             = 0
	ExitFormatError    = 1
	ExitRuntimeError   = 2
	ExitAlignmentError = 3
)

// Execute runs the root command with the process arguments and returns the
// exit code.
func Execute() int {
	if err := config.LoadEnvFile(config.DefaultEnvFile); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes the command line args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	commands.ExitCode = ExitOK

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this itself.
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return commands.ExitCode
}

func exitCode(err error) int {
	var formatErr *parser.FormatError
	if errors.As(err, &formatErr) {
		return ExitFormatError
	}
	var alignErr *series.AlignmentError
	if errors.As(err, &alignErr) {
		return ExitAlignmentError
	}
	return ExitRuntimeError
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	global := &commands.GlobalOptions{}
	renderOpts := &commands.RenderOptions{}

	rootCmd := &cobra.Command{
		Use:   "benchgraph",
		Short: "Chart per-thread latency and memory usage from stress benchmark results",
		Long: `benchgraph turns the text output of a multi-threaded allocator stress
benchmark into a time-aligned chart.

The results file starts with a header line naming the benchmark, followed by
one line per thread:

  thread #0: alloc (12us, 0.5%), free (3us, 0.4%), ...

Latencies are drawn per thread against the left axis. Memory usage of the
first thread is drawn against the right axis. Running benchgraph without a
subcommand is the same as "benchgraph render".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunRender(cmd, global, renderOpts)
		},
	}

	global.AddFlags(rootCmd)
	commands.AddRenderFlags(rootCmd, renderOpts)

	// Add subcommands
	rootCmd.AddCommand(commands.NewRenderCommand(global))
	rootCmd.AddCommand(commands.NewInspectCommand(global))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
