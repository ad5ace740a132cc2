package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/benchgraph/pkg/parser"
	"github.com/ccollicutt/benchgraph/pkg/series"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "benchgraph" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	for _, name := range []string{"render", "inspect", "validate", "version"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Missing subcommand: %s", name)
		}
	}

	for _, flag := range []string{"input", "config"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Missing persistent flag: %s", flag)
		}
	}
	if cmd.Flags().Lookup("output") == nil {
		t.Error("Root command should accept render flags")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"format error", &parser.FormatError{Line: 2, Reason: "bad"}, ExitFormatError},
		{"wrapped format error", fmt.Errorf("parsing x: %w", &parser.FormatError{Reason: "bad"}), ExitFormatError},
		{"alignment error", &series.AlignmentError{Reason: "run has no threads"}, ExitAlignmentError},
		{"wrapped alignment error", fmt.Errorf("building: %w", &series.AlignmentError{Reason: "x"}), ExitAlignmentError},
		{"other error", os.ErrNotExist, ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(good, []byte("bench\nthread0: (100us, 10%), (200us, 12%)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("bench\nthread0: (100us, 10%), (200us\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		args       []string
		want       int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"version"}, ExitOK, "benchgraph", ""},
		{"bare root renders", []string{"-i", good, "-o", filepath.Join(dir, "chart.png")}, ExitOK, "", "Rendered"},
		{"format error", []string{"inspect", "-i", bad}, ExitFormatError, "", "Error: parsing"},
		{"missing input", []string{"-i", filepath.Join(dir, "missing.txt"), "-o", filepath.Join(dir, "x.png")}, ExitRuntimeError, "", "Error:"},
		{"unexpected argument", []string{"stray"}, ExitRuntimeError, "", "Error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := Run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("Run() = %d, want %d (stderr: %s)", got, tt.want, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
