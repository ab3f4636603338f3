// Package cli implements the cobra commands of the occurs tool.
//
// Each subcommand (fold, model, calc) lives in its own file. This file holds
// the root command, the shared flags and the exit status mapping.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	xerrors "github.com/jacoelho/multiplicity/errors"
	"github.com/jacoelho/multiplicity/internal/config"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Version is set at build time via ldflags.
var Version = "dev"

// errDiagnosticsReported marks a failure whose diagnostics were already written.
var errDiagnosticsReported = errors.New("occurrence diagnostics reported")

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app carries the streams, flags and resolved configuration shared by subcommands.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	cfg        *config.Config
	logger     *slog.Logger
	configPath string
	format     string
	logLevel   string
	limit      uint64
	strict     bool
}

// NewRootCommand creates the root command writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "occurs",
		Short: "Fold content models into per-symbol occurrence ranges",
		Long: `occurs computes how many times each symbol of a DTD or XSD content model
may occur, and which field representation (scalar, optional, collection)
that range calls for.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           Version,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML or JSONC config file")
	flags.StringVarP(&a.format, "format", "f", config.FormatText, "output format: text, json, yaml")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.Uint64Var(&a.limit, "limit", config.DefaultOccursLimit, "largest accepted finite occurrence value (0 disables)")
	flags.BoolVar(&a.strict, "strict", false, "exit with failure when occurrence diagnostics are reported")

	rootCmd.AddCommand(newFoldCommand(a))
	rootCmd.AddCommand(newModelCommand(a))
	rootCmd.AddCommand(newCalcCommand(a))

	return rootCmd
}

// setup resolves configuration layers, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	bootstrap := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.NewLoader(bootstrap).Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("limit") {
		cfg.Occurs.Limit = a.limit
	}
	if flags.Changed("strict") {
		cfg.Occurs.Strict = a.strict
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err: err}
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return usageError{err: err}
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("Resolved configuration",
		slog.String("format", cfg.Output.Format),
		slog.Uint64("limit", cfg.Occurs.Limit),
		slog.Bool("strict", cfg.Occurs.Strict))
	return nil
}

// Execute runs the root command with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(stdout, stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, errDiagnosticsReported) {
		return ExitFailure
	}
	var usage usageError
	if errors.As(err, &usage) {
		_ = writef(stderr, "error: %v\n", usage.err)
		_ = writef(stderr, "Run 'occurs --help' for usage.\n")
		return ExitUsage
	}
	if diags, ok := xerrors.AsDiagnostics(err); ok {
		for _, d := range diags {
			if writeErr := writeln(stderr, d.Error()); writeErr != nil {
				return ExitFailure
			}
		}
		return ExitFailure
	}
	_ = writef(stderr, "error: %v\n", err)
	return ExitFailure
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// rangeArgs is cobra.RangeArgs reporting a usage error.
func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(lo, hi)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
