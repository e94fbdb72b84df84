package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Env    Env
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the stately CLI.
func NewRootCommand(cfg Env) *cobra.Command {
	opts := &RootOptions{Env: cfg}

	defaultFormat := cfg.Format
	if defaultFormat == "" {
		defaultFormat = "text"
	}

	cmd := &cobra.Command{
		Use:   "stately",
		Short: "Inspect and drive declarative state machines",
		Long: `stately loads YAML state machine definitions, validates them, renders
them as Graphviz DOT and drives them through a sequence of transitions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			level := opts.Env.LogLevel
			if opts.Verbose {
				level = "debug"
			}
			if level == "" {
				level = "warn"
			}
			logger, err := NewLogger(cmd.ErrOrStderr(), level, opts.Env.LogFormat)
			if err != nil {
				return WrapExitError(ExitCommandError, "logger", err)
			}
			opts.Logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaultFormat, "output format (json|text)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewDotCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewShortcutsCommand(opts))

	return cmd
}

// Execute runs the CLI with os.Args and returns the process exit code
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := LoadEnv()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitCommandError
	}

	cmd := NewRootCommand(cfg)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
