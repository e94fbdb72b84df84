package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anggasct/stately"
	"github.com/anggasct/stately/pkg/observers"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	Context string
	Async   bool
	Throws  bool
	Trace   bool
}

// StepReport is the outcome of one step of a run
type StepReport struct {
	Transition string     `json:"transition"`
	State      string     `json:"state"`
	Error      *StepError `json:"error,omitempty"`
}

// StepError is the machine error of a failed step
type StepError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RunReport is the JSON output of the run command
type RunReport struct {
	Machine string           `json:"machine"`
	Steps   []StepReport     `json:"steps"`
	Context *stately.Context `json:"context"`
	Trace   []string         `json:"trace,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <definition.yaml> [transition...]",
		Short: "Start a machine and drive it through transitions",
		Long: `Start a machine built from the definition, then run the named transitions
in order and print the state after every step.

With --throws the run stops at the first machine error. Without it machine
errors are reported for the step and the run continues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(rootOpts, opts, cmd, args[0], args[1:])
		},
	}

	cmd.Flags().StringVar(&opts.Context, "context", "", "initial context as a JSON object")
	cmd.Flags().BoolVar(&opts.Async, "async", false, "use the suspending engine")
	cmd.Flags().BoolVar(&opts.Throws, "throws", false, "stop at the first machine error")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print the entered states")

	return cmd
}

// driver runs a machine through either engine
type driver interface {
	start(ctx context.Context, data *stately.Context) (*stately.Result, error)
	transition(ctx context.Context, name string) (*stately.Result, error)
}

type blockingDriver struct{ m *stately.Machine }

func (d blockingDriver) start(ctx context.Context, data *stately.Context) (*stately.Result, error) {
	return d.m.StartWithContext(ctx, data)
}

func (d blockingDriver) transition(ctx context.Context, name string) (*stately.Result, error) {
	return d.m.TransitionWithContext(ctx, name, nil)
}

type suspendingDriver struct{ m *stately.AsyncMachine }

func (d suspendingDriver) start(ctx context.Context, data *stately.Context) (*stately.Result, error) {
	return d.m.Start(ctx, data).Await()
}

func (d suspendingDriver) transition(ctx context.Context, name string) (*stately.Result, error) {
	return d.m.Transition(ctx, name, nil).Await()
}

func runMachine(rootOpts *RootOptions, opts *RunOptions, cmd *cobra.Command, path string, transitions []string) error {
	formatter := newFormatter(rootOpts, cmd)

	cfg, err := loadDefinition(formatter, path)
	if err != nil {
		return err
	}

	data := stately.NewContext()
	if opts.Context != "" {
		if err := json.Unmarshal([]byte(opts.Context), data); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeInput, fmt.Sprintf("invalid --context: %v", err), nil)
		}
	}

	history := observers.NewHistoryObserver(0)
	machineOpts := []stately.Option{
		stately.WithThrows(opts.Throws),
		stately.WithObserver(observers.NewLoggingObserver(rootOpts.Logger, slog.LevelInfo)),
		stately.WithObserver(history),
	}

	var d driver
	if opts.Async {
		d = suspendingDriver{m: stately.NewAsyncMachine(cfg, machineOpts...)}
	} else {
		d = blockingDriver{m: stately.NewMachine(cfg, machineOpts...)}
	}

	report := RunReport{Machine: cfg.Name, Steps: make([]StepReport, 0, len(transitions)+1), Context: data}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	thrown := step(&report, "", func() (*stately.Result, error) { return d.start(ctx, data) })
	for _, name := range transitions {
		if thrown != nil {
			break
		}
		thrown = step(&report, name, func() (*stately.Result, error) { return d.transition(ctx, name) })
	}

	if opts.Trace {
		report.Trace = history.States()
	}

	if err := writeReport(formatter, report); err != nil {
		return err
	}

	if thrown != nil {
		if smErr, ok := stately.AsStateMachineError(thrown); ok {
			return WrapExitError(ExitFailure, ErrCodeMachine, smErr)
		}
		return WrapExitError(ExitFailure, "state handler failed", thrown)
	}
	return nil
}

// step runs one operation and records it. It returns the error that stops
// the run, if any.
func step(report *RunReport, name string, op func() (*stately.Result, error)) error {
	result, err := op()

	entry := StepReport{Transition: name}
	switch {
	case err != nil:
		if smErr, ok := stately.AsStateMachineError(err); ok {
			entry.State = smErr.CurrentState
			entry.Error = &StepError{Kind: string(smErr.Kind), Message: smErr.Message}
		} else {
			entry.Error = &StepError{Kind: "HANDLER_ERROR", Message: err.Error()}
		}
	case result.Error != nil:
		entry.State = result.CurrentState
		entry.Error = &StepError{Kind: string(result.Error.Kind), Message: result.Error.Message}
	default:
		entry.State = result.CurrentState
	}

	report.Steps = append(report.Steps, entry)
	return err
}

func writeReport(formatter *OutputFormatter, report RunReport) error {
	if formatter.JSON() {
		return formatter.Success(report)
	}

	w := formatter.Writer
	for _, s := range report.Steps {
		name := s.Transition
		if name == "" {
			name = "start"
		}
		if s.Error != nil {
			fmt.Fprintf(w, "%-12s ! %s: %s (state %s)\n", name, s.Error.Kind, s.Error.Message, displayState(s.State))
			continue
		}
		fmt.Fprintf(w, "%-12s → %s\n", name, s.State)
	}

	contextJSON, err := json.Marshal(report.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "context: %s\n", contextJSON)

	if len(report.Trace) > 0 {
		fmt.Fprintf(w, "trace: %s\n", strings.Join(report.Trace, " > "))
	}
	return nil
}

func displayState(state string) string {
	if state == "" {
		return "-"
	}
	return state
}
