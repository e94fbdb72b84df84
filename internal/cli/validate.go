package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anggasct/stately/pkg/definition"
	"github.com/anggasct/stately/pkg/utils"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Name    string   `json:"name"`
	Initial string   `json:"initial"`
	States  int      `json:"states"`
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <definition.yaml>",
		Short: "Check a machine definition for problems",
		Long: `Load a YAML machine definition and report problems the engine would only
surface at run time: an unknown initial state, transition targets and bare
labels that are not states, and empty names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadDefinition(formatter, path)
	if err != nil {
		return err
	}
	opts.Logger.Debug("definition loaded", "path", path, "states", len(cfg.States))

	result := ValidationResult{
		Name:    cfg.Name,
		Initial: cfg.Initial,
		States:  len(cfg.StateNames()),
		Valid:   true,
	}

	if lintErr := definition.Lint(cfg); lintErr != nil {
		result.Valid = false
		if ec, ok := lintErr.(*utils.ErrorCollector); ok {
			for _, e := range ec.GetErrors() {
				result.Errors = append(result.Errors, e.Error())
			}
		} else {
			result.Errors = append(result.Errors, lintErr.Error())
		}
	}

	if formatter.JSON() {
		if result.Valid {
			return formatter.Success(result)
		}
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: ErrCodeLint, Message: result.Errors[0]},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	if result.Valid {
		fmt.Fprintf(formatter.Writer, "✓ %s: %d states, initial %s\n", result.Name, result.States, result.Initial)
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✗ %s: validation failed\n", result.Name)
	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeLint, e)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
