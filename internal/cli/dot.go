package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anggasct/stately/visualization"
)

// DotOptions holds flags for the dot command.
type DotOptions struct {
	Output       string
	RankDir      string
	HideComputed bool
	HideLabels   bool
}

// NewDotCommand creates the dot command.
func NewDotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DotOptions{}

	cmd := &cobra.Command{
		Use:   "dot <definition.yaml>",
		Short: "Render a machine definition as Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDot(rootOpts, opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write DOT to a file instead of stdout")
	cmd.Flags().StringVar(&opts.RankDir, "rankdir", "LR", "graph direction (TB|LR|BT|RL)")
	cmd.Flags().BoolVar(&opts.HideComputed, "hide-computed", false, "omit computed transitions")
	cmd.Flags().BoolVar(&opts.HideLabels, "hide-labels", false, "omit bare next-state labels")

	return cmd
}

func runDot(rootOpts *RootOptions, opts *DotOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(rootOpts, cmd)

	cfg, err := loadDefinition(formatter, path)
	if err != nil {
		return err
	}

	dotOpts := visualization.DefaultDOTOptions()
	dotOpts.RankDirection = opts.RankDir
	dotOpts.ShowComputed = !opts.HideComputed
	dotOpts.ShowBareLabels = !opts.HideLabels
	generator := visualization.NewDOTGenerator(cfg, dotOpts)

	if opts.Output != "" {
		if err := generator.SaveToFile(opts.Output); err != nil {
			return formatter.fail(ExitCommandError, ErrCodeInput, err.Error(), nil)
		}
		rootOpts.Logger.Info("dot written", "path", opts.Output)
		if formatter.JSON() {
			return formatter.Success(map[string]string{"output": opts.Output})
		}
		return nil
	}

	content, err := generator.Generate()
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInput, err.Error(), nil)
	}

	if formatter.JSON() {
		return formatter.Success(map[string]string{"dot": content})
	}
	_, err = fmt.Fprint(formatter.Writer, content)
	return err
}
