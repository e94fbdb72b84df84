package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anggasct/stately"
)

// ShortcutInfo is the JSON form of a bound shortcut
type ShortcutInfo struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Target string `json:"target"`
}

// NewShortcutsCommand creates the shortcuts command.
func NewShortcutsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts <definition.yaml>",
		Short: "List the shortcuts a machine binds",
		Long: `List the observer shortcuts ("on" + state name) and transition shortcuts a
machine built from the definition binds. Names that collide are bound once,
observer shortcuts first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShortcuts(rootOpts, cmd, args[0])
		},
	}
}

func runShortcuts(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadDefinition(formatter, path)
	if err != nil {
		return err
	}

	shortcuts := stately.NewMachine(cfg).Shortcuts()

	if formatter.JSON() {
		infos := make([]ShortcutInfo, 0, len(shortcuts))
		for _, s := range shortcuts {
			infos = append(infos, ShortcutInfo{Name: s.Name, Kind: s.Kind.String(), Target: s.Target})
		}
		return formatter.Success(infos)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tTARGET")
	for _, s := range shortcuts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Kind, s.Target)
	}
	return w.Flush()
}
