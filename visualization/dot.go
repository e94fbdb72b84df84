package visualization

import (
	"fmt"
	"os"
	"strings"

	"github.com/anggasct/stately"
)

// DOTGenerator generates Graphviz DOT format representations of machine configurations
type DOTGenerator struct {
	config  stately.Config
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowComputed   bool
	ShowBareLabels bool
	RankDirection  string // "TB", "LR", "BT", "RL"
	NodeShape      string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowComputed:   true,
		ShowBareLabels: true,
		RankDirection:  "LR",
		NodeShape:      "box",
	}
}

// NewDOTGenerator creates a new DOT generator for the given configuration
func NewDOTGenerator(config stately.Config, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		config:  config,
		options: opts,
	}
}

// Generate creates a DOT representation of the configuration
func (g *DOTGenerator) Generate() (string, error) {
	if len(g.config.States) == 0 {
		return "", fmt.Errorf("configuration %q has no states", g.config.Name)
	}

	var dot strings.Builder

	name := g.config.Name
	if name == "" {
		name = "StateMachine"
	}

	dot.WriteString(fmt.Sprintf("digraph %s {\n", quote(name)))
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateStates(&dot)
	g.generateTransitions(&dot)

	dot.WriteString("}\n")

	return dot.String(), nil
}

// generateStates generates DOT nodes for all states
func (g *DOTGenerator) generateStates(dot *strings.Builder) {
	dot.WriteString("  // States\n")

	for _, stateName := range g.config.StateNames() {
		def, _ := g.config.State(stateName)
		g.generateStateNode(dot, def, stateName == g.config.Initial)
	}

	dot.WriteString("\n")
}

// generateStateNode generates a DOT node for a single state
func (g *DOTGenerator) generateStateNode(dot *strings.Builder, def stately.StateDef, isInitial bool) {
	attrs := []string{fmt.Sprintf("label=%s", quote(def.Name))}
	fillColor := "lightblue"

	if def.IsTerminal() {
		attrs = append(attrs, "shape=doublecircle")
		fillColor = "lightcoral"
	}
	if isInitial {
		fillColor = "lightgreen"
	}
	attrs = append(attrs, "style=filled", "fillcolor="+fillColor)

	dot.WriteString(fmt.Sprintf("  %s [%s];\n", quote(def.Name), strings.Join(attrs, ", ")))
}

// generateTransitions generates DOT edges for all transitions
func (g *DOTGenerator) generateTransitions(dot *strings.Builder) {
	dot.WriteString("  // Transitions\n")

	computedNode := false
	for _, def := range g.config.States {
		if def.Next != "" && g.options.ShowBareLabels {
			dot.WriteString(fmt.Sprintf("  %s -> %s [style=dotted];\n", quote(def.Name), quote(def.Next)))
		}

		for _, t := range def.Transitions {
			if t.Value.IsComputed() {
				if !g.options.ShowComputed {
					continue
				}
				computedNode = true
				dot.WriteString(fmt.Sprintf("  %s -> %s [label=%s, style=dashed];\n",
					quote(def.Name), quote(computedID), quote(t.Name+"()")))
				continue
			}
			if t.Value.Target() == "" {
				continue
			}
			dot.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n",
				quote(def.Name), quote(t.Value.Target()), quote(t.Name)))
		}
	}

	if computedNode {
		dot.WriteString(fmt.Sprintf("  %s [label=\"?\", shape=diamond];\n", quote(computedID)))
	}
}

// computedID is the node standing for targets only known at run time
const computedID = "__computed__"

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// SaveToFile saves the DOT representation to a file
func (g *DOTGenerator) SaveToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0o644)
}
