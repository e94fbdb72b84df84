// Package definition builds machine configurations from YAML documents and
// loosely typed maps.
package definition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anggasct/stately"
	"github.com/anggasct/stately/pkg/utils"
)

// document is the top level of a YAML definition. States stay a node so the
// declaration order survives decoding.
type document struct {
	Name    string    `yaml:"name"`
	Initial string    `yaml:"initial"`
	States  yaml.Node `yaml:"states"`
}

// procedureCall is a {call, args} transition entry
type procedureCall struct {
	Call string         `yaml:"call"`
	Args map[string]any `yaml:"args"`
}

// LoadFile reads and loads a YAML definition from path
func LoadFile(path string, reg Registry) (stately.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return stately.Config{}, err
	}
	return Load(data, reg)
}

// Load decodes a YAML definition. Procedure calls are resolved through reg.
func Load(data []byte, reg Registry) (stately.Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return stately.Config{}, utils.NewConfigurationError("definition", "invalid YAML").WithCause(err)
	}

	cfg := stately.Config{Name: doc.Name, Initial: doc.Initial}

	states := &doc.States
	if states.Kind == 0 {
		return cfg, utils.NewConfigurationError("states", "missing")
	}
	if states.Kind != yaml.MappingNode {
		return cfg, utils.NewConfigurationError("states", "must be a mapping")
	}

	for i := 0; i+1 < len(states.Content); i += 2 {
		name := states.Content[i].Value
		def, err := decodeState(name, states.Content[i+1], reg)
		if err != nil {
			return cfg, err
		}
		cfg.States = append(cfg.States, def)
	}

	return cfg, nil
}

func decodeState(name string, node *yaml.Node, reg Registry) (stately.StateDef, error) {
	path := "states." + name

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return stately.Terminal(name), nil
		}
		return stately.Bare(name, node.Value), nil
	case yaml.MappingNode:
		transitions := make([]stately.TransitionDef, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			tname := node.Content[i].Value
			value, err := decodeTransition(path+"."+tname, node.Content[i+1], reg)
			if err != nil {
				return stately.StateDef{}, err
			}
			transitions = append(transitions, stately.On(tname, value))
		}
		return stately.Branch(name, transitions...), nil
	default:
		return stately.StateDef{}, utils.NewConfigurationError(path, "must be null, a state name or a mapping of transitions")
	}
}

func decodeTransition(path string, node *yaml.Node, reg Registry) (stately.Transition, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return stately.Literal(node.Value), nil
	case yaml.MappingNode:
		var call procedureCall
		if err := node.Decode(&call); err != nil {
			return stately.Transition{}, utils.NewConfigurationError(path, "invalid procedure call").WithCause(err)
		}
		return resolveCall(path, call, reg)
	default:
		return stately.Transition{}, utils.NewConfigurationError(path, "must be a state name or a {call, args} mapping")
	}
}

func resolveCall(path string, call procedureCall, reg Registry) (stately.Transition, error) {
	if call.Call == "" {
		return stately.Transition{}, utils.NewConfigurationError(path, "procedure call without a name")
	}
	factory, ok := reg[call.Call]
	if !ok {
		return stately.Transition{}, utils.NewConfigurationError(path, fmt.Sprintf("unknown procedure %q", call.Call))
	}
	procedure, err := factory(call.Args)
	if err != nil {
		return stately.Transition{}, utils.NewConfigurationError(path, fmt.Sprintf("procedure %q", call.Call)).WithCause(err)
	}
	return stately.Computed(procedure), nil
}
