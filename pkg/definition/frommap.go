package definition

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/anggasct/stately"
	"github.com/anggasct/stately/pkg/utils"
)

// FromMap builds a configuration from loosely typed state entries. Each entry
// is nil (terminal), a string (bare next-state label) or a structured value
// mapping transition names to a state name, a stately.Transition, a
// stately.Procedure or a func(*stately.Context, any) (string, error).
// States and transitions are ordered by name.
func FromMap(name, initial string, states map[string]any) (stately.Config, error) {
	cfg := stately.Config{Name: name, Initial: initial}

	for _, stateName := range sortedKeys(states) {
		entry := states[stateName]
		path := "states." + stateName

		switch {
		case entry == nil:
			cfg.States = append(cfg.States, stately.Terminal(stateName))
		case isString(entry):
			cfg.States = append(cfg.States, stately.Bare(stateName, entry.(string)))
		case utils.IsStructured(entry):
			transitions, err := transitionsOf(path, entry)
			if err != nil {
				return cfg, err
			}
			cfg.States = append(cfg.States, stately.Branch(stateName, transitions...))
		default:
			return cfg, utils.NewConfigurationError(path, fmt.Sprintf("unsupported entry of type %T", entry))
		}
	}

	return cfg, nil
}

func transitionsOf(path string, entry any) ([]stately.TransitionDef, error) {
	table, ok := entry.(map[string]any)
	if !ok {
		return nil, utils.NewConfigurationError(path, fmt.Sprintf("transitions must be a map[string]any, got %T", entry))
	}

	out := make([]stately.TransitionDef, 0, len(table))
	for _, name := range sortedKeys(table) {
		value, err := transitionOf(path+"."+name, table[name])
		if err != nil {
			return nil, err
		}
		out = append(out, stately.On(name, value))
	}
	return out, nil
}

func transitionOf(path string, value any) (stately.Transition, error) {
	switch v := value.(type) {
	case nil:
		return stately.Transition{}, nil
	case string:
		return stately.Literal(v), nil
	case stately.Transition:
		return v, nil
	case stately.Procedure:
		return stately.Computed(v), nil
	case func(context.Context, *stately.Context, any) (string, error):
		return stately.Computed(v), nil
	case func(*stately.Context, any) (string, error):
		return stately.Computed(func(_ context.Context, data *stately.Context, params any) (string, error) {
			return v(data, params)
		}), nil
	}

	if utils.IsCallable(value) {
		return stately.Transition{}, utils.NewConfigurationError(path, fmt.Sprintf("unsupported procedure signature %s", reflect.TypeOf(value)))
	}
	return stately.Transition{}, utils.NewConfigurationError(path, fmt.Sprintf("unsupported transition value of type %T", value))
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
