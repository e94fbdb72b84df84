package definition

import (
	"fmt"

	"github.com/anggasct/stately"
	"github.com/anggasct/stately/pkg/utils"
)

// Lint reports definition problems the engine would only surface at run
// time: an unknown initial state, literal targets and bare labels that are
// not states, and empty names. It returns nil for a clean definition.
func Lint(cfg stately.Config) error {
	ec := utils.NewErrorCollector()

	valid := make(map[string]bool, len(cfg.States))
	for _, s := range cfg.States {
		if s.Name == "" {
			ec.Add(utils.NewConfigurationError("states", "empty state name"))
			continue
		}
		valid[s.Name] = true
	}

	if cfg.Initial == "" {
		ec.Add(utils.NewConfigurationError("initial", "missing"))
	} else if !valid[cfg.Initial] {
		ec.Add(utils.NewConfigurationError("initial", fmt.Sprintf("%q is not a state", cfg.Initial)))
	}

	for _, s := range cfg.States {
		path := "states." + s.Name
		if s.Next != "" && !valid[s.Next] {
			ec.Add(utils.NewConfigurationError(path, fmt.Sprintf("label %q is not a state", s.Next)))
		}
		for _, t := range s.Transitions {
			tpath := path + "." + t.Name
			if t.Name == "" {
				ec.Add(utils.NewConfigurationError(path, "empty transition name"))
				continue
			}
			if t.Value.IsComputed() {
				continue
			}
			if target := t.Value.Target(); target == "" {
				ec.Add(utils.NewConfigurationError(tpath, "no target"))
			} else if !valid[target] {
				ec.Add(utils.NewConfigurationError(tpath, fmt.Sprintf("target %q is not a state", target)))
			}
		}
	}

	return ec.Err()
}
