package stately

// Config is the static description of a machine. States are ordered; the
// order decides which shortcut wins when two names collide.
type Config struct {
	Name    string
	Initial string
	States  []StateDef
}

// StateDef describes one state. A state with neither Next nor Transitions is
// terminal. Next is a bare next-state label; it is kept for documentation and
// rendering but never resolves as a transition.
type StateDef struct {
	Name        string
	Next        string
	Transitions []TransitionDef
}

// Terminal defines a state without outbound transitions
func Terminal(name string) StateDef {
	return StateDef{Name: name}
}

// Bare defines a state whose entry is a plain next-state label
func Bare(name, next string) StateDef {
	return StateDef{Name: name, Next: next}
}

// Branch defines a state with named transitions
func Branch(name string, transitions ...TransitionDef) StateDef {
	if transitions == nil {
		transitions = []TransitionDef{}
	}
	return StateDef{Name: name, Transitions: transitions}
}

// IsTerminal reports whether the state has no outbound transitions
func (s StateDef) IsTerminal() bool {
	return s.Next == "" && s.Transitions == nil
}

// HasTransitions reports whether the state entry is a transition map
func (s StateDef) HasTransitions() bool {
	return s.Transitions != nil
}

// State looks up a state definition by name
func (c Config) State(name string) (StateDef, bool) {
	for _, s := range c.States {
		if s.Name == name {
			return s, true
		}
	}
	return StateDef{}, false
}

// StateNames returns the state names in declaration order, without duplicates
func (c Config) StateNames() []string {
	seen := make(map[string]bool, len(c.States))
	names := make([]string, 0, len(c.States))
	for _, s := range c.States {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		names = append(names, s.Name)
	}
	return names
}

// registry is the immutable view of a Config used by the engines
type registry struct {
	name        string
	initial     string
	order       []string
	valid       map[string]struct{}
	transitions map[string]map[string]Transition
	shortcuts   *shortcutTable
}

func newRegistry(cfg Config) *registry {
	r := &registry{
		name:        cfg.Name,
		initial:     cfg.Initial,
		order:       cfg.StateNames(),
		valid:       make(map[string]struct{}, len(cfg.States)),
		transitions: make(map[string]map[string]Transition, len(cfg.States)),
	}

	for _, s := range cfg.States {
		r.valid[s.Name] = struct{}{}
		if !s.HasTransitions() {
			// a later definition of the same state replaces an earlier map
			delete(r.transitions, s.Name)
			continue
		}
		table := make(map[string]Transition, len(s.Transitions))
		for _, t := range s.Transitions {
			table[t.Name] = t.Value
		}
		r.transitions[s.Name] = table
	}

	r.shortcuts = bindShortcuts(cfg)
	return r
}

// isValid reports whether state is a member of the valid state set
func (r *registry) isValid(state string) bool {
	_, ok := r.valid[state]
	return ok
}

// resolve looks up transition name for the current state
func (r *registry) resolve(current, name string) (Transition, bool) {
	table, ok := r.transitions[current]
	if !ok {
		return Transition{}, false
	}
	t, ok := table[name]
	if !ok || !t.defined() {
		return Transition{}, false
	}
	return t, true
}

// validStates returns a copy of the valid state names in declaration order
func (r *registry) validStates() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
