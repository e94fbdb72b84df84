package stately

import (
	"fmt"
	"sort"

	"github.com/anggasct/stately/pkg/utils"
)

// ShortcutKind tells what a shortcut does when invoked
type ShortcutKind int

const (
	// ShortcutObserve registers a handler for a state
	ShortcutObserve ShortcutKind = iota
	// ShortcutTransition runs a named transition
	ShortcutTransition
)

func (k ShortcutKind) String() string {
	switch k {
	case ShortcutObserve:
		return "observe"
	case ShortcutTransition:
		return "transition"
	default:
		return fmt.Sprintf("ShortcutKind(%d)", int(k))
	}
}

// Shortcut is a convenience operation derived from the configuration
type Shortcut struct {
	Name   string
	Kind   ShortcutKind
	Target string
}

// reservedNames are engine operations a shortcut can never shadow
var reservedNames = map[string]bool{
	"start":          true,
	"transition":     true,
	"getState":       true,
	"onState":        true,
	"onStateChanges": true,
	"onError":        true,
	"invoke":         true,
}

// IsReserved reports whether name belongs to an engine operation
func IsReserved(name string) bool {
	return reservedNames[name]
}

type shortcutTable struct {
	entries map[string]Shortcut
	order   []string
}

// bindShortcuts builds the dispatch table. Observer shortcuts are bound
// first, then transition shortcuts; the first claim on a name wins.
func bindShortcuts(cfg Config) *shortcutTable {
	t := &shortcutTable{entries: make(map[string]Shortcut)}

	for _, state := range cfg.StateNames() {
		t.claim(Shortcut{
			Name:   utils.ObserverMethodName(state),
			Kind:   ShortcutObserve,
			Target: state,
		})
	}

	for _, s := range cfg.States {
		if !s.HasTransitions() {
			continue
		}
		for _, tr := range s.Transitions {
			t.claim(Shortcut{Name: tr.Name, Kind: ShortcutTransition, Target: tr.Name})
		}
	}

	return t
}

func (t *shortcutTable) claim(s Shortcut) {
	if s.Name == "" || reservedNames[s.Name] {
		return
	}
	if _, taken := t.entries[s.Name]; taken {
		return
	}
	t.entries[s.Name] = s
	t.order = append(t.order, s.Name)
}

func (t *shortcutTable) lookup(name string) (Shortcut, bool) {
	s, ok := t.entries[name]
	return s, ok
}

// list returns the shortcuts sorted by name
func (t *shortcutTable) list() []Shortcut {
	out := make([]Shortcut, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.entries[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// stateHandlerArg converts an Invoke argument into a StateHandler
func stateHandlerArg(name string, arg any) (StateHandler, error) {
	switch h := arg.(type) {
	case StateHandler:
		if h != nil {
			return h, nil
		}
	case func(StateChange) error:
		if h != nil {
			return h, nil
		}
	case func(StateChange):
		if h != nil {
			return func(change StateChange) error {
				h(change)
				return nil
			}, nil
		}
	}

	if utils.IsCallable(arg) {
		return nil, NewShortcutError(name, fmt.Sprintf("unsupported handler signature %T", arg))
	}
	return nil, NewShortcutError(name, "argument is not a state handler")
}
