package stately

import (
	"context"
)

// Machine is the blocking state machine engine. Every operation completes
// before returning; handlers may re-enter Transition synchronously.
type Machine struct {
	engine *engine
}

// NewMachine creates a blocking machine for cfg
func NewMachine(cfg Config, opts ...Option) *Machine {
	return &Machine{engine: newEngine(cfg, opts)}
}

// ID returns the machine instance ID
func (m *Machine) ID() string {
	return m.engine.id
}

// Name returns the configuration name
func (m *Machine) Name() string {
	return m.engine.registry.name
}

// ValidStates returns the valid state names in declaration order
func (m *Machine) ValidStates() []string {
	return m.engine.registry.validStates()
}

// Start replaces the context, clears the last transition and enters the
// initial state. A nil data starts with an empty context.
func (m *Machine) Start(data *Context) (*Result, error) {
	return m.StartWithContext(context.Background(), data)
}

// StartWithContext is Start with a context handed to handlers and procedures
func (m *Machine) StartWithContext(ctx context.Context, data *Context) (*Result, error) {
	return m.engine.start(ctx, syncInvoker{}, data)
}

// Transition runs the named transition from the current state
func (m *Machine) Transition(name string, params any) (*Result, error) {
	return m.TransitionWithContext(context.Background(), name, params)
}

// TransitionWithContext is Transition with a context handed to the procedure
func (m *Machine) TransitionWithContext(ctx context.Context, name string, params any) (*Result, error) {
	return m.engine.transition(ctx, syncInvoker{}, name, params)
}

// GetState returns the current status snapshot
func (m *Machine) GetState() Status {
	return m.engine.status()
}

// CurrentState returns the current state name, empty before Start
func (m *Machine) CurrentState() string {
	return m.engine.status().CurrentState
}

// OnState registers the handler for state, replacing any earlier one
func (m *Machine) OnState(state string, handler StateHandler) *Machine {
	m.engine.onState(state, handler)
	return m
}

// OnStateChanges registers the catch-all handler
func (m *Machine) OnStateChanges(handler ChangeHandler) *Machine {
	m.engine.onStateChanges(handler)
	return m
}

// OnError registers the error handler
func (m *Machine) OnError(handler ErrorHandler) *Machine {
	m.engine.onError(handler)
	return m
}

// On registers handler through an observer shortcut such as "onRed".
// It panics with a *ShortcutError if method is not an observer shortcut.
func (m *Machine) On(method string, handler StateHandler) *Machine {
	m.engine.mustObserve(method, handler)
	return m
}

// Invoke calls a shortcut by name. Transition shortcuts run the transition
// with arg as params; observer shortcuts register arg as the state handler
// and return the current status.
func (m *Machine) Invoke(name string, arg any) (*Result, error) {
	return m.InvokeWithContext(context.Background(), name, arg)
}

// InvokeWithContext is Invoke with a context for transition shortcuts
func (m *Machine) InvokeWithContext(ctx context.Context, name string, arg any) (*Result, error) {
	s, err := m.engine.shortcutFor(name)
	if err != nil {
		return nil, err
	}
	if s.Kind == ShortcutTransition {
		return m.TransitionWithContext(ctx, s.Target, arg)
	}
	if err := m.engine.observeShortcut(s, arg); err != nil {
		return nil, err
	}
	return NewResult(m.GetState()), nil
}

// Shortcut looks up a shortcut by name
func (m *Machine) Shortcut(name string) (Shortcut, bool) {
	return m.engine.registry.shortcuts.lookup(name)
}

// Shortcuts lists every bound shortcut sorted by name
func (m *Machine) Shortcuts() []Shortcut {
	return m.engine.registry.shortcuts.list()
}

// AddObserver adds a lifecycle observer
func (m *Machine) AddObserver(observer Observer) {
	m.engine.observers.AddObserver(observer)
}

// RemoveObserver removes a lifecycle observer
func (m *Machine) RemoveObserver(observer Observer) {
	m.engine.observers.RemoveObserver(observer)
}
