package stately

import (
	"context"
)

// AsyncMachine is the suspending variant of Machine. Start, Transition and
// Invoke return immediately with a Future; transition procedures and state
// handlers run as tasks the operation waits on.
//
// Several operations may be in flight on one AsyncMachine. They progress
// independently against the same context and nothing orders them; callers
// that need ordering must await each future before issuing the next.
type AsyncMachine struct {
	engine *engine
}

// NewAsyncMachine creates a suspending machine for cfg
func NewAsyncMachine(cfg Config, opts ...Option) *AsyncMachine {
	return &AsyncMachine{engine: newEngine(cfg, opts)}
}

// ID returns the machine instance ID
func (m *AsyncMachine) ID() string {
	return m.engine.id
}

// Name returns the configuration name
func (m *AsyncMachine) Name() string {
	return m.engine.registry.name
}

// ValidStates returns the valid state names in declaration order
func (m *AsyncMachine) ValidStates() []string {
	return m.engine.registry.validStates()
}

// Start replaces the context and enters the initial state
func (m *AsyncMachine) Start(ctx context.Context, data *Context) *Future[*Result] {
	return goFuture(func() (*Result, error) {
		return m.engine.start(ctx, asyncInvoker{}, data)
	})
}

// Transition runs the named transition from the current state
func (m *AsyncMachine) Transition(ctx context.Context, name string, params any) *Future[*Result] {
	return goFuture(func() (*Result, error) {
		return m.engine.transition(ctx, asyncInvoker{}, name, params)
	})
}

// GetState returns the current status snapshot
func (m *AsyncMachine) GetState() Status {
	return m.engine.status()
}

// CurrentState returns the current state name, empty before Start
func (m *AsyncMachine) CurrentState() string {
	return m.engine.status().CurrentState
}

// OnState registers the handler for state, replacing any earlier one
func (m *AsyncMachine) OnState(state string, handler StateHandler) *AsyncMachine {
	m.engine.onState(state, handler)
	return m
}

// OnStateChanges registers the catch-all handler
func (m *AsyncMachine) OnStateChanges(handler ChangeHandler) *AsyncMachine {
	m.engine.onStateChanges(handler)
	return m
}

// OnError registers the error handler
func (m *AsyncMachine) OnError(handler ErrorHandler) *AsyncMachine {
	m.engine.onError(handler)
	return m
}

// On registers handler through an observer shortcut such as "onRed".
// It panics with a *ShortcutError if method is not an observer shortcut.
func (m *AsyncMachine) On(method string, handler StateHandler) *AsyncMachine {
	m.engine.mustObserve(method, handler)
	return m
}

// Invoke calls a shortcut by name, see Machine.Invoke
func (m *AsyncMachine) Invoke(ctx context.Context, name string, arg any) *Future[*Result] {
	return goFuture(func() (*Result, error) {
		s, err := m.engine.shortcutFor(name)
		if err != nil {
			return nil, err
		}
		if s.Kind == ShortcutTransition {
			return m.engine.transition(ctx, asyncInvoker{}, s.Target, arg)
		}
		if err := m.engine.observeShortcut(s, arg); err != nil {
			return nil, err
		}
		return NewResult(m.engine.status()), nil
	})
}

// Shortcut looks up a shortcut by name
func (m *AsyncMachine) Shortcut(name string) (Shortcut, bool) {
	return m.engine.registry.shortcuts.lookup(name)
}

// Shortcuts lists every bound shortcut sorted by name
func (m *AsyncMachine) Shortcuts() []Shortcut {
	return m.engine.registry.shortcuts.list()
}

// AddObserver adds a lifecycle observer
func (m *AsyncMachine) AddObserver(observer Observer) {
	m.engine.observers.AddObserver(observer)
}

// RemoveObserver removes a lifecycle observer
func (m *AsyncMachine) RemoveObserver(observer Observer) {
	m.engine.observers.RemoveObserver(observer)
}
