package stately

import (
	"context"
	"fmt"
	"sync"
)

// invoker runs user code on behalf of the engine. The blocking engine calls
// inline; the suspending engine runs each call as a task and waits for it.
type invoker interface {
	evaluate(ctx context.Context, procedure Procedure, data *Context, params any) (string, error)
	notify(ctx context.Context, fn func() error) error
}

type syncInvoker struct{}

func (syncInvoker) evaluate(ctx context.Context, procedure Procedure, data *Context, params any) (string, error) {
	return safeEvaluate(ctx, procedure, data, params)
}

func (syncInvoker) notify(_ context.Context, fn func() error) error {
	return fn()
}

type asyncInvoker struct{}

type evaluation struct {
	state string
	err   error
}

func (asyncInvoker) evaluate(ctx context.Context, procedure Procedure, data *Context, params any) (string, error) {
	done := make(chan evaluation, 1)
	go func() {
		state, err := safeEvaluate(ctx, procedure, data, params)
		done <- evaluation{state: state, err: err}
	}()
	res := <-done
	return res.state, res.err
}

// handlerPanic carries a handler panic back to the awaiting goroutine
type handlerPanic struct {
	value any
}

func (asyncInvoker) notify(_ context.Context, fn func() error) error {
	done := make(chan error, 1)
	var panicked *handlerPanic
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = &handlerPanic{value: r}
				done <- nil
			}
		}()
		done <- fn()
	}()
	err := <-done
	if panicked != nil {
		panic(panicked.value)
	}
	return err
}

// engine is the transition pipeline shared by Machine and AsyncMachine
type engine struct {
	id       string
	throws   bool
	registry *registry

	observers *ObserverManager

	mutex          sync.RWMutex
	current        string
	lastTransition string
	data           *Context

	stateHandlers  map[string]StateHandler
	defaultHandler ChangeHandler
	errorHandler   ErrorHandler
}

func newEngine(cfg Config, opts []Option) *engine {
	o := newOptions(opts)
	e := &engine{
		id:            o.id,
		throws:        o.throws,
		registry:      newRegistry(cfg),
		observers:     NewObserverManager(),
		stateHandlers: make(map[string]StateHandler),
	}
	for _, obs := range o.observers {
		e.observers.AddObserver(obs)
	}
	return e
}

func (e *engine) status() Status {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return Status{
		CurrentState:   e.current,
		LastTransition: e.lastTransition,
		Context:        e.data,
	}
}

func (e *engine) start(ctx context.Context, inv invoker, data *Context) (*Result, error) {
	if data == nil {
		data = NewContext()
	}

	e.mutex.Lock()
	e.data = data
	e.lastTransition = ""
	e.mutex.Unlock()

	e.observers.NotifyMachineStarted(e.id, data)
	return e.apply(ctx, inv, e.registry.initial)
}

func (e *engine) transition(ctx context.Context, inv invoker, name string, params any) (*Result, error) {
	e.mutex.RLock()
	current, data := e.current, e.data
	e.mutex.RUnlock()

	e.observers.NotifyTransitionAttempt(e.id, current, name)

	t, ok := e.registry.resolve(current, name)
	if !ok {
		return e.fail(NewInvalidTransitionError(name, current))
	}

	next, err := t.evaluate(ctx, inv, data, params)
	if err != nil {
		return e.fail(NewMachineError(name, err))
	}

	e.mutex.Lock()
	e.lastTransition = name
	e.mutex.Unlock()

	return e.apply(ctx, inv, next)
}

// apply validates state, makes it current and notifies the matching handler
func (e *engine) apply(ctx context.Context, inv invoker, state string) (*Result, error) {
	if !e.registry.isValid(state) {
		return e.fail(NewInvalidStateError(state))
	}

	e.mutex.Lock()
	previous := e.current
	e.current = state
	change := StateChange{
		LastTransition: e.lastTransition,
		PreviousState:  previous,
		Context:        e.data,
	}
	handler := e.stateHandlers[state]
	fallback := e.defaultHandler
	e.mutex.Unlock()

	e.observers.NotifyStateEnter(e.id, state, change)

	var err error
	switch {
	case handler != nil:
		err = inv.notify(ctx, func() error { return handler(change) })
	case fallback != nil:
		err = inv.notify(ctx, func() error { return fallback(state, change) })
	}
	if err != nil {
		return nil, err
	}

	return NewResult(e.status()), nil
}

// fail routes a machine error through the error policy
func (e *engine) fail(smErr *StateMachineError) (*Result, error) {
	e.mutex.RLock()
	smErr.CurrentState = e.current
	smErr.LastTransition = e.lastTransition
	smErr.Context = e.data
	handler := e.errorHandler
	e.mutex.RUnlock()

	e.observers.NotifyError(e.id, smErr)

	if e.throws {
		return nil, smErr
	}

	if handler != nil {
		handler(smErr, smErr.Context)
	}

	return NewErrorResult(smErr), nil
}

func (e *engine) onState(state string, handler StateHandler) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if handler == nil {
		delete(e.stateHandlers, state)
		return
	}
	e.stateHandlers[state] = handler
}

func (e *engine) onStateChanges(handler ChangeHandler) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.defaultHandler = handler
}

func (e *engine) onError(handler ErrorHandler) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.errorHandler = handler
}

// shortcutFor resolves a shortcut name, failing for unknown names
func (e *engine) shortcutFor(name string) (Shortcut, error) {
	s, ok := e.registry.shortcuts.lookup(name)
	if !ok {
		return Shortcut{}, NewShortcutError(name, "no such shortcut")
	}
	return s, nil
}

// observeShortcut registers arg as the handler behind an observer shortcut
func (e *engine) observeShortcut(s Shortcut, arg any) error {
	handler, err := stateHandlerArg(s.Name, arg)
	if err != nil {
		return err
	}
	e.onState(s.Target, handler)
	return nil
}

func (e *engine) mustObserve(method string, handler StateHandler) {
	s, err := e.shortcutFor(method)
	if err != nil {
		panic(err)
	}
	if s.Kind != ShortcutObserve {
		panic(NewShortcutError(method, fmt.Sprintf("is a %s shortcut", s.Kind)))
	}
	e.onState(s.Target, handler)
}
