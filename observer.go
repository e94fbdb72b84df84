package stately

import (
	"fmt"
	"sync"
)

// StateHandler is invoked after the machine enters the state it was
// registered for. A returned error is passed straight to the caller of
// Start or Transition.
type StateHandler func(change StateChange) error

// ChangeHandler is the catch-all handler for states without a StateHandler
type ChangeHandler func(state string, change StateChange) error

// ErrorHandler observes every routed machine error when the machine does not throw
type ErrorHandler func(err *StateMachineError, data *Context)

// Observer represents an entity that observes the machine lifecycle. Unlike
// state handlers, observers cannot fail a transition: their panics are
// recovered.
type Observer interface {
	// OnStateEnter is called after a state is applied, before handlers run
	OnStateEnter(machineID string, state string, change StateChange)

	// OnError is called for every routed machine error
	OnError(machineID string, err *StateMachineError)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnMachineStarted is called when Start replaces the context
	OnMachineStarted(machineID string, data *Context)

	// OnTransitionAttempt is called before a transition is resolved
	OnTransitionAttempt(machineID string, from string, transition string)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnStateEnter implements the required Observer method
func (o *BaseObserver) OnStateEnter(machineID string, state string, change StateChange) {}

// OnError implements the required Observer method
func (o *BaseObserver) OnError(machineID string, err *StateMachineError) {}

// OnMachineStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnMachineStarted(machineID string, data *Context) {}

// OnTransitionAttempt implements the optional ExtendedObserver method
func (o *BaseObserver) OnTransitionAttempt(machineID string, from string, transition string) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
	mutex     sync.RWMutex

	// OnPanic receives observer panics; nil discards them
	OnPanic func(err error)
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	if observer == nil {
		return
	}
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	return len(om.observers)
}

func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

func (om *ObserverManager) guard(hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil && om.OnPanic != nil {
			om.OnPanic(fmt.Errorf("observer panic in %s: %v", hook, r))
		}
	}()
	fn()
}

// NotifyStateEnter notifies all observers of state entry
func (om *ObserverManager) NotifyStateEnter(machineID, state string, change StateChange) {
	for _, observer := range om.snapshot() {
		om.guard("OnStateEnter", func() {
			observer.OnStateEnter(machineID, state, change)
		})
	}
}

// NotifyError notifies all observers of a routed machine error
func (om *ObserverManager) NotifyError(machineID string, err *StateMachineError) {
	for _, observer := range om.snapshot() {
		om.guard("OnError", func() {
			observer.OnError(machineID, err)
		})
	}
}

// NotifyMachineStarted notifies all observers that the machine has started
func (om *ObserverManager) NotifyMachineStarted(machineID string, data *Context) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.guard("OnMachineStarted", func() {
				extObs.OnMachineStarted(machineID, data)
			})
		}
	}
}

// NotifyTransitionAttempt notifies all observers that a transition was requested
func (om *ObserverManager) NotifyTransitionAttempt(machineID, from, transition string) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			om.guard("OnTransitionAttempt", func() {
				extObs.OnTransitionAttempt(machineID, from, transition)
			})
		}
	}
}
