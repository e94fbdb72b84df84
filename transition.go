package stately

import (
	"context"
	"fmt"
)

// Procedure computes the next state of a transition. It may read and mutate
// the machine context. Returning an error or panicking fails the transition
// with a MACHINE_ERROR.
type Procedure func(ctx context.Context, data *Context, params any) (string, error)

// Transition is the value bound to a transition name: either a literal target
// state or a procedure that computes one.
type Transition struct {
	target    string
	procedure Procedure
}

// Literal creates a transition that relabels the machine to state
func Literal(state string) Transition {
	return Transition{target: state}
}

// Computed creates a transition whose target is produced by procedure
func Computed(procedure Procedure) Transition {
	return Transition{procedure: procedure}
}

// IsComputed reports whether the transition runs a procedure
func (t Transition) IsComputed() bool {
	return t.procedure != nil
}

// Target returns the literal target state, empty for computed transitions
func (t Transition) Target() string {
	return t.target
}

// Procedure returns the procedure of a computed transition
func (t Transition) Procedure() Procedure {
	return t.procedure
}

// defined is false for the zero Transition, which never resolves.
func (t Transition) defined() bool {
	return t.procedure != nil || t.target != ""
}

func (t Transition) evaluate(ctx context.Context, inv invoker, data *Context, params any) (string, error) {
	if t.procedure == nil {
		return t.target, nil
	}
	return inv.evaluate(ctx, t.procedure, data, params)
}

// safeEvaluate runs a procedure, turning a panic into an error
func safeEvaluate(ctx context.Context, procedure Procedure, data *Context, params any) (state string, err error) {
	defer func() {
		if r := recover(); r != nil {
			state = ""
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()

	return procedure(ctx, data, params)
}

// TransitionDef names a transition inside a state definition
type TransitionDef struct {
	Name  string
	Value Transition
}

// On pairs a transition name with its value
func On(name string, value Transition) TransitionDef {
	return TransitionDef{Name: name, Value: value}
}
