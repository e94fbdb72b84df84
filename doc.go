// Package stately provides declarative finite state machines built from a
// static configuration of named states and named transitions.
//
// A transition is either a literal target state or a procedure that computes
// the target from the machine context and call parameters. Machine errors
// (INVALID_TRANSITION, INVALID_STATE and MACHINE_ERROR) are either reported
// in the Result or returned as the operation's error, depending on WithThrows.
//
// Machine is the blocking engine; AsyncMachine runs the same pipeline but
// returns a Future from every operation. Both bind shortcuts derived from the
// configuration: "on"+State registers a state handler and every transition
// name runs that transition. Shortcuts are reached through Invoke.
//
//	m := stately.NewMachine(stately.Define("light").
//		State("green").On("timer").To("yellow").
//		State("yellow").On("timer").To("green").
//		Build())
//	m.On("onYellow", func(c stately.StateChange) error { return nil })
//	m.Start(nil)
//	m.Invoke("timer", nil)
package stately
