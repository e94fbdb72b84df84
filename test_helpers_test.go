package stately

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// procedureSpy is a transition procedure that records its calls
type procedureSpy struct {
	mutex  sync.Mutex
	calls  int
	params []any
	next   string
	err    error
}

func newProcedureSpy(next string, err error) *procedureSpy {
	return &procedureSpy{next: next, err: err}
}

func (p *procedureSpy) Procedure(_ context.Context, _ *Context, params any) (string, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.calls++
	p.params = append(p.params, params)
	return p.next, p.err
}

func (p *procedureSpy) Calls() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.calls
}

// waitingMachine mirrors a start -> waiting -> end machine with a computed
// last step.
func waitingMachine(next *procedureSpy) Config {
	return Config{
		Name:    "test-states-1",
		Initial: "start",
		States: []StateDef{
			Branch("start", On("begin", Literal("waiting")), On("next", Literal("waiting"))),
			Branch("waiting", On("next", Computed(next.Procedure))),
			Terminal("end"),
		},
	}
}

// erroringMachine has one transition of every failing kind
func erroringMachine() Config {
	return Config{
		Name:    "test-states-2",
		Initial: "start",
		States: []StateDef{
			Branch("start", On("begin", Literal("waiting"))),
			Branch("waiting", On("bounce", Literal("invalid")), On("slide", Literal("end"))),
			Branch("end", On("jumpOffACliff", Computed(func(context.Context, *Context, any) (string, error) {
				return "", errors.New("error")
			}))),
		},
	}
}

// trafficLight cycles green -> yellow -> red -> green once; the second
// attempt to leave red fails.
func trafficLight() Config {
	return Define("light").
		State("green").On("timer").To("yellow").
		State("yellow").On("timer").To("red").
		State("red").On("timer").Do(redTimer).
		State("done").Final().
		Build()
}

func redTimer(_ context.Context, data *Context, _ any) (string, error) {
	count, _ := data.GetInt("count")
	if count > 0 {
		return "", errors.New("You can't do that")
	}
	data.Set("count", count+1)
	return "green", nil
}

// AssertState checks the machine's current state
func AssertState(t *testing.T, m interface{ CurrentState() string }, expected string) {
	t.Helper()
	require.Equal(t, expected, m.CurrentState(), "unexpected current state")
}

// AssertSuccess checks that an operation succeeded and landed in state
func AssertSuccess(t *testing.T, result *Result, err error, state string) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Nil(t, result.Error, "unexpected machine error")
	require.Equal(t, state, result.CurrentState)
}

// AssertMachineError checks that an operation returned an error record of kind
func AssertMachineError(t *testing.T, result *Result, err error, kind ErrorKind) *StateMachineError {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.Error, "expected a machine error")
	require.Equal(t, kind, result.Error.Kind)
	require.False(t, result.Success())
	return result.Error
}

// AssertThrown checks that an operation raised an error record of kind
func AssertThrown(t *testing.T, result *Result, err error, kind ErrorKind) *StateMachineError {
	t.Helper()
	require.Nil(t, result)
	smErr, ok := AsStateMachineError(err)
	require.True(t, ok, "expected a *StateMachineError, got %v", err)
	require.Equal(t, kind, smErr.Kind)
	return smErr
}

// recordingObserver captures lifecycle notifications
type recordingObserver struct {
	BaseObserver

	mutex    sync.Mutex
	entered  []string
	errors   []ErrorKind
	attempts []string
	starts   int
}

func (o *recordingObserver) OnStateEnter(_ string, state string, _ StateChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.entered = append(o.entered, state)
}

func (o *recordingObserver) OnError(_ string, err *StateMachineError) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.errors = append(o.errors, err.Kind)
}

func (o *recordingObserver) OnMachineStarted(string, *Context) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.starts++
}

func (o *recordingObserver) OnTransitionAttempt(_ string, _ string, transition string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.attempts = append(o.attempts, transition)
}
