package stately

// Status is the snapshot returned by every successful operation
type Status struct {
	CurrentState   string   `json:"currentState"`
	LastTransition string   `json:"lastTransition,omitempty"`
	Context        *Context `json:"context"`
}

// StateChange is handed to state handlers after a state is applied
type StateChange struct {
	LastTransition string
	PreviousState  string
	Context        *Context
}

// Result is the outcome of Start, Transition and Invoke. When the machine does
// not throw, machine errors are reported through Error and Status mirrors the
// error record.
type Result struct {
	Status
	Error *StateMachineError `json:"error,omitempty"`
}

// NewResult creates a successful result
func NewResult(status Status) *Result {
	return &Result{Status: status}
}

// NewErrorResult creates a result carrying an error record
func NewErrorResult(err *StateMachineError) *Result {
	return &Result{
		Status: Status{
			CurrentState:   err.CurrentState,
			LastTransition: err.LastTransition,
			Context:        err.Context,
		},
		Error: err,
	}
}

// Success returns true if no machine error was reported
func (r *Result) Success() bool {
	return r != nil && r.Error == nil
}

// Err returns the error record as an error, nil on success
func (r *Result) Err() error {
	if r == nil || r.Error == nil {
		return nil
	}
	return r.Error
}
