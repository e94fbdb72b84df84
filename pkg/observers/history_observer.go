package observers

import (
	"sync"

	"github.com/anggasct/stately"
)

// Entry is one recorded state entry
type Entry struct {
	MachineID     string
	State         string
	PreviousState string
	Transition    string
}

// HistoryObserver records the states a machine enters, keeping at most limit
// entries. Errors are recorded separately.
type HistoryObserver struct {
	stately.BaseObserver

	limit   int
	entries []Entry
	visited map[string]int
	errors  []*stately.StateMachineError
	mutex   sync.RWMutex
}

// NewHistoryObserver creates a history observer; limit <= 0 keeps everything
func NewHistoryObserver(limit int) *HistoryObserver {
	return &HistoryObserver{
		limit:   limit,
		entries: make([]Entry, 0),
		visited: make(map[string]int),
	}
}

// OnStateEnter records a state entry
func (o *HistoryObserver) OnStateEnter(machineID string, state string, change stately.StateChange) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.entries = append(o.entries, Entry{
		MachineID:     machineID,
		State:         state,
		PreviousState: change.PreviousState,
		Transition:    change.LastTransition,
	})
	if o.limit > 0 && len(o.entries) > o.limit {
		o.entries = o.entries[len(o.entries)-o.limit:]
	}
	o.visited[state]++
}

// OnError records a machine error
func (o *HistoryObserver) OnError(_ string, err *stately.StateMachineError) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.errors = append(o.errors, err)
}

// Entries returns a copy of the recorded entries, oldest first
func (o *HistoryObserver) Entries() []Entry {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	out := make([]Entry, len(o.entries))
	copy(out, o.entries)
	return out
}

// States returns the entered states, oldest first
func (o *HistoryObserver) States() []string {
	entries := o.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.State
	}
	return out
}

// Visits returns how many times state was entered
func (o *HistoryObserver) Visits(state string) int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.visited[state]
}

// Errors returns the recorded machine errors
func (o *HistoryObserver) Errors() []*stately.StateMachineError {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	out := make([]*stately.StateMachineError, len(o.errors))
	copy(out, o.errors)
	return out
}

// Reset clears all recorded data
func (o *HistoryObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.entries = o.entries[:0]
	o.visited = make(map[string]int)
	o.errors = nil
}
