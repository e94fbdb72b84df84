package observers

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anggasct/stately"
)

// MetricsObserver exports machine activity as Prometheus metrics
type MetricsObserver struct {
	stateEntries *prometheus.CounterVec
	attempts     *prometheus.CounterVec
	errors       *prometheus.CounterVec
	starts       *prometheus.CounterVec
}

var _ stately.ExtendedObserver = (*MetricsObserver)(nil)

// NewMetricsObserver creates a metrics observer and registers its collectors
// on reg. A nil reg leaves the collectors unregistered.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	o := &MetricsObserver{
		stateEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stately_state_entries_total",
			Help: "Number of times a state was entered",
		}, []string{"machine", "state", "transition"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stately_transition_attempts_total",
			Help: "Number of requested transitions",
		}, []string{"machine", "transition"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stately_errors_total",
			Help: "Number of machine errors, partitioned by kind",
		}, []string{"machine", "kind"}),
		starts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stately_starts_total",
			Help: "Number of machine starts",
		}, []string{"machine"}),
	}

	if reg != nil {
		for _, c := range o.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return o, nil
}

// Collectors returns the observer's collectors
func (o *MetricsObserver) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.stateEntries, o.attempts, o.errors, o.starts}
}

// StateEntries returns the state entry counter
func (o *MetricsObserver) StateEntries() *prometheus.CounterVec { return o.stateEntries }

// Attempts returns the transition attempt counter
func (o *MetricsObserver) Attempts() *prometheus.CounterVec { return o.attempts }

// Errors returns the error counter
func (o *MetricsObserver) Errors() *prometheus.CounterVec { return o.errors }

// Starts returns the start counter
func (o *MetricsObserver) Starts() *prometheus.CounterVec { return o.starts }

// OnStateEnter records state entry metrics
func (o *MetricsObserver) OnStateEnter(machineID string, state string, change stately.StateChange) {
	o.stateEntries.WithLabelValues(machineID, state, change.LastTransition).Inc()
}

// OnError records error metrics
func (o *MetricsObserver) OnError(machineID string, err *stately.StateMachineError) {
	o.errors.WithLabelValues(machineID, string(err.Kind)).Inc()
}

// OnMachineStarted records machine starts
func (o *MetricsObserver) OnMachineStarted(machineID string, _ *stately.Context) {
	o.starts.WithLabelValues(machineID).Inc()
}

// OnTransitionAttempt records requested transitions
func (o *MetricsObserver) OnTransitionAttempt(machineID string, _ string, transition string) {
	o.attempts.WithLabelValues(machineID, transition).Inc()
}
