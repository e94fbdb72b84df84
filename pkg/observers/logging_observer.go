// Package observers provides lifecycle observers for monitoring machines
package observers

import (
	"context"
	"log/slog"

	"github.com/anggasct/stately"
)

// LoggingObserver logs machine lifecycle events with log/slog
type LoggingObserver struct {
	logger *slog.Logger
	level  slog.Level
}

var _ stately.ExtendedObserver = (*LoggingObserver)(nil)

// NewLoggingObserver creates a logging observer. State entries and starts are
// logged at level; machine errors are always logged at slog.LevelError.
func NewLoggingObserver(logger *slog.Logger, level slog.Level) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger.With(slog.String("component", "stately")),
		level:  level,
	}
}

// NewDefaultLoggingObserver creates a logging observer on slog.Default at info level
func NewDefaultLoggingObserver() *LoggingObserver {
	return NewLoggingObserver(slog.Default(), slog.LevelInfo)
}

// OnStateEnter logs state entry
func (o *LoggingObserver) OnStateEnter(machineID string, state string, change stately.StateChange) {
	o.logger.Log(context.Background(), o.level, "state entered",
		slog.String("machine_id", machineID),
		slog.String("state", state),
		slog.String("previous_state", change.PreviousState),
		slog.String("transition", change.LastTransition),
	)
}

// OnError logs routed machine errors
func (o *LoggingObserver) OnError(machineID string, err *stately.StateMachineError) {
	attrs := []any{
		slog.String("machine_id", machineID),
		slog.String("kind", string(err.Kind)),
		slog.String("current_state", err.CurrentState),
	}
	if err.Transition != "" {
		attrs = append(attrs, slog.String("transition", err.Transition))
	}
	if err.State != "" {
		attrs = append(attrs, slog.String("state", err.State))
	}
	o.logger.Error(err.Message, attrs...)
}

// OnMachineStarted logs machine start
func (o *LoggingObserver) OnMachineStarted(machineID string, data *stately.Context) {
	o.logger.Log(context.Background(), o.level, "machine started",
		slog.String("machine_id", machineID),
		slog.Int("context_keys", data.Len()),
	)
}

// OnTransitionAttempt logs requested transitions at debug level
func (o *LoggingObserver) OnTransitionAttempt(machineID string, from string, transition string) {
	o.logger.Debug("transition requested",
		slog.String("machine_id", machineID),
		slog.String("from", from),
		slog.String("transition", transition),
	)
}
