// Package observer defines a small metrics hook the Executor calls on
// every compile/run outcome. It never influences the Result; it exists
// so operators can wire in counters without touching pipeline logic.
package observer

// MetricsRecorder receives per-request outcome notifications.
type MetricsRecorder interface {
	// RecordOutcome is called once per completed request with the
	// profile name and the final Result state.
	RecordOutcome(profile, state string)

	// RecordExecutionError is called when the ProcessDriver itself
	// failed to spawn or wait on a child (an infrastructure error).
	RecordExecutionError(profile string)
}

// NoopMetricsRecorder discards every notification. It's the default
// when no recorder is configured.
type NoopMetricsRecorder struct{}

func (NoopMetricsRecorder) RecordOutcome(profile, state string)  {}
func (NoopMetricsRecorder) RecordExecutionError(profile string) {}
