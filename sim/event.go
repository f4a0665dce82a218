package sim

// Event is a discrete occurrence scheduled at a specific simulated
// time. Implementations are small value types; the orchestrator
// dispatches on concrete type via a type switch, keeping event
// definitions free of side effects of their own.
type Event interface {
	// Time returns the simulated time, in nanoseconds, at which this
	// event is scheduled to fire.
	Time() int64
}

// JobStart fires when a new job arrives, subject to admission control.
type JobStart struct {
	At int64
}

func (e JobStart) Time() int64 { return e.At }

// WarmupPeriodEnd fires once and enables both metric accumulators.
type WarmupPeriodEnd struct {
	At int64
}

func (e WarmupPeriodEnd) Time() int64 { return e.At }

// ExperimentEnd fires once and terminates the event loop.
type ExperimentEnd struct {
	At int64
}

func (e ExperimentEnd) Time() int64 { return e.At }

// Progress fires up to 99 times over a run, reporting coarse
// completion percentage. It carries no simulation side effects beyond
// the active-job-count assertion and an optional log line.
type Progress struct {
	At      int64
	Percent int
}

func (e Progress) Time() int64 { return e.At }

// QuantumIterationEnd fires when a quantum device finishes the task
// currently assigned to it.
type QuantumIterationEnd struct {
	At int64
}

func (e QuantumIterationEnd) Time() int64 { return e.At }

// UpdateClassicalTasks fires to re-examine the classical engine's
// active set for completions. EventQueue deduplicates these by
// timestamp, so at most one is ever pending for a given instant.
type UpdateClassicalTasks struct {
	At int64
}

func (e UpdateClassicalTasks) Time() int64 { return e.At }
