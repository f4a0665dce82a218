package sim

import "fmt"

// Construction-time configuration errors. Simulation construction
// returns one of these, either bare or wrapped in a descriptive
// message; callers can
// use errors.Is against the sentinels below.
var (
	ErrVanishingDuration     = fmt.Errorf("vanishing duration")
	ErrVanishingInterarrival = fmt.Errorf("vanishing average job interarrival time")
	ErrInvalidJobType        = fmt.Errorf("invalid job type")
	ErrInvalidPriorities     = fmt.Errorf("invalid priorities")
	ErrInvalidQuantumPolicy  = fmt.Errorf("invalid quantum schedule policy")
)

// MissingTraceFileError reports that a required trace file could not be
// opened when assembling a workload sampler.
type MissingTraceFileError struct {
	Path string
	Err  error
}

func (e *MissingTraceFileError) Error() string {
	return fmt.Sprintf("missing trace file %q: %v", e.Path, e.Err)
}

func (e *MissingTraceFileError) Unwrap() error { return e.Err }

// MalformedTraceLineError reports a trace file line that does not split
// into exactly two comma-separated tokens — a fatal parse error, unlike
// a line that parses into two tokens but fails numeric conversion
// (which is silently dropped).
type MalformedTraceLineError struct {
	Path string
	Line string
}

func (e *MalformedTraceLineError) Error() string {
	return fmt.Sprintf("malformed line in trace file %q: %q", e.Path, e.Line)
}

// UnknownQubitCountError reports that the workload sampler has no trace
// data for a requested qubit count. The orchestrator treats this as a
// degraded arrival: counted as accepted, logged as a warning, but never
// inserted into the active job set.
type UnknownQubitCountError struct {
	NumQubits uint16
	Trace     string
}

func (e *UnknownQubitCountError) Error() string {
	return fmt.Sprintf("unknown qubit count %d in %s trace", e.NumQubits, e.Trace)
}
