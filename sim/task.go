package sim

// TaskKind distinguishes the two task variants a Job can emit.
type TaskKind int

const (
	// TaskClassical is an operation-counted task served by the
	// processor-shared classical engine. Residual is in operations.
	TaskClassical TaskKind = iota
	// TaskQuantum is a time-bounded task served by a quantum device.
	// Residual is in nanoseconds.
	TaskQuantum
)

func (k TaskKind) String() string {
	switch k {
	case TaskClassical:
		return "classical"
	case TaskQuantum:
		return "quantum"
	default:
		return "unknown"
	}
}

// Task is an indivisible unit of work owned by a Job. A Task lives by
// value inside whichever engine is currently serving it; it never holds
// a reference back to its Job, only the job's numeric id.
type Task struct {
	JobID uint64
	Kind  TaskKind
	// Residual is the remaining work: operations for TaskClassical,
	// nanoseconds for TaskQuantum. Always >= 0; 0 means complete.
	Residual uint64
	// StartTime is when the task first entered service.
	StartTime int64
	// LastUpdate is the most recent time its residual was debited.
	// Invariant: LastUpdate >= StartTime.
	LastUpdate int64
}

// Done reports whether the task's residual has been fully drained.
func (t Task) Done() bool {
	return t.Residual == 0
}
