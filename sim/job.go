package sim

import "fmt"

// Phase is a job's position in its linear lifecycle:
//
//	Preparation -> (ClassicalIteration(k) -> QuantumIteration(k))* for k=1..N -> Postprocessing -> Completed
type Phase int

const (
	PhasePreparation Phase = iota
	PhaseClassicalIteration
	PhaseQuantumIteration
	PhasePostprocessing
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhasePreparation:
		return "preparation"
	case PhaseClassicalIteration:
		return "classical_iteration"
	case PhaseQuantumIteration:
		return "quantum_iteration"
	case PhasePostprocessing:
		return "postprocessing"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Job is a finite, linear state machine. Its parameters are immutable
// once created; only Phase and the current iteration counter mutate as
// NextTask is called. A Job owns at most one task in flight at a time.
type Job struct {
	JobID       uint64
	NumQubits   uint16
	Priority    uint16
	Label       string // "qubits,priority"
	ArrivalTime int64

	PreOps        uint64
	IterOps       uint64
	PostOps       uint64
	DurQCIter     uint64 // ns per quantum iteration
	NumIterations uint64

	phase     Phase
	iteration uint64 // current k, meaningful in ClassicalIteration/QuantumIteration phases
}

// NewJob constructs a Job in its initial Preparation phase. Exported so
// that sim/workload (which samples the immutable parameters from trace
// data) can assemble a Job without the kernel reaching back into an
// external package for field access.
func NewJob(jobID uint64, numQubits, priority uint16, arrivalTime int64, preOps, iterOps, postOps, durQCIter, numIterations uint64) *Job {
	return &Job{
		JobID:         jobID,
		NumQubits:     numQubits,
		Priority:      priority,
		Label:         fmt.Sprintf("%d,%d", numQubits, priority),
		ArrivalTime:   arrivalTime,
		PreOps:        preOps,
		IterOps:       iterOps,
		PostOps:       postOps,
		DurQCIter:     durQCIter,
		NumIterations: numIterations,
		phase:         PhasePreparation,
	}
}

// Phase reports the job's current lifecycle phase.
func (j *Job) Phase() Phase { return j.phase }

// NextTask returns the task that represents the job's next phase and
// advances the job's internal state. The second return value is false
// once the job has reached Completed — no task to route.
//
// Each emitted task carries StartTime == LastUpdate == now.
func (j *Job) NextTask(now int64) (Task, bool) {
	switch j.phase {
	case PhasePreparation:
		j.phase = PhaseClassicalIteration
		j.iteration = 1
		return j.emit(TaskClassical, j.PreOps, now), true
	case PhaseClassicalIteration:
		j.phase = PhaseQuantumIteration
		return j.emit(TaskClassical, j.IterOps, now), true
	case PhaseQuantumIteration:
		if j.iteration == j.NumIterations {
			j.phase = PhasePostprocessing
		} else {
			j.iteration++
			j.phase = PhaseClassicalIteration
		}
		return j.emit(TaskQuantum, j.DurQCIter, now), true
	case PhasePostprocessing:
		j.phase = PhaseCompleted
		return j.emit(TaskClassical, j.PostOps, now), true
	case PhaseCompleted:
		return Task{}, false
	default:
		panic(fmt.Sprintf("job %d: unhandled phase %v", j.JobID, j.phase))
	}
}

func (j *Job) emit(kind TaskKind, residual uint64, now int64) Task {
	return Task{
		JobID:      j.JobID,
		Kind:       kind,
		Residual:   residual,
		StartTime:  now,
		LastUpdate: now,
	}
}
