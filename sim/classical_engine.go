package sim

import "math"

// ClassicalEngine models a fixed pool of serverless workers sharing
// their aggregate capacity across every active classical task via
// processor sharing: each task's instantaneous rate is
// min(perWorkerCapacity, numWorkers*perWorkerCapacity/numActiveTasks).
type ClassicalEngine struct {
	numWorkers int
	capacity   uint64 // per-worker capacity, operations/s
	active     []Task
}

// NewClassicalEngine returns an engine with no active tasks.
func NewClassicalEngine(numWorkers int, capacity uint64) *ClassicalEngine {
	return &ClassicalEngine{numWorkers: numWorkers, capacity: capacity}
}

// Len reports the number of currently active classical tasks.
func (e *ClassicalEngine) Len() int { return len(e.active) }

// Admit adds a freshly-emitted classical task to the active set. Its
// LastUpdate must equal the current simulated time.
func (e *ClassicalEngine) Admit(t Task) {
	e.active = append(e.active, t)
}

// Recompute performs the recompute step at time now: every active task
// whose LastUpdate precedes now is debited the operations it earned
// under processor sharing since then, using a share count that excludes
// tasks admitted at exactly now. Completed tasks (residual reaches
// zero) are removed and returned in finished. If any task remains
// active, nextResidual is its smallest residual and hasNext is true —
// the caller uses this to schedule the next UpdateClassicalTasks event.
func (e *ClassicalEngine) Recompute(now int64) (finished []Task, nextResidual uint64, hasNext bool) {
	numTasks := 0
	for _, t := range e.active {
		if t.LastUpdate != now {
			numTasks++
		}
	}

	haveRate := numTasks > 0
	var rate uint64
	if haveRate {
		rate = e.capacity
		if shared := uint64(e.numWorkers) * e.capacity / uint64(numTasks); shared < rate {
			rate = shared
		}
	}

	remaining := e.active[:0]
	for _, t := range e.active {
		var ops uint64
		if haveRate {
			dt := now - t.LastUpdate
			ops = uint64(math.Ceil(float64(dt) * float64(rate) / 1e9))
		}
		t.LastUpdate = now
		if ops > t.Residual {
			panic("classical engine: residual underflow")
		}
		t.Residual -= ops
		if t.Residual == 0 {
			finished = append(finished, t)
			continue
		}
		remaining = append(remaining, t)
		if !hasNext || t.Residual < nextResidual {
			nextResidual = t.Residual
			hasNext = true
		}
	}
	e.active = remaining
	return finished, nextResidual, hasNext
}
