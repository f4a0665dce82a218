package sim

import (
	"math/rand"

	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// QuantumDispatcher models a fixed pool of quantum devices, each
// processing at most one task at a time to completion (no preemption,
// no sharing). Tasks that arrive when every device is busy wait in a
// pending backlog ordered by the configured QuantumSchedulePolicy.
type QuantumDispatcher struct {
	numDevices  int
	policy      QuantumSchedulePolicy
	rng         *rand.Rand  // drives PolicyRandom
	weightedRNG *xrand.Rand // drives PolicyWeighted's alias-table sampler
	active      []Task
	pending     []Task
}

// NewQuantumDispatcher returns a dispatcher with no active or pending
// tasks, seeded deterministically from seed.
func NewQuantumDispatcher(numDevices int, policy QuantumSchedulePolicy, seed int64) *QuantumDispatcher {
	return &QuantumDispatcher{
		numDevices:  numDevices,
		policy:      policy,
		rng:         rand.New(rand.NewSource(seed)),
		weightedRNG: xrand.New(xrand.NewSource(uint64(seed))),
	}
}

// ActiveLen reports the number of devices currently busy.
func (d *QuantumDispatcher) ActiveLen() int { return len(d.active) }

// PendingLen reports the size of the pending backlog.
func (d *QuantumDispatcher) PendingLen() int { return len(d.pending) }

// Arrive admits a freshly-emitted quantum task. If a device is free it
// starts immediately and started is true; otherwise the task joins the
// pending backlog.
func (d *QuantumDispatcher) Arrive(t Task) (started bool) {
	if len(d.active) < d.numDevices {
		d.active = append(d.active, t)
		return true
	}
	d.pending = append(d.pending, t)
	return false
}

// Complete locates and removes the active task whose residual exactly
// matches the elapsed time since it started running — quantum tasks
// run to completion without interim updates, so this predicate
// uniquely identifies the task a QuantumIterationEnd belongs to. Panics
// if no match exists, which means the event queue produced a
// QuantumIterationEnd with no corresponding device, a programmer error.
func (d *QuantumDispatcher) Complete(now int64) Task {
	for i, t := range d.active {
		if t.Residual == uint64(now-t.LastUpdate) {
			d.active[i] = d.active[len(d.active)-1]
			d.active = d.active[:len(d.active)-1]
			return t
		}
	}
	panic("quantum dispatcher: QuantumIterationEnd fired with no matching active task")
}

// DispatchNext pops one task from the pending backlog according to the
// configured policy and starts it running as of now. priorityOf
// returns the priority of the job owning a given job ID; it is
// consulted only by the weighted policy, which samples an index with
// probability proportional to the owning job's priority via gonum's
// sampleuv.Weighted sampler, rebuilt fresh from the current backlog's
// weights on every dispatch. The remaining backlog keeps its arrival
// order. ok is false if the backlog is empty.
func (d *QuantumDispatcher) DispatchNext(now int64, priorityOf func(jobID uint64) uint16) (t Task, ok bool) {
	if len(d.pending) == 0 {
		return Task{}, false
	}

	var idx int
	if d.policy == PolicyWeighted {
		idx = d.weightedSelect(priorityOf)
	} else {
		idx = d.policy.selectIndex(len(d.pending), d.rng)
	}

	t = d.pending[idx]
	d.pending = append(d.pending[:idx], d.pending[idx+1:]...)
	t.LastUpdate = now
	d.active = append(d.active, t)
	return t, true
}

func (d *QuantumDispatcher) weightedSelect(priorityOf func(jobID uint64) uint16) int {
	weights := make([]float64, len(d.pending))
	for i, t := range d.pending {
		weights[i] = float64(priorityOf(t.JobID))
	}
	w := sampleuv.NewWeighted(weights, d.weightedRNG)
	idx, ok := w.Take()
	if !ok {
		panic("quantum dispatcher: weighted sampling over an empty or all-zero backlog")
	}
	return idx
}
