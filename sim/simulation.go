package sim

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

const nsPerSecond = 1e9

func toNanoseconds(s float64) int64 {
	return int64(math.Round(s * nsPerSecond))
}

func toSeconds(ns int64) float64 {
	return float64(ns) / nsPerSecond
}

// Sampler produces a new Job on arrival. sim/workload.Factory implements
// this; the kernel depends only on the interface so it never reaches
// into an ambient package for trace data.
type Sampler interface {
	Make(numQubits, priority uint16, arrivalTime int64) (*Job, error)
}

// Simulation is the orchestrator: it owns the event queue, the
// classical and quantum resource models, the set of in-flight jobs,
// and the metric accumulators, and drives the single-threaded event
// loop described by Run. Construct with New; a zero Simulation is not
// usable.
type Simulation struct {
	config     Config
	numQubits  []uint16
	priorities []uint16

	sampler   Sampler
	rngs      *RNGStreams
	classical *ClassicalEngine
	quantum   *QuantumDispatcher

	activeJobs map[uint64]*Job
}

// New validates config and assembles a Simulation ready to Run. sampler
// supplies jobs on arrival (see Sampler).
func New(config Config, sampler Sampler) (*Simulation, error) {
	v, err := config.validate()
	if err != nil {
		return nil, err
	}

	rngs := NewRNGStreams(config.Seed)

	return &Simulation{
		config:     config,
		numQubits:  v.numQubits,
		priorities: v.priorities,
		sampler:    sampler,
		rngs:       rngs,
		classical:  NewClassicalEngine(config.NumWorkers, config.WorkerCapacity),
		quantum:    NewQuantumDispatcher(config.NumQuantum, v.policy, rngs.QuantumPolicySeed()),
		activeJobs: make(map[uint64]*Job),
	}, nil
}

// Run drives the event loop from t=0 until ExperimentEnd and returns
// the accumulated output. Run may be called at most once per
// Simulation.
func (s *Simulation) Run() Output {
	single := NewOutputSingle()
	series := NewOutputSeries()

	events := NewEventQueue()
	totalNs := toNanoseconds(s.config.DurationS)
	events.Schedule(JobStart{At: 0})
	events.Schedule(WarmupPeriodEnd{At: toNanoseconds(s.config.WarmupS)})
	events.Schedule(ExperimentEnd{At: totalNs})
	for i := 1; i < 100; i++ {
		events.Schedule(Progress{
			At:      int64(float64(i) * float64(totalNs) / 100.0),
			Percent: i,
		})
	}

	series.SetHeader("job_time", "num_qubits,priority")
	if s.config.SaveIterationDurations {
		series.SetHeader("qc_iter_dur", "num_qubits,priority")
		series.SetHeader("classical_dur", "num_qubits,priority")
	}

	var numEvents, numAccepted, numDropped int64
	start := time.Now()
	var lastTime int64

loop:
	for {
		event, ok := events.PopNext()
		if !ok {
			break
		}
		now := event.Time()
		single.TimeAvg("event_queue_len", now, float64(events.Len()))

		if now < lastTime {
			panic("simulation: time moved backwards")
		}
		lastTime = now
		numEvents++

		switch e := event.(type) {
		case JobStart:
			if s.classical.Len() < s.config.MaxClassical && s.quantum.PendingLen() < s.config.MaxQuantum {
				numAccepted++
				s.admitJob(now, events, single, series)
			} else {
				numDropped++
			}
			events.Schedule(JobStart{At: now + toNanoseconds(s.sampleInterarrival())})

		case WarmupPeriodEnd:
			single.Enable(now)
			series.Enable()

		case ExperimentEnd:
			break loop

		case Progress:
			activeTotal := s.classical.Len() + s.quantum.ActiveLen() + s.quantum.PendingLen()
			if len(s.activeJobs) != activeTotal {
				panic("simulation: active job count does not match active+pending task count")
			}
			logrus.Infof("completed %d%% (%d active jobs, %d classical tasks, %d/%d quantum tasks)",
				e.Percent, len(s.activeJobs), s.classical.Len(), s.quantum.ActiveLen(), s.quantum.PendingLen())

		case QuantumIterationEnd:
			s.onQuantumIterationEnd(now, events, single, series)

		case UpdateClassicalTasks:
			s.onUpdateClassicalTasks(now, events, single, series)
		}
	}

	single.Finish(totalNs)

	single.OneTime("num_events", float64(numEvents))
	single.OneTime("execution_time", time.Since(start).Seconds())
	single.OneTime("num_job_accepted", float64(numAccepted))
	single.OneTime("num_job_dropped", float64(numDropped))

	return Output{
		Single:    single,
		Series:    series,
		ConfigCSV: s.config.ToCSV(),
	}
}

// sampleInterarrival draws the next exponential inter-arrival interval,
// in seconds, from the interarrival stream.
func (s *Simulation) sampleInterarrival() float64 {
	u := s.rngs.Interarrival().Float64()
	for u <= 0 {
		u = s.rngs.Interarrival().Float64()
	}
	return -math.Log(u) * s.config.JobInterarrivalS
}

// admitJob samples a new job's qubit count and priority, asks the
// sampler to build it, and routes its initial task. A sampler failure
// (unknown qubit count) is logged and the arrival is simply not
// inserted into the active set — it was already counted as accepted by
// the caller, matching the accepted-but-not-materialized admission
// policy.
func (s *Simulation) admitJob(now int64, events *EventQueue, single *OutputSingle, series *OutputSeries) {
	numQubits := s.numQubits[s.rngs.Selection().Intn(len(s.numQubits))]
	priority := s.priorities[s.rngs.Selection().Intn(len(s.priorities))]

	job, err := s.sampler.Make(numQubits, priority, now)
	if err != nil {
		logrus.Warnf("error creating a job with %d qubits and priority %d: %v", numQubits, priority, err)
		return
	}

	task, _ := job.NextTask(now)
	s.routeTask(now, task, events, single)
	s.activeJobs[job.JobID] = job
}

// onQuantumIterationEnd handles a device completing the task it was
// running: records the completed iteration, advances the owning job to
// its next phase (or retires it), then dispatches the next pending
// task, if any, onto the now-free device.
func (s *Simulation) onQuantumIterationEnd(now int64, events *EventQueue, single *OutputSingle, series *OutputSeries) {
	completed := s.quantum.Complete(now)
	single.TimeAvg("active_quantum_tasks", now, float64(s.quantum.ActiveLen()))

	if s.config.SaveIterationDurations {
		job := s.activeJobs[completed.JobID]
		series.Add("qc_iter_dur", job.Label, toSeconds(now-completed.StartTime))
	}

	s.advanceJob(now, completed.JobID, events, single, series)

	if next, ok := s.quantum.DispatchNext(now, s.priorityOf); ok {
		events.Schedule(QuantumIterationEnd{At: now + int64(next.Residual)})
		single.TimeAvg("pending_quantum_tasks", now, float64(s.quantum.PendingLen()))
		single.TimeAvg("active_quantum_tasks", now, float64(s.quantum.ActiveLen()))
	}
}

func (s *Simulation) priorityOf(jobID uint64) uint16 {
	return s.activeJobs[jobID].Priority
}

// onUpdateClassicalTasks handles the classical engine's recompute step:
// debits every active task, retires finished ones (advancing their
// jobs), and reschedules the next recompute if work remains.
func (s *Simulation) onUpdateClassicalTasks(now int64, events *EventQueue, single *OutputSingle, series *OutputSeries) {
	finished, nextResidual, hasNext := s.classical.Recompute(now)

	if s.config.SaveIterationDurations {
		for _, t := range finished {
			job := s.activeJobs[t.JobID]
			series.Add("classical_dur", job.Label, toSeconds(now-t.StartTime))
		}
	}

	if hasNext {
		events.Schedule(UpdateClassicalTasks{At: now + int64(nextResidual)})
	}

	single.TimeAvg("active_classical_tasks", now, float64(s.classical.Len()))

	for _, t := range finished {
		s.advanceJob(now, t.JobID, events, single, series)
	}
}

// advanceJob routes the named job's next task, if any, or retires it
// (recording its end-to-end job_time sample) if it has completed.
func (s *Simulation) advanceJob(now int64, jobID uint64, events *EventQueue, single *OutputSingle, series *OutputSeries) {
	job, ok := s.activeJobs[jobID]
	if !ok {
		panic("simulation: advanceJob for an unknown job id")
	}
	task, more := job.NextTask(now)
	if !more {
		series.Add("job_time", job.Label, toSeconds(now-job.ArrivalTime))
		delete(s.activeJobs, jobID)
		return
	}
	s.routeTask(now, task, events, single)
}

// routeTask hands a freshly-emitted task to the engine that serves its
// kind. Classical tasks always trigger an immediate UpdateClassicalTasks
// recompute (deduplicated by EventQueue); quantum tasks that start
// immediately schedule their own QuantumIterationEnd.
func (s *Simulation) routeTask(now int64, t Task, events *EventQueue, single *OutputSingle) {
	switch t.Kind {
	case TaskClassical:
		s.classical.Admit(t)
		single.TimeAvg("active_classical_tasks", now, float64(s.classical.Len()))
		events.Schedule(UpdateClassicalTasks{At: now})
	case TaskQuantum:
		if started := s.quantum.Arrive(t); started {
			events.Schedule(QuantumIterationEnd{At: now + int64(t.Residual)})
			single.TimeAvg("active_quantum_tasks", now, float64(s.quantum.ActiveLen()))
		} else {
			single.TimeAvg("pending_quantum_tasks", now, float64(s.quantum.PendingLen()))
		}
	}
}
