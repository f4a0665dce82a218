package workload

import (
	"math/rand"

	"github.com/qcserverless/hybridsim/sim"
)

// Factory implements sim.Sampler over a fixed set of Traces, drawing
// every job's parameters uniformly at random from the pool matching its
// qubit count. It owns a single RNG stream seeded directly from the
// simulation's master seed (stream index 0 — see sim.RNGStreams), so it
// must be constructed with the same seed the Simulation was.
type Factory struct {
	rng       *rand.Rand
	nextJobID uint64
	traces    Traces
}

// NewFactory returns a Factory over traces, rescaling each qubit
// count's quantum iteration duration pool so its mean matches
// targetDurQCAvg (in seconds) when an entry is present; qubit counts
// absent from targetDurQCAvg are left unscaled. traces is not mutated.
func NewFactory(seed uint64, traces Traces, targetDurQCAvg map[uint16]float64) *Factory {
	rescaled := make(map[uint16][]uint64, len(traces.DurQC))
	means := singleTraceStats(1/SecondsToNanoseconds, traces.DurQC)
	meanByQubits := make(map[uint16]float64, len(means))
	for _, s := range means {
		meanByQubits[s.NumQubits] = s.Mean
	}

	for numQubits, values := range traces.DurQC {
		target, wantsRescale := targetDurQCAvg[numQubits]
		if !wantsRescale {
			rescaled[numQubits] = values
			continue
		}
		mean := meanByQubits[numQubits]
		scaled := make([]uint64, len(values))
		for i, v := range values {
			scaled[i] = uint64(roundFloat(float64(v) * (target / mean)))
		}
		rescaled[numQubits] = scaled
	}

	return &Factory{
		rng: rand.New(rand.NewSource(int64(seed))),
		traces: Traces{
			Pre:           traces.Pre,
			Iter:          traces.Iter,
			Post:          traces.Post,
			DurQC:         rescaled,
			NumIterations: traces.NumIterations,
		},
	}
}

func roundFloat(f float64) float64 {
	if f < 0 {
		return -roundFloat(-f)
	}
	return float64(int64(f + 0.5))
}

// Make draws a new job's preparation, classical-iteration, and
// post-processing operation counts, quantum iteration duration, and
// iteration count uniformly at random from numQubits' trace pools, in
// that fixed order, from the Factory's single RNG stream. Returns
// sim.UnknownQubitCountError if any pool has no entry for numQubits.
func (f *Factory) Make(numQubits, priority uint16, arrivalTime int64) (*sim.Job, error) {
	preOps, err := f.choose(f.traces.Pre, numQubits, "preparation phase")
	if err != nil {
		return nil, err
	}
	iterOps, err := f.choose(f.traces.Iter, numQubits, "classical iteration")
	if err != nil {
		return nil, err
	}
	postOps, err := f.choose(f.traces.Post, numQubits, "post-processing phase")
	if err != nil {
		return nil, err
	}
	durQCIter, err := f.choose(f.traces.DurQC, numQubits, "quantum execution")
	if err != nil {
		return nil, err
	}
	numIterations, err := f.choose(f.traces.NumIterations, numQubits, "number of iterations")
	if err != nil {
		return nil, err
	}

	jobID := f.nextJobID
	f.nextJobID++
	return sim.NewJob(jobID, numQubits, priority, arrivalTime, preOps, iterOps, postOps, durQCIter, numIterations), nil
}

func (f *Factory) choose(pool map[uint16][]uint64, numQubits uint16, trace string) (uint64, error) {
	values, ok := pool[numQubits]
	if !ok || len(values) == 0 {
		return 0, &sim.UnknownQubitCountError{NumQubits: numQubits, Trace: trace}
	}
	return values[f.rng.Intn(len(values))], nil
}
