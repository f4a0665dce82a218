package sim

import "math/rand"

// Stream indices used to derive each independent random source from a
// single master seed: derivedSeed = masterSeed + 1_000_000*k. The
// workload stream (trace sampling inside the job factory) uses the
// master seed directly, i.e. k=0.
const (
	streamWorkload      = 0
	streamInterarrival  = 1
	streamSelection     = 2
	streamQuantumPolicy = 3
)

// RNGStreams derives independent, reproducible random sources from a
// single master seed. Each stream is seeded once, lazily, and cached;
// the same stream always returns the same *rand.Rand so a simulation
// draws a single continuous sequence per subsystem regardless of how
// many numbers the other subsystems have consumed.
//
// Thread-safety: not safe for concurrent use. A *Simulation owns one
// RNGStreams and never shares it across goroutines.
type RNGStreams struct {
	masterSeed int64
	streams    map[int]*rand.Rand
}

// NewRNGStreams returns a stream set derived from masterSeed.
func NewRNGStreams(masterSeed uint64) *RNGStreams {
	return &RNGStreams{
		masterSeed: int64(masterSeed),
		streams:    make(map[int]*rand.Rand),
	}
}

func (s *RNGStreams) seed(k int) int64 {
	return s.masterSeed + int64(k)*1_000_000
}

func (s *RNGStreams) stream(k int) *rand.Rand {
	if rng, ok := s.streams[k]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(s.seed(k)))
	s.streams[k] = rng
	return rng
}

// QuantumPolicySeed returns the raw derived seed for the quantum-policy
// stream, for components (like the weighted dispatch policy's
// alias-table sampler) that need to construct their own random source
// of a different type than *rand.Rand.
func (s *RNGStreams) QuantumPolicySeed() int64 { return s.seed(streamQuantumPolicy) }

// Workload returns the stream driving trace sampling inside the job
// factory (pre ops, iter ops, post ops, QC duration, num iterations —
// always sampled from this single stream in that fixed order).
func (s *RNGStreams) Workload() *rand.Rand { return s.stream(streamWorkload) }

// Interarrival returns the stream driving the exponential inter-arrival
// clock between JobStart events.
func (s *RNGStreams) Interarrival() *rand.Rand { return s.stream(streamInterarrival) }

// Selection returns the stream driving uniform qubit-count/priority
// selection on arrival.
func (s *RNGStreams) Selection() *rand.Rand { return s.stream(streamSelection) }

// QuantumPolicy returns the quantum-policy stream. QuantumDispatcher
// does not draw from this instance: it seeds its own *rand.Rand (random
// policy, same sequence as this stream) and its own x/exp/rand source
// (weighted policy) from QuantumPolicySeed.
func (s *RNGStreams) QuantumPolicy() *rand.Rand { return s.stream(streamQuantumPolicy) }
