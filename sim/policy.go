package sim

import (
	"fmt"
	"math/rand"
)

// QuantumSchedulePolicy orders the pending quantum backlog when a
// device frees up and more than one task is waiting.
type QuantumSchedulePolicy int

const (
	PolicyFIFO QuantumSchedulePolicy = iota
	PolicyLIFO
	PolicyRandom
	PolicyWeighted
)

func (p QuantumSchedulePolicy) String() string {
	switch p {
	case PolicyFIFO:
		return "fifo"
	case PolicyLIFO:
		return "lifo"
	case PolicyRandom:
		return "random"
	case PolicyWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// ParseQuantumSchedulePolicy parses one of "fifo", "lifo", "random", or
// "weighted" into a QuantumSchedulePolicy.
func ParseQuantumSchedulePolicy(s string) (QuantumSchedulePolicy, error) {
	switch s {
	case "fifo":
		return PolicyFIFO, nil
	case "lifo":
		return PolicyLIFO, nil
	case "random":
		return PolicyRandom, nil
	case "weighted":
		return PolicyWeighted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantumPolicy, s)
	}
}

// selectIndex picks which element of a pending quantum backlog of
// length n is dispatched next under fifo/lifo/random. Weighted
// selection needs a weighted sampler over per-candidate weights and
// is handled separately by QuantumDispatcher (see weightedSelect).
func (p QuantumSchedulePolicy) selectIndex(n int, rng *rand.Rand) int {
	switch p {
	case PolicyFIFO:
		return 0
	case PolicyLIFO:
		return n - 1
	case PolicyRandom:
		return rng.Intn(n)
	default:
		panic(fmt.Sprintf("quantum schedule policy: selectIndex called for variant %d", p))
	}
}
