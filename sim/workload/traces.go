// Package workload samples Job parameters from empirical trace data,
// implementing sim.Sampler so the kernel never has to know where a
// job's operation counts and quantum iteration durations came from.
package workload

import (
	"math"
	"sort"
)

// SecondsToNanoseconds is the scaling factor applied to trace files
// recorded in seconds (preparation/iteration/post-processing operation
// durations, quantum iteration durations) before they're stored as the
// nanosecond/operation-count integers Job and Task deal in.
const SecondsToNanoseconds = 1e9

// Traces holds the raw, per-qubit-count sample pools a Factory draws
// from: preparation, classical-iteration, and post-processing operation
// counts, quantum iteration durations (nanoseconds), and iteration
// counts, keyed by qubit count.
type Traces struct {
	Pre           map[uint16][]uint64
	Iter          map[uint16][]uint64
	Post          map[uint16][]uint64
	DurQC         map[uint16][]uint64
	NumIterations map[uint16][]uint64
}

// Stat summarizes one qubit count's sample pool: minimum, mean, and
// maximum, after applying multiplier (used to report quantum durations
// back in seconds rather than the nanoseconds they're stored as).
type Stat struct {
	NumQubits uint16
	Min       float64
	Mean      float64
	Max       float64
}

// TraceStats computes per-qubit-count min/mean/max statistics for every
// trace in t, for the "trace-stats" reporting command. Quantum
// durations are reported back in seconds; operation counts and
// iteration counts are reported as stored.
func TraceStats(t Traces) map[string][]Stat {
	return map[string][]Stat{
		"pre":            singleTraceStats(1, t.Pre),
		"iter":           singleTraceStats(1, t.Iter),
		"post":           singleTraceStats(1, t.Post),
		"dur_qc":         singleTraceStats(1/SecondsToNanoseconds, t.DurQC),
		"num_iterations": singleTraceStats(1, t.NumIterations),
	}
}

func singleTraceStats(multiplier float64, data map[uint16][]uint64) []Stat {
	numQubits := make([]uint16, 0, len(data))
	for k := range data {
		numQubits = append(numQubits, k)
	}
	sort.Slice(numQubits, func(i, j int) bool { return numQubits[i] < numQubits[j] })

	stats := make([]Stat, 0, len(numQubits))
	for _, k := range numQubits {
		values := data[k]
		if len(values) == 0 {
			continue
		}
		min, max, sum := math.Inf(1), math.Inf(-1), 0.0
		for _, v := range values {
			scaled := float64(v) * multiplier
			if scaled < min {
				min = scaled
			}
			if scaled > max {
				max = scaled
			}
			sum += scaled
		}
		stats = append(stats, Stat{NumQubits: k, Min: min, Mean: sum / float64(len(values)), Max: max})
	}
	return stats
}
