// Package tracestats renders the "trace-stats" report: per-qubit-count
// min/mean/max for each trace, plus the derived average end-to-end job
// time, in place of running a simulation.
package tracestats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qcserverless/hybridsim/sim/workload"
)

// traceOrder fixes the section order the report prints in, matching
// the original's insertion order (pre, iter, post, dur_qc,
// num_iterations) rather than a map's arbitrary iteration order.
var traceOrder = []string{"pre", "iter", "post", "dur_qc", "num_iterations"}

// Report renders every trace's per-qubit-count statistics followed by
// the average end-to-end job time per qubit count, derived as
// pre + num_iterations*(iter + dur_qc) + post, all in seconds (pre,
// iter and post are converted back from the nanosecond-scaled values
// they are stored as).
func Report(traces workload.Traces) string {
	stats := workload.TraceStats(traces)

	var b strings.Builder
	for _, name := range traceOrder {
		fmt.Fprintln(&b, name)
		for _, s := range stats[name] {
			fmt.Fprintf(&b, "num_qubits %3d -> %v / %v / %v\n", s.NumQubits, s.Min, s.Mean, s.Max)
		}
	}

	means := make(map[string]map[uint16]float64, len(traceOrder))
	for _, name := range traceOrder {
		byQubits := make(map[uint16]float64, len(stats[name]))
		for _, s := range stats[name] {
			byQubits[s.NumQubits] = s.Mean
		}
		means[name] = byQubits
	}

	numQubits := make([]uint16, 0)
	seen := make(map[uint16]bool)
	for _, s := range stats["pre"] {
		if !seen[s.NumQubits] {
			seen[s.NumQubits] = true
			numQubits = append(numQubits, s.NumQubits)
		}
	}
	sort.Slice(numQubits, func(i, j int) bool { return numQubits[i] < numQubits[j] })

	fmt.Fprintln(&b, "average job times")
	for _, q := range numQubits {
		pre := means["pre"][q] / workload.SecondsToNanoseconds
		iter := means["iter"][q] / workload.SecondsToNanoseconds
		post := means["post"][q] / workload.SecondsToNanoseconds
		avgJobTime := pre + means["num_iterations"][q]*(iter+means["dur_qc"][q]) + post
		fmt.Fprintf(&b, "num_qubits %3d -> %v\n", q, avgJobTime)
	}

	return b.String()
}
