// Package tracefile reads the on-disk trace CSVs a workload.Factory is
// built from. It is the only part of the repository that touches these
// files; the simulation kernel and the workload sampler both operate on
// already-parsed in-memory maps.
package tracefile

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/qcserverless/hybridsim/sim"
	"github.com/qcserverless/hybridsim/sim/workload"
)

// ReadTraceFile parses a two-column "num_qubits,value" CSV with no
// header. Empty lines are skipped. Any other line that does not split
// into exactly two comma-separated
// tokens is a fatal MalformedTraceLineError; a line that does but whose
// tokens fail to parse as a uint16 qubit count and a float64 value is
// silently dropped, matching a best-effort ingest of noisy trace
// exports. Every kept value is scaled by multiplier and rounded to the
// nearest uint64 before being appended to its qubit count's pool.
func ReadTraceFile(path string, multiplier float64) (map[uint16][]uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &sim.MissingTraceFileError{Path: path, Err: err}
	}
	defer file.Close()

	values := make(map[uint16][]uint64)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		tokens := strings.Split(line, ",")
		if len(tokens) != 2 {
			return nil, &sim.MalformedTraceLineError{Path: path, Line: line}
		}
		numQubits, errQubits := strconv.ParseUint(tokens[0], 10, 16)
		value, errValue := strconv.ParseFloat(tokens[1], 64)
		if errQubits != nil || errValue != nil {
			continue
		}
		scaled := uint64(math.Round(value * multiplier))
		values[uint16(numQubits)] = append(values[uint16(numQubits)], scaled)
	}
	if err := scanner.Err(); err != nil {
		return nil, &sim.MissingTraceFileError{Path: path, Err: err}
	}
	return values, nil
}

// Paths names the five trace files a Factory needs.
type Paths struct {
	Pre           string
	Iter          string
	Post          string
	DurQC         string
	NumIterations string
}

// Load reads every file named by paths into a workload.Traces. pre,
// iter, and post are recorded in seconds and scaled to nanoseconds;
// durQC is likewise recorded in seconds and scaled to nanoseconds;
// numIterations is a bare count with no scaling.
func Load(paths Paths) (workload.Traces, error) {
	var t workload.Traces
	var err error
	if t.Pre, err = ReadTraceFile(paths.Pre, workload.SecondsToNanoseconds); err != nil {
		return workload.Traces{}, err
	}
	if t.Iter, err = ReadTraceFile(paths.Iter, workload.SecondsToNanoseconds); err != nil {
		return workload.Traces{}, err
	}
	if t.Post, err = ReadTraceFile(paths.Post, workload.SecondsToNanoseconds); err != nil {
		return workload.Traces{}, err
	}
	if t.DurQC, err = ReadTraceFile(paths.DurQC, workload.SecondsToNanoseconds); err != nil {
		return workload.Traces{}, err
	}
	if t.NumIterations, err = ReadTraceFile(paths.NumIterations, 1); err != nil {
		return workload.Traces{}, err
	}
	return t, nil
}
