package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// Config carries every scalar and structured parameter a Simulation
// needs at construction time. The ambient layer (flags, YAML) is
// responsible for producing one of these; the kernel never reads a
// file or a flag itself.
type Config struct {
	// Seed initializes every pseudo-random number generator the
	// simulation uses (see RNGStreams for the derivation of the
	// independent per-subsystem streams).
	Seed uint64
	// DurationS is the simulated run length, in seconds. Must be > 0.
	DurationS float64
	// JobInterarrivalS is the average interval between two job
	// arrivals, in seconds. Must be > 0.
	JobInterarrivalS float64
	// WarmupS is the warm-up period, in seconds, after which the
	// metric accumulators start recording. May be 0.
	WarmupS float64
	// WorkerCapacity is the processing capacity of a single serverless
	// worker, in operations/s.
	WorkerCapacity uint64
	// NumWorkers is the number of serverless workers sharing capacity.
	// Must be >= 1.
	NumWorkers int
	// NumQuantum is the number of quantum computers. Must be >= 1.
	NumQuantum int
	// MaxClassical is the admission bound on concurrently active
	// classical tasks.
	MaxClassical int
	// MaxQuantum is the admission bound on pending quantum tasks.
	MaxQuantum int
	// QuantumSchedulePolicy selects how the pending quantum backlog is
	// ordered: "fifo", "lifo", "random", or "weighted".
	QuantumSchedulePolicy string
	// JobType is "VQE;q1;q2;..." — the VQE job family plus the set of
	// qubit counts a job may be sampled with.
	JobType string
	// Priorities is "p1;p2;..." — the set of priorities a job may be
	// sampled with; each must be > 0.
	Priorities string
	// SaveIterationDurations, when true, additionally records the
	// qc_iter_dur and classical_dur series.
	SaveIterationDurations bool
	// TargetDurQCAvg optionally rescales a qubit count's sampled QC
	// iteration durations so their average equals the given number of
	// seconds; omitted qubit counts are left unscaled.
	TargetDurQCAvg map[uint16]float64
}

// validated is the parsed, immutable form of a Config: the qubit
// counts and priorities a job may be sampled with, and the resolved
// quantum schedule policy, computed once at construction time.
type validated struct {
	numQubits  []uint16
	priorities []uint16
	policy     QuantumSchedulePolicy
}

// validate parses and checks every Config field that Simulation
// construction depends on, returning the derived fields a Simulation
// needs alongside the first validation failure encountered.
func (c Config) validate() (validated, error) {
	var v validated

	if c.DurationS <= 0 {
		return v, ErrVanishingDuration
	}
	if c.JobInterarrivalS <= 0 {
		return v, ErrVanishingInterarrival
	}

	numQubits, err := parseJobType(c.JobType)
	if err != nil {
		return v, err
	}
	v.numQubits = numQubits

	priorities, err := parsePriorities(c.Priorities)
	if err != nil {
		return v, err
	}
	v.priorities = priorities

	policy, err := ParseQuantumSchedulePolicy(c.QuantumSchedulePolicy)
	if err != nil {
		return v, err
	}
	v.policy = policy

	return v, nil
}

// parseJobType parses "VQE;q1;q2;..." into the list of qubit counts a
// job may be sampled with. The leading token must be "vqe"
// (case-insensitive); every remaining token must parse as a uint16.
func parseJobType(jobType string) ([]uint16, error) {
	tokens := strings.Split(jobType, ";")
	if len(tokens) == 0 || tokens[0] == "" {
		return nil, fmt.Errorf("%w: empty job type", ErrInvalidJobType)
	}
	if !strings.EqualFold(tokens[0], "vqe") {
		return nil, fmt.Errorf("%w: unrecognized job family %q", ErrInvalidJobType, tokens[0])
	}
	tokens = tokens[1:]
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: too few qubit counts specified for VQE job type", ErrInvalidJobType)
	}
	numQubits := make([]uint16, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.ParseUint(tok, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot parse qubit count %q", ErrInvalidJobType, tok)
		}
		numQubits = append(numQubits, uint16(n))
	}
	return numQubits, nil
}

// parsePriorities parses "p1;p2;..." into the list of priorities a job
// may be sampled with; every token must parse as a uint16 > 0.
func parsePriorities(priorities string) ([]uint16, error) {
	tokens := strings.Split(priorities, ";")
	if len(tokens) == 0 || tokens[0] == "" {
		return nil, fmt.Errorf("%w: empty priorities", ErrInvalidPriorities)
	}
	out := make([]uint16, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.ParseUint(tok, 10, 16)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("%w: cannot parse priority %q", ErrInvalidPriorities, tok)
		}
		out = append(out, uint16(n))
	}
	return out, nil
}

// Header returns the CSV column header matching ToCSV's field order,
// for use by the external CSV writer only.
func (c Config) Header() string {
	return "seed,duration,job_interarrival,warmup_period,worker_capacity,num_serverless_workers,num_quantum_computers,max_classical_tasks,max_quantum_tasks,quantum_schedule_policy,job_type,priorities"
}

// ToCSV renders the identifying scalar fields of Config as a single CSV
// row, for use by the external CSV writer only; the kernel itself never
// parses this back.
func (c Config) ToCSV() string {
	return fmt.Sprintf("%d,%v,%v,%v,%d,%d,%d,%d,%d,%s,%s,%s",
		c.Seed, c.DurationS, c.JobInterarrivalS, c.WarmupS, c.WorkerCapacity,
		c.NumWorkers, c.NumQuantum, c.MaxClassical, c.MaxQuantum,
		c.QuantumSchedulePolicy, c.JobType, c.Priorities)
}
