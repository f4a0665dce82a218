// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qcserverless/hybridsim/sim"
)

var (
	duration               float64
	warmupPeriod           float64
	jobInterarrival        float64
	workerCapacity         uint64
	numServerlessWorkers   int
	numQuantumComputers    int
	maxClassicalTasks      int
	maxQuantumTasks        int
	quantumSchedulePolicy  string
	jobType                string
	priorities             string
	saveIterationDurations bool
	seedInit               uint64
	seedEnd                uint64
	concurrency            int
	outputPath             string
	appendOutput           bool
	targetDurQCPath        string
	tracePrePath           string
	traceIterPath          string
	tracePostPath          string
	traceDurQCPath         string
	traceNumIterationsPath string
	logLevel               string
)

var rootCmd = &cobra.Command{
	Use:   "hybridsim",
	Short: "Discrete-event simulator for hybrid classical-quantum serverless workloads",
}

// Execute runs the root command, exiting the process with status 1 on
// any error Cobra itself or a Run function returns.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, traceStatsCmd} {
		cmd.Flags().Float64Var(&duration, "duration", 300, "Duration of the simulation experiment, in s")
		cmd.Flags().Float64Var(&warmupPeriod, "warmup-period", 30, "Duration of the warm-up period, in s")
		cmd.Flags().Float64Var(&jobInterarrival, "job-interarrival", 60, "Average inter-arrival between consecutive jobs, in s")
		cmd.Flags().Uint64Var(&workerCapacity, "worker-capacity", 1_000_000_000, "Capacity of each serverless worker, in operations/s")
		cmd.Flags().IntVar(&numServerlessWorkers, "num-serverless-workers", 4, "Number of serverless workers")
		cmd.Flags().IntVar(&numQuantumComputers, "num-quantum-computers", 2, "Number of quantum computers")
		cmd.Flags().IntVar(&maxClassicalTasks, "max-classical-tasks", 50, "Maximum number of concurrently active classical tasks")
		cmd.Flags().IntVar(&maxQuantumTasks, "max-quantum-tasks", 50, "Maximum pending quantum task backlog")
		cmd.Flags().StringVar(&quantumSchedulePolicy, "quantum-schedule-policy", "fifo", "Policy to schedule quantum tasks: fifo, lifo, random, weighted")
		cmd.Flags().StringVar(&jobType, "job-type", "VQE;4;6;8;10", "The job type and qubit counts, e.g. \"VQE;4;6;8;10\"")
		cmd.Flags().StringVar(&priorities, "priorities", "1;2;4", "The job priorities, e.g. \"1;2;4\"")
		cmd.Flags().BoolVar(&saveIterationDurations, "save-iteration-durations", false, "Record per-iteration classical and quantum duration series")
		cmd.Flags().StringVar(&targetDurQCPath, "target-dur-qc", "", "Optional YAML file mapping qubit count to a target average quantum iteration duration, in s")
		cmd.Flags().StringVar(&tracePrePath, "trace-pre", "", "Preparation-phase trace file (num_qubits,seconds CSV)")
		cmd.Flags().StringVar(&traceIterPath, "trace-iter", "", "Classical-iteration trace file (num_qubits,seconds CSV)")
		cmd.Flags().StringVar(&tracePostPath, "trace-post", "", "Post-processing trace file (num_qubits,seconds CSV)")
		cmd.Flags().StringVar(&traceDurQCPath, "trace-dur-qc", "", "Quantum iteration duration trace file (num_qubits,seconds CSV)")
		cmd.Flags().StringVar(&traceNumIterationsPath, "trace-num-iterations", "", "Number-of-iterations trace file (num_qubits,count CSV)")
		cmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	}

	runCmd.Flags().Uint64Var(&seedInit, "seed-init", 0, "Initial seed to initialize the pseudo-random number generators")
	runCmd.Flags().Uint64Var(&seedEnd, "seed-end", 10, "Final seed (exclusive) to initialize the pseudo-random number generators")
	runCmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of replications to run in parallel")
	runCmd.Flags().StringVar(&outputPath, "output-path", "data/", "Directory where to save the collected metrics")
	runCmd.Flags().BoolVar(&appendOutput, "append", false, "Append to existing output files instead of truncating them")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(traceStatsCmd)
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildConfig assembles a sim.Config common to every replication of one
// CLI invocation, overriding only Seed per replication.
func buildConfig(seed uint64, targetDurQCAvg map[uint16]float64) sim.Config {
	return sim.Config{
		Seed:                   seed,
		DurationS:              duration,
		JobInterarrivalS:       jobInterarrival,
		WarmupS:                warmupPeriod,
		WorkerCapacity:         workerCapacity,
		NumWorkers:             numServerlessWorkers,
		NumQuantum:             numQuantumComputers,
		MaxClassical:           maxClassicalTasks,
		MaxQuantum:             maxQuantumTasks,
		QuantumSchedulePolicy:  quantumSchedulePolicy,
		JobType:                jobType,
		Priorities:             priorities,
		SaveIterationDurations: saveIterationDurations,
		TargetDurQCAvg:         targetDurQCAvg,
	}
}
