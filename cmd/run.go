package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qcserverless/hybridsim/internal/csvreport"
	"github.com/qcserverless/hybridsim/internal/tracefile"
	"github.com/qcserverless/hybridsim/sim"
	"github.com/qcserverless/hybridsim/sim/workload"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation once per seed in [seed-init, seed-end) and save the collected metrics",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	setLogLevel()

	if seedEnd <= seedInit {
		return fmt.Errorf("seed-end (%d) must be greater than seed-init (%d)", seedEnd, seedInit)
	}
	if concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}

	traces, err := tracefile.Load(tracefile.Paths{
		Pre:           tracePrePath,
		Iter:          traceIterPath,
		Post:          tracePostPath,
		DurQC:         traceDurQCPath,
		NumIterations: traceNumIterationsPath,
	})
	if err != nil {
		return fmt.Errorf("loading traces: %w", err)
	}

	var targetDurQCAvg map[uint16]float64
	if targetDurQCPath != "" {
		targetDurQCAvg, err = loadTargetDurQCAvg(targetDurQCPath)
		if err != nil {
			return fmt.Errorf("loading target duration config: %w", err)
		}
	}

	seeds := make([]uint64, 0, seedEnd-seedInit)
	for seed := seedInit; seed < seedEnd; seed++ {
		seeds = append(seeds, seed)
	}
	logrus.Infof("running %d replication(s) with up to %d in parallel", len(seeds), concurrency)

	outputs, err := replicate(seeds, concurrency, traces, targetDurQCAvg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := csvreport.Write(outputPath, appendOutput, "", "", sim.Config{}.Header(), outputs); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logrus.Infof("wrote %d replication(s) to %s", len(outputs), outputPath)
	return nil
}

// replicate runs one Simulation per seed, bounding the number of
// goroutines live at once to concurrency, and returns the replications'
// outputs in seed order.
func replicate(seeds []uint64, concurrency int, traces workload.Traces, targetDurQCAvg map[uint16]float64) ([]sim.Output, error) {
	outputs := make([]sim.Output, len(seeds))
	errs := make([]error, len(seeds))

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, seed := range seeds {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, seed uint64) {
			defer wg.Done()
			defer func() { <-sem }()

			config := buildConfig(seed, targetDurQCAvg)
			factory := workload.NewFactory(seed, traces, targetDurQCAvg)
			simulation, err := sim.New(config, factory)
			if err != nil {
				errs[i] = fmt.Errorf("seed %d: constructing simulation: %w", seed, err)
				return
			}
			logrus.Debugf("seed %d: starting replication", seed)
			output := simulation.Run()
			output.ConfigCSV = config.ToCSV()
			outputs[i] = output
			logrus.Debugf("seed %d: replication finished", seed)
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return outputs, nil
}
