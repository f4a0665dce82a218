package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qcserverless/hybridsim/internal/tracefile"
	"github.com/qcserverless/hybridsim/internal/tracestats"
)

var traceStatsCmd = &cobra.Command{
	Use:   "trace-stats",
	Short: "Print per-qubit-count trace statistics instead of running a simulation",
	RunE:  runTraceStats,
}

func runTraceStats(cmd *cobra.Command, args []string) error {
	setLogLevel()

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

	fmt.Print(tracestats.Report(traces))
	return nil
}
