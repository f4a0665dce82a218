package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// targetDurQCBundle is the on-disk shape of the optional --target-dur-qc
// file: a qubit-count-to-seconds map the workload factory uses to
// rescale a trace's quantum iteration durations toward a target
// average. It is the only Config field structured enough to need its
// own file rather than a scalar flag.
type targetDurQCBundle struct {
	TargetDurQCAvg map[uint16]float64 `yaml:"target_dur_qc_avg"`
}

// loadTargetDurQCAvg reads and strictly parses path, rejecting unknown
// keys so a typo in the qubit count or field name fails loudly instead
// of silently being ignored.
func loadTargetDurQCAvg(path string) (map[uint16]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading target duration config: %w", err)
	}
	var bundle targetDurQCBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("parsing target duration config: %w", err)
	}
	return bundle.TargetDurQCAvg, nil
}
