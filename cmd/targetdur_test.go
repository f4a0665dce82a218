package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTargetDurQCAvg_ParsesQubitCountMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_dur_qc_avg:\n  4: 0.5\n  8: 1.25\n"), 0o644))

	values, err := loadTargetDurQCAvg(path)
	require.NoError(t, err)
	assert.Equal(t, map[uint16]float64{4: 0.5, 8: 1.25}, values)
}

func TestLoadTargetDurQCAvg_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_dur_qc_avg:\n  4: 0.5\nsome_typo: true\n"), 0o644))

	_, err := loadTargetDurQCAvg(path)
	assert.Error(t, err)
}

func TestLoadTargetDurQCAvg_MissingFile(t *testing.T) {
	_, err := loadTargetDurQCAvg(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
