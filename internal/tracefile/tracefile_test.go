package tracefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qcserverless/hybridsim/sim"
	"github.com/qcserverless/hybridsim/sim/workload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadTraceFile_ParsesAndScales(t *testing.T) {
	path := writeTrace(t, "4,0.5\n4,1.5\n8,2.0\n")
	values, err := ReadTraceFile(path, workload.SecondsToNanoseconds)
	require.NoError(t, err)
	assert.Equal(t, []uint64{500_000_000, 1_500_000_000}, values[4])
	assert.Equal(t, []uint64{2_000_000_000}, values[8])
}

func TestReadTraceFile_DropsUnparseableNumericTokens(t *testing.T) {
	path := writeTrace(t, "4,0.5\nfour,oops\n8,2.0\n")
	values, err := ReadTraceFile(path, 1)
	require.NoError(t, err)
	assert.Len(t, values[4], 1)
	_, hasBad := values[999]
	assert.False(t, hasBad)
}

func TestReadTraceFile_MalformedLineIsFatal(t *testing.T) {
	path := writeTrace(t, "4,0.5,extra\n")
	_, err := ReadTraceFile(path, 1)
	var malformed *sim.MalformedTraceLineError
	require.ErrorAs(t, err, &malformed)
}

func TestReadTraceFile_MissingFile(t *testing.T) {
	_, err := ReadTraceFile(filepath.Join(t.TempDir(), "does-not-exist.csv"), 1)
	var missing *sim.MissingTraceFileError
	require.ErrorAs(t, err, &missing)
}

func TestLoad_ReadsAllFiveFiles(t *testing.T) {
	paths := Paths{
		Pre:           writeTrace(t, "4,1.0\n"),
		Iter:          writeTrace(t, "4,2.0\n"),
		Post:          writeTrace(t, "4,3.0\n"),
		DurQC:         writeTrace(t, "4,0.001\n"),
		NumIterations: writeTrace(t, "4,5\n"),
	}
	traces, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1_000_000_000}, traces.Pre[4])
	assert.Equal(t, []uint64{2_000_000_000}, traces.Iter[4])
	assert.Equal(t, []uint64{3_000_000_000}, traces.Post[4])
	assert.Equal(t, []uint64{1_000_000}, traces.DurQC[4])
	assert.Equal(t, []uint64{5}, traces.NumIterations[4])
}

func TestLoad_PropagatesMissingFileError(t *testing.T) {
	paths := Paths{
		Pre:           writeTrace(t, "4,1.0\n"),
		Iter:          filepath.Join(t.TempDir(), "missing.csv"),
		Post:          writeTrace(t, "4,3.0\n"),
		DurQC:         writeTrace(t, "4,0.001\n"),
		NumIterations: writeTrace(t, "4,5\n"),
	}
	_, err := Load(paths)
	var missing *sim.MissingTraceFileError
	require.ErrorAs(t, err, &missing)
}
