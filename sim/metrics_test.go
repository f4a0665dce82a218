package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOutputSingle_TimeAvg_WarmupGating verifies the time-averaging law
// under two different warmup instants, matching the two concrete cases
// called out for the metric accumulators: the same sample sequence
// recorded after Enable(0) and after Enable(5) must settle on
// different, exact averages because the warmup instant seeds the
// accumulator's initial "current value" clock.
func TestOutputSingle_TimeAvg_WarmupGating(t *testing.T) {
	cases := []struct {
		warmup   int64
		expected float64
	}{
		{warmup: 0, expected: 1.9},
		{warmup: 5, expected: 2.0},
	}

	for _, tc := range cases {
		single := NewOutputSingle()
		single.Enable(tc.warmup)
		single.TimeAvg("metric", 20, 1.0)
		single.TimeAvg("metric", 30, 2.0)
		single.TimeAvg("metric", 40, 1.0)
		single.TimeAvg("metric", 50, 3.0)
		single.Finish(100)

		assert.InDelta(t, tc.expected, single.Average("metric"), 1e-9,
			"warmup=%d", tc.warmup)
	}
}

// TestOutputSingle_TimeAvg_PreEnableSamplesNotLost verifies that
// samples recorded before Enable never contribute an interval (no
// accumulation happens until the accumulator is enabled) but are not
// discarded either: the last such sample becomes the baseline value
// charged against the first post-Enable interval.
func TestOutputSingle_TimeAvg_PreEnableSamplesNotLost(t *testing.T) {
	single := NewOutputSingle()
	single.TimeAvg("m", 0, 5.0)
	single.TimeAvg("m", 10, 7.0)
	single.Enable(10)
	single.TimeAvg("m", 20, 1.0)
	single.Finish(20)

	// interval [10,20) is charged at the pre-enable baseline value 7.0
	assert.InDelta(t, 7.0, single.Average("m"), 1e-9)
}

// TestOutputSingle_OneTime_GatedByEnable verifies one-shot metrics are
// dropped until Enable has fired, matching the time-average gate.
func TestOutputSingle_OneTime_GatedByEnable(t *testing.T) {
	single := NewOutputSingle()
	single.OneTime("dropped", 1)
	require.NotContains(t, single.OneTimeNames(), "dropped")

	single.Enable(0)
	single.OneTime("kept", 42)
	require.Contains(t, single.OneTimeNames(), "kept")
	assert.Equal(t, 42.0, single.OneTimeValue("kept"))
}

// TestOutputSeries_Add_GatedByEnable verifies series samples are
// dropped until Enable has fired, and grouped by label once enabled.
func TestOutputSeries_Add_GatedByEnable(t *testing.T) {
	series := NewOutputSeries()
	series.Add("job_time", "4,1", 2.0)
	assert.Nil(t, series.Series("job_time"))

	series.Enable()
	series.Add("job_time", "4,1", 2.0)
	series.Add("job_time", "4,1", 3.0)
	series.Add("job_time", "8,2", 9.0)

	s := series.Series("job_time")
	require.NotNil(t, s)
	assert.Equal(t, []float64{2.0, 3.0}, s.Values["4,1"])
	assert.Equal(t, []float64{9.0}, s.Values["8,2"])
}

func TestOutputSeries_SetHeader(t *testing.T) {
	series := NewOutputSeries()
	series.SetHeader("job_time", "num_qubits,priority")
	s := series.Series("job_time")
	require.NotNil(t, s)
	assert.Equal(t, "num_qubits,priority", s.Header)
}

func TestOutputSingle_Header_MatchesToCSVFieldCount(t *testing.T) {
	single := NewOutputSingle()
	single.Enable(0)
	single.OneTime("num_events", 10)
	single.OneTime("num_job_accepted", 5)
	single.TimeAvg("active_classical_tasks", 0, 1.0)
	single.TimeAvg("active_quantum_tasks", 0, 2.0)
	single.Finish(10)

	headerFields := strings.Split(single.Header(), ",")
	csvFields := strings.Split(single.ToCSV(), ",")
	assert.Equal(t, len(headerFields), len(csvFields))
	assert.Equal(t, []string{"num_events", "num_job_accepted", "active_classical_tasks", "active_quantum_tasks"}, headerFields)
}
