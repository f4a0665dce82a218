package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priorityTable(m map[uint64]uint16) func(uint64) uint16 {
	return func(jobID uint64) uint16 { return m[jobID] }
}

func TestQuantumDispatcher_Arrive_StartsImmediatelyWhenDeviceFree(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyFIFO, 1)
	started := d.Arrive(Task{JobID: 1, Residual: 100})
	assert.True(t, started)
	assert.Equal(t, 1, d.ActiveLen())
	assert.Equal(t, 0, d.PendingLen())
}

func TestQuantumDispatcher_Arrive_QueuesWhenDevicesBusy(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyFIFO, 1)
	d.Arrive(Task{JobID: 1, Residual: 100})
	started := d.Arrive(Task{JobID: 2, Residual: 100})
	assert.False(t, started)
	assert.Equal(t, 1, d.ActiveLen())
	assert.Equal(t, 1, d.PendingLen())
}

func TestQuantumDispatcher_Complete_FindsMatchingTask(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyFIFO, 1)
	d.Arrive(Task{JobID: 1, Residual: 100, LastUpdate: 0})

	completed := d.Complete(100)
	assert.Equal(t, uint64(1), completed.JobID)
	assert.Equal(t, 0, d.ActiveLen())
}

func TestQuantumDispatcher_Complete_PanicsWhenNoMatch(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyFIFO, 1)
	d.Arrive(Task{JobID: 1, Residual: 100, LastUpdate: 0})
	assert.Panics(t, func() {
		d.Complete(50)
	})
}

func TestQuantumDispatcher_DispatchNext_FIFO(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyFIFO, 1)
	d.Arrive(Task{JobID: 1, Residual: 10})
	d.Arrive(Task{JobID: 2, Residual: 10}) // pending
	d.Arrive(Task{JobID: 3, Residual: 10}) // pending

	d.Complete(10) // frees the device, job 1's task removed

	next, ok := d.DispatchNext(10, priorityTable(nil))
	require.True(t, ok)
	assert.Equal(t, uint64(2), next.JobID)
	assert.Equal(t, 1, d.PendingLen())
}

func TestQuantumDispatcher_DispatchNext_LIFO(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyLIFO, 1)
	d.Arrive(Task{JobID: 1, Residual: 10})
	d.Arrive(Task{JobID: 2, Residual: 10})
	d.Arrive(Task{JobID: 3, Residual: 10})

	d.Complete(10)

	next, ok := d.DispatchNext(10, priorityTable(nil))
	require.True(t, ok)
	assert.Equal(t, uint64(3), next.JobID)
}

func TestQuantumDispatcher_DispatchNext_EmptyBacklog(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyFIFO, 1)
	_, ok := d.DispatchNext(0, priorityTable(nil))
	assert.False(t, ok)
}

func TestQuantumDispatcher_DispatchNext_Weighted_AlwaysPicksSoleNonZeroWeight(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyWeighted, 7)
	d.Arrive(Task{JobID: 1, Residual: 10})
	d.Arrive(Task{JobID: 2, Residual: 10})
	d.Arrive(Task{JobID: 3, Residual: 10})
	d.Complete(10)

	priorities := priorityTable(map[uint64]uint16{2: 0, 3: 5})
	next, ok := d.DispatchNext(10, priorities)
	require.True(t, ok)
	assert.Equal(t, uint64(3), next.JobID)
}

func TestQuantumDispatcher_DispatchNext_StartedTaskUpdatesLastUpdate(t *testing.T) {
	d := NewQuantumDispatcher(1, PolicyFIFO, 1)
	d.Arrive(Task{JobID: 1, Residual: 10, LastUpdate: 0})
	d.Arrive(Task{JobID: 2, Residual: 10, LastUpdate: 0})
	d.Complete(10)

	next, ok := d.DispatchNext(10, priorityTable(nil))
	require.True(t, ok)
	assert.Equal(t, int64(10), next.LastUpdate)
}
