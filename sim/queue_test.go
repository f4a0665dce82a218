package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_PopNext_OrdersByTime(t *testing.T) {
	// GIVEN events scheduled out of time order
	q := NewEventQueue()
	q.Schedule(ExperimentEnd{At: 100})
	q.Schedule(JobStart{At: 0})
	q.Schedule(WarmupPeriodEnd{At: 50})

	// WHEN popped in sequence
	// THEN they come out in ascending time order
	first, ok := q.PopNext()
	require.True(t, ok)
	assert.Equal(t, int64(0), first.Time())

	second, ok := q.PopNext()
	require.True(t, ok)
	assert.Equal(t, int64(50), second.Time())

	third, ok := q.PopNext()
	require.True(t, ok)
	assert.Equal(t, int64(100), third.Time())

	_, ok = q.PopNext()
	assert.False(t, ok)
}

func TestEventQueue_Peek_DoesNotRemove(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(JobStart{At: 10})

	peeked, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, int64(10), peeked.Time())
	assert.Equal(t, 1, q.Len())
}

func TestEventQueue_Peek_Empty(t *testing.T) {
	q := NewEventQueue()
	_, ok := q.Peek()
	assert.False(t, ok)
}

// TestEventQueue_DedupUpdateClassicalTasks verifies that the queue
// holds at most one UpdateClassicalTasks event per timestamp, no matter
// how many classical task arrivals schedule one for the same instant.
func TestEventQueue_DedupUpdateClassicalTasks(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 5; i++ {
		q.Schedule(UpdateClassicalTasks{At: 0})
	}
	assert.Equal(t, 1, q.Len())

	event, ok := q.PopNext()
	require.True(t, ok)
	assert.IsType(t, UpdateClassicalTasks{}, event)
	assert.Equal(t, 0, q.Len())

	// once popped, a new schedule at the same timestamp is accepted again
	q.Schedule(UpdateClassicalTasks{At: 0})
	assert.Equal(t, 1, q.Len())
}

func TestEventQueue_DedupIsPerTimestamp(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(UpdateClassicalTasks{At: 0})
	q.Schedule(UpdateClassicalTasks{At: 5})
	assert.Equal(t, 2, q.Len())
}

func TestEventQueue_Len(t *testing.T) {
	q := NewEventQueue()
	assert.Equal(t, 0, q.Len())
	q.Schedule(JobStart{At: 1})
	q.Schedule(JobStart{At: 2})
	assert.Equal(t, 2, q.Len())
}
