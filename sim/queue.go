package sim

import "container/heap"

// eventItem wraps a scheduled Event with an insertion sequence number so
// that heap.Interface has a deterministic, total tie-break: ties on
// Time() are broken by insertion order, which carries no simulation
// meaning of its own but keeps replications byte-for-byte reproducible.
type eventItem struct {
	event Event
	seq   uint64
}

type eventHeap []eventItem

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].event.Time() != h[j].event.Time() {
		return h[i].event.Time() < h[j].event.Time()
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(eventItem))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// EventQueue is the simulation's min-time priority queue. It additionally
// deduplicates UpdateClassicalTasks events by timestamp: the classical
// engine's recompute step schedules one of these per still-active batch
// of tasks, and without deduplication the queue would grow without bound
// as tasks accumulate (spec scenario: at most one UpdateClassicalTasks
// per timestamp t).
type EventQueue struct {
	heap eventHeap
	seq  uint64

	// pendingUpdate tracks which UpdateClassicalTasks timestamps are
	// currently queued, so a second Schedule for the same t is a no-op.
	pendingUpdate map[int64]struct{}
}

// NewEventQueue returns an empty EventQueue ready for use.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		pendingUpdate: make(map[int64]struct{}),
	}
}

// Schedule inserts e into the queue. For UpdateClassicalTasks, a second
// Schedule at a timestamp already pending is silently dropped.
func (q *EventQueue) Schedule(e Event) {
	if u, ok := e.(UpdateClassicalTasks); ok {
		if _, exists := q.pendingUpdate[u.At]; exists {
			return
		}
		q.pendingUpdate[u.At] = struct{}{}
	}
	heap.Push(&q.heap, eventItem{event: e, seq: q.seq})
	q.seq++
}

// PopNext removes and returns the earliest-scheduled event. The second
// return value is false if the queue is empty.
func (q *EventQueue) PopNext() (Event, bool) {
	if q.heap.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(&q.heap).(eventItem)
	if u, ok := item.event.(UpdateClassicalTasks); ok {
		delete(q.pendingUpdate, u.At)
	}
	return item.event, true
}

// Peek returns the earliest-scheduled event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if q.heap.Len() == 0 {
		return nil, false
	}
	return q.heap[0].event, true
}

// Len reports the number of events currently queued.
func (q *EventQueue) Len() int { return q.heap.Len() }
