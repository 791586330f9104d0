package collector

import (
	"sync"

	"menu-analytics/internal/models"
)

// eventQueue buffers pending events for one session. Swap removes the whole
// buffer atomically so an in-flight batch can never race with concurrent
// Push calls, and Requeue puts a failed batch back at the front so retry
// order matches original order.
type eventQueue struct {
	mu     sync.Mutex
	events []*models.Event
}

func newEventQueue() *eventQueue {
	return &eventQueue{}
}

// Push appends an event and returns the resulting queue length.
func (q *eventQueue) Push(event *models.Event) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, event)
	return len(q.events)
}

// Swap removes and returns all buffered events.
func (q *eventQueue) Swap() []*models.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// Requeue prepends a failed batch ahead of anything enqueued since the swap.
func (q *eventQueue) Requeue(batch []*models.Event) {
	if len(batch) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(batch, q.events...)
}

func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
