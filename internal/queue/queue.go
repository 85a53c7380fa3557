package queue

import (
	"sync"

	"analytics-workers/models"
)

// EventQueue is the unbounded in-process buffer between the Kafka consumer
// and the timer-driven drain. The consumer goroutine appends and the worker
// goroutine drains, so the slice is guarded by a mutex.
type EventQueue struct {
	mu     sync.Mutex
	events []models.BehavioralEvent
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Enqueue appends an event; it will be included in the next drain.
func (q *EventQueue) Enqueue(event models.BehavioralEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, event)
}

// DrainAll atomically takes the entire backlog, leaving the queue empty.
// Events enqueued during processing of the returned batch land in the next
// drain.
func (q *EventQueue) DrainAll() []models.BehavioralEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}

	batch := q.events
	q.events = nil
	return batch
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
