package input

// Queue is a first-in first-out buffer of pending events. The owning game
// loop pushes parsed events and drains them in arrival order; the queue
// has no internal concurrency and is not safe for concurrent use.
type Queue struct {
	events []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event to the back of the queue.
func (q *Queue) Push(event Event) {
	q.events = append(q.events, event)
}

// Pop removes and returns the oldest event. ok is false when the queue is
// empty.
func (q *Queue) Pop() (event Event, ok bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	event = q.events[0]
	q.events = q.events[1:]
	return event, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events)
}
