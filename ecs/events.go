package ecs

// ContactKind separates solid collisions from sensor overlaps.
type ContactKind int

const (
	// ContactCollision is reported on every physics step while two solid
	// shapes touch.
	ContactCollision ContactKind = iota
	// ContactTrigger is reported once when a shape enters a sensor.
	ContactTrigger
)

func (k ContactKind) String() string {
	switch k {
	case ContactCollision:
		return "collision"
	case ContactTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// ContactEvent records that Entity touched Other during a physics step.
type ContactEvent struct {
	Entity Entity
	Other  Entity
	Kind   ContactKind
}

// ContactQueue is a simple FIFO queue.
type ContactQueue struct {
	items []ContactEvent
}

// Push adds an event.
func (q *ContactQueue) Push(evt ContactEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of pending events.
func (q *ContactQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *ContactQueue) Drain() []ContactEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
