package events

import "time"

// Event is a domain event raised by an aggregate.
type Event interface {
	Name() string
	OccurredAt() time.Time
}

// EventRecorder accumulates pending events on an aggregate until the
// application layer hands them to the outbox. Embed by value; aggregates are
// not shared across goroutines.
type EventRecorder struct {
	pending []Event
}

// Record appends an event to the pending list.
func (r *EventRecorder) Record(e Event) {
	r.pending = append(r.pending, e)
}

// PendingEvents returns the recorded events in order.
func (r *EventRecorder) PendingEvents() []Event {
	return r.pending
}

// ClearEvents drops all pending events.
func (r *EventRecorder) ClearEvents() {
	r.pending = nil
}
