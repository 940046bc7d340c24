package events

import "time"

// Event is the outbound contract for committed domain events mirrored to
// external consumers. The in-process lifecycle bus is separate (see
// internal/events); this shape only crosses the process boundary.
type Event interface {
	// EventType returns the code for this event (e.g. "MESSAGE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
