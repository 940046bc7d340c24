package events

// EntityKind identifies which entity a lifecycle event belongs to.
type EntityKind string

const (
	KindUser         EntityKind = "user"
	KindConversation EntityKind = "conversation"
	KindMessage      EntityKind = "message"
)

// EventType is the lifecycle phase being announced.
type EventType string

const (
	// TypeCreated fires inside the creating transaction, after the row is
	// written but before commit. Post carries the new entity.
	TypeCreated EventType = "created"

	// TypeUpdating fires before the update is committed. Pre carries the
	// stored entity, Post the candidate; reactions may annotate Post.
	TypeUpdating EventType = "updating"

	// TypeDeleted fires after the row is gone. Pre carries the last known
	// state by value so reactions can still reference it.
	TypeDeleted EventType = "deleted"
)

// Event is the payload handed to every reaction.
type Event struct {
	Kind EntityKind
	Type EventType
	Pre  interface{} // nil for Created
	Post interface{} // nil for Deleted
}
