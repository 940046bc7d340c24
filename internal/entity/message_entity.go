package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id             uuid.UUID
	SenderId       uuid.UUID
	ConversationId uuid.UUID
	Content        string
	ParentId       *uuid.UUID // threaded reply, nil for top-level
	Edited         bool
	EditorId       *uuid.UUID
	CreatedAt      time.Time
}

// MessageHistory is an append-only snapshot of a message's content taken
// just before an edit commits. It is never mutated; deleting its editor
// only clears EditorId.
type MessageHistory struct {
	Id         uuid.UUID
	MessageId  uuid.UUID
	OldContent string
	EditorId   *uuid.UUID
	EditedAt   time.Time
}
