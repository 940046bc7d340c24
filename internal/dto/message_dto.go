package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ConversationId uuid.UUID  `json:"conversation_id" validate:"required"`
	Content        string     `json:"content" validate:"required"`
	ParentId       *uuid.UUID `json:"parent_id"`
}

type SendMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type EditMessageRequest struct {
	Id      uuid.UUID `json:"-"`
	Content string    `json:"content" validate:"required"`
}

type EditMessageResponse struct {
	Id     uuid.UUID `json:"id"`
	Edited bool      `json:"edited"`
}

// ThreadNode is one message with its replies nested below it.
type ThreadNode struct {
	Id        uuid.UUID     `json:"id"`
	SenderId  uuid.UUID     `json:"sender_id"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
	Replies   []*ThreadNode `json:"replies"`
}

type HistoryEntry struct {
	Id         uuid.UUID  `json:"id"`
	OldContent string     `json:"old_content"`
	EditorId   *uuid.UUID `json:"editor_id,omitempty"`
	EditedAt   time.Time  `json:"edited_at"`
}
