package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationRequest struct {
	// The requester is added implicitly; at least one other participant
	// is required.
	ParticipantIds []uuid.UUID `json:"participant_ids" validate:"required,min=1"`
}

type CreateConversationResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowConversationResponse struct {
	Id             uuid.UUID     `json:"id"`
	ParticipantIds []uuid.UUID   `json:"participant_ids"`
	CreatedAt      time.Time     `json:"created_at"`
	Messages       []MessageItem `json:"messages"`
}

type MessageItem struct {
	Id        uuid.UUID  `json:"id"`
	SenderId  uuid.UUID  `json:"sender_id"`
	Content   string     `json:"content"`
	ParentId  *uuid.UUID `json:"parent_id,omitempty"`
	Edited    bool       `json:"edited"`
	CreatedAt time.Time  `json:"created_at"`
}
