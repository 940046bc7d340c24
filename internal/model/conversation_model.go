package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationParticipant is the explicit join row for the unordered
// participant set. The composite key keeps membership unique.
type ConversationParticipant struct {
	ConversationId uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_participants_user"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}
