package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SenderId       uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_sender"`
	ConversationId uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_conversation"`
	Content        string     `gorm:"type:text;not null"`
	ParentId       *uuid.UUID `gorm:"type:uuid;index:idx_messages_parent"`
	Edited         bool       `gorm:"not null;default:false"`
	EditorId       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}

type MessageHistory struct {
	Id         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId  uuid.UUID  `gorm:"type:uuid;not null;index:idx_message_histories_message"`
	OldContent string     `gorm:"type:text;not null"`
	EditorId   *uuid.UUID `gorm:"type:uuid;index:idx_message_histories_editor"`
	EditedAt   time.Time  `gorm:"autoCreateTime"`
}

func (MessageHistory) TableName() string {
	return "message_histories"
}
