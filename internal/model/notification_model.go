package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is created once per (recipient, message) pair when a message
// lands; the composite unique index is what makes the fan-out idempotent
// under retry.
type Notification struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_user_message,priority:1;index:idx_notifications_user_unread,priority:1"`
	MessageId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notifications_user_message,priority:2"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_notifications_user_unread,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
