package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationItem struct {
	Id        uuid.UUID `json:"id"`
	MessageId uuid.UUID `json:"message_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
