package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	MessageId uuid.UUID
	IsRead    bool
	CreatedAt time.Time
}
