package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Username     string
	Email        string
	PasswordHash *string
	Role         string // "guest", "host" or "admin"
	CreatedAt    time.Time
}
