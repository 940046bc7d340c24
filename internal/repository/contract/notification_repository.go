package contract

import (
	"context"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type NotificationRepository interface {
	// Create is idempotent on the (user, message) pair: inserting a
	// duplicate is a silent no-op, which makes fan-out safe under retry.
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUser(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*entity.Notification, error)
	MarkAsRead(ctx context.Context, notificationId uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
	DeleteByUser(ctx context.Context, userId uuid.UUID) error
	DeleteByMessageIds(ctx context.Context, messageIds []uuid.UUID) error
}
