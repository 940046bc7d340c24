package unitofwork

import (
	"context"

	"messaging-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical mutation. Created and
// Updating events are published while the transaction opened by Begin is
// still uncommitted, so reactions write through the same transaction and a
// reaction failure rolls the whole mutation back. Without Begin the
// repositories operate directly on the base connection, which is how the
// post-commit Deleted cleanup runs.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	NotificationRepository() contract.NotificationRepository
}
