package contract

import (
	"context"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	Update(ctx context.Context, message *entity.Message) error
	FindByConversation(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error)
	FindReplies(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error)
	IdsByConversation(ctx context.Context, conversationId uuid.UUID) ([]uuid.UUID, error)
	IdsByAuthor(ctx context.Context, authorId uuid.UUID) ([]uuid.UUID, error)
	DeleteByIds(ctx context.Context, ids []uuid.UUID) error
	// ClearEditor nulls the editor attribution on messages last edited by
	// editorId, leaving the messages themselves intact.
	ClearEditor(ctx context.Context, editorId uuid.UUID) error

	// Edit history. Append-only: there is deliberately no update.
	CreateHistory(ctx context.Context, history *entity.MessageHistory) error
	HistoryByMessage(ctx context.Context, messageId uuid.UUID) ([]*entity.MessageHistory, error)
	// ClearHistoryEditor anonymizes snapshots attributed to an editor;
	// the rows themselves are retained.
	ClearHistoryEditor(ctx context.Context, editorId uuid.UUID) error
	DeleteHistoryByMessageIds(ctx context.Context, messageIds []uuid.UUID) error
}
