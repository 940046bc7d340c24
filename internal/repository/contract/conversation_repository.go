package contract

import (
	"context"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)

	// ParticipantIds resolves the unordered participant set.
	ParticipantIds(ctx context.Context, conversationId uuid.UUID) ([]uuid.UUID, error)
	IsParticipant(ctx context.Context, conversationId, userId uuid.UUID) (bool, error)
	ConversationIdsFor(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error)
	RemoveParticipant(ctx context.Context, conversationId, userId uuid.UUID) error

	// Delete removes the conversation row and its participant rows. Owned
	// messages are the caller's responsibility (cascade lives in the
	// cleanup reaction so every step stays observable).
	Delete(ctx context.Context, id uuid.UUID) error
}
