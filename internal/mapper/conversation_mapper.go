package mapper

import (
	"github.com/google/uuid"

	"messaging-be/internal/entity"
	"messaging-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// ToEntity joins the conversation row with its participant ids, which live
// in a separate table and are queried alongside.
func (m *ConversationMapper) ToEntity(c *model.Conversation, participantIds []uuid.UUID) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:             c.Id,
		ParticipantIds: participantIds,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:        c.Id,
		CreatedAt: c.CreatedAt,
	}
}
