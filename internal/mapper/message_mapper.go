package mapper

import (
	"messaging-be/internal/entity"
	"messaging-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:             msg.Id,
		SenderId:       msg.SenderId,
		ConversationId: msg.ConversationId,
		Content:        msg.Content,
		ParentId:       msg.ParentId,
		Edited:         msg.Edited,
		EditorId:       msg.EditorId,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:             msg.Id,
		SenderId:       msg.SenderId,
		ConversationId: msg.ConversationId,
		Content:        msg.Content,
		ParentId:       msg.ParentId,
		Edited:         msg.Edited,
		EditorId:       msg.EditorId,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

func (m *MessageMapper) HistoryToEntity(h *model.MessageHistory) *entity.MessageHistory {
	if h == nil {
		return nil
	}
	return &entity.MessageHistory{
		Id:         h.Id,
		MessageId:  h.MessageId,
		OldContent: h.OldContent,
		EditorId:   h.EditorId,
		EditedAt:   h.EditedAt,
	}
}

func (m *MessageMapper) HistoryToModel(h *entity.MessageHistory) *model.MessageHistory {
	if h == nil {
		return nil
	}
	return &model.MessageHistory{
		Id:         h.Id,
		MessageId:  h.MessageId,
		OldContent: h.OldContent,
		EditorId:   h.EditorId,
		EditedAt:   h.EditedAt,
	}
}

func (m *MessageMapper) HistoryToEntities(hs []*model.MessageHistory) []*entity.MessageHistory {
	entities := make([]*entity.MessageHistory, len(hs))
	for i, h := range hs {
		entities[i] = m.HistoryToEntity(h)
	}
	return entities
}
