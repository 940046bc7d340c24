package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type messageRepository struct {
	store *Store
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	r.store.state.messages[message.Id] = *message
	return nil
}

func (r *messageRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if m, ok := r.store.state.messages[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *messageRepository) Update(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.state.messages[message.Id] = *message
	return nil
}

func (r *messageRepository) FindByConversation(ctx context.Context, conversationId uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.store.state.messages {
		if m.ConversationId == conversationId {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *messageRepository) FindReplies(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.store.state.messages {
		if m.ParentId != nil && *m.ParentId == parentId {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *messageRepository) IdsByConversation(ctx context.Context, conversationId uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var ids []uuid.UUID
	for _, m := range r.store.state.messages {
		if m.ConversationId == conversationId {
			ids = append(ids, m.Id)
		}
	}
	return ids, nil
}

func (r *messageRepository) IdsByAuthor(ctx context.Context, authorId uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var ids []uuid.UUID
	for _, m := range r.store.state.messages {
		if m.SenderId == authorId {
			ids = append(ids, m.Id)
		}
	}
	return ids, nil
}

func (r *messageRepository) DeleteByIds(ctx context.Context, ids []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, id := range ids {
		delete(r.store.state.messages, id)
	}
	return nil
}

func (r *messageRepository) ClearEditor(ctx context.Context, editorId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, m := range r.store.state.messages {
		if m.EditorId != nil && *m.EditorId == editorId {
			m.EditorId = nil
			r.store.state.messages[id] = m
		}
	}
	return nil
}

func (r *messageRepository) CreateHistory(ctx context.Context, history *entity.MessageHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if history.Id == uuid.Nil {
		history.Id = uuid.New()
	}
	r.store.state.histories[history.Id] = *history
	return nil
}

func (r *messageRepository) HistoryByMessage(ctx context.Context, messageId uuid.UUID) ([]*entity.MessageHistory, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.MessageHistory
	for _, h := range r.store.state.histories {
		if h.MessageId == messageId {
			h := h
			out = append(out, &h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EditedAt.Before(out[j].EditedAt) })
	return out, nil
}

func (r *messageRepository) ClearHistoryEditor(ctx context.Context, editorId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, h := range r.store.state.histories {
		if h.EditorId != nil && *h.EditorId == editorId {
			h.EditorId = nil
			r.store.state.histories[id] = h
		}
	}
	return nil
}

func (r *messageRepository) DeleteHistoryByMessageIds(ctx context.Context, messageIds []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, msgId := range messageIds {
		for id, h := range r.store.state.histories {
			if h.MessageId == msgId {
				delete(r.store.state.histories, id)
			}
		}
	}
	return nil
}
