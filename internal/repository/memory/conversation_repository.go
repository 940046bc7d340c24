package memory

import (
	"context"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type conversationRepository struct {
	store *Store
}

func (r *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if conversation.Id == uuid.Nil {
		conversation.Id = uuid.New()
	}
	stored := *conversation
	stored.ParticipantIds = append([]uuid.UUID(nil), conversation.ParticipantIds...)
	r.store.state.conversations[conversation.Id] = stored
	return nil
}

func (r *conversationRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.state.conversations[id]; ok {
		c.ParticipantIds = append([]uuid.UUID(nil), c.ParticipantIds...)
		return &c, nil
	}
	return nil, nil
}

func (r *conversationRepository) ParticipantIds(ctx context.Context, conversationId uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.state.conversations[conversationId]
	if !ok {
		return nil, nil
	}
	return append([]uuid.UUID(nil), c.ParticipantIds...), nil
}

func (r *conversationRepository) IsParticipant(ctx context.Context, conversationId, userId uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.state.conversations[conversationId]
	if !ok {
		return false, nil
	}
	for _, id := range c.ParticipantIds {
		if id == userId {
			return true, nil
		}
	}
	return false, nil
}

func (r *conversationRepository) ConversationIdsFor(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var ids []uuid.UUID
	for _, c := range r.store.state.conversations {
		for _, p := range c.ParticipantIds {
			if p == userId {
				ids = append(ids, c.Id)
				break
			}
		}
	}
	return ids, nil
}

func (r *conversationRepository) RemoveParticipant(ctx context.Context, conversationId, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.state.conversations[conversationId]
	if !ok {
		return nil
	}
	kept := c.ParticipantIds[:0]
	for _, id := range c.ParticipantIds {
		if id != userId {
			kept = append(kept, id)
		}
	}
	c.ParticipantIds = kept
	r.store.state.conversations[conversationId] = c
	return nil
}

func (r *conversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.state.conversations, id)
	return nil
}
