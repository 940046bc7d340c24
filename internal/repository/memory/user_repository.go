package memory

import (
	"context"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	r.store.state.users[user.Id] = *user
	return nil
}

func (r *userRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if u, ok := r.store.state.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.state.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.store.state.users[id]; ok {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.state.users, id)
	return nil
}
