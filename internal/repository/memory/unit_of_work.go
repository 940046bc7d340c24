package memory

import (
	"context"
	"fmt"

	"messaging-be/internal/repository/contract"
	"messaging-be/internal/repository/unitofwork"
)

type unitOfWork struct {
	store    *Store
	snapshot *state
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &factory{store: store}
}

type factory struct {
	store *Store
}

func (f *factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.snapshot != nil {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	u.snapshot = u.store.state.clone()
	u.store.mu.Unlock()
	return nil
}

func (u *unitOfWork) Commit() error {
	if u.snapshot == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.snapshot = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.snapshot == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.mu.Lock()
	u.store.state = u.snapshot
	u.store.mu.Unlock()
	u.snapshot = nil
	return nil
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{store: u.store}
}

func (u *unitOfWork) ConversationRepository() contract.ConversationRepository {
	return &conversationRepository{store: u.store}
}

func (u *unitOfWork) MessageRepository() contract.MessageRepository {
	return &messageRepository{store: u.store}
}

func (u *unitOfWork) NotificationRepository() contract.NotificationRepository {
	return &notificationRepository{store: u.store}
}
