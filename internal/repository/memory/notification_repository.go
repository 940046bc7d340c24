package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type notificationRepository struct {
	store *Store
}

// Create mirrors the SQL implementation's ON CONFLICT DO NOTHING: an
// existing (user, message) pair wins and the insert is silently dropped.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, n := range r.store.state.notifications {
		if n.UserId == notification.UserId && n.MessageId == notification.MessageId {
			return nil
		}
	}
	if notification.Id == uuid.Nil {
		notification.Id = uuid.New()
	}
	r.store.state.notifications[notification.Id] = *notification
	return nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*entity.Notification, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.store.state.notifications {
		if n.UserId != userId {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		n := n
		out = append(out, &n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if n, ok := r.store.state.notifications[notificationId]; ok {
		n.IsRead = true
		r.store.state.notifications[notificationId] = n
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, n := range r.store.state.notifications {
		if n.UserId == userId && !n.IsRead {
			n.IsRead = true
			r.store.state.notifications[id] = n
		}
	}
	return nil
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, n := range r.store.state.notifications {
		if n.UserId == userId {
			delete(r.store.state.notifications, id)
		}
	}
	return nil
}

func (r *notificationRepository) DeleteByMessageIds(ctx context.Context, messageIds []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, msgId := range messageIds {
		for id, n := range r.store.state.notifications {
			if n.MessageId == msgId {
				delete(r.store.state.notifications, id)
			}
		}
	}
	return nil
}
