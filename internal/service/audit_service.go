package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
	"messaging-be/internal/events"
	"messaging-be/internal/repository/unitofwork"
)

// AuditService keeps the append-only edit history of messages. It reacts to
// Updating(Message) inside the update's transaction: when the content is
// about to change it appends a snapshot of the stored content and flips
// the post-image's Edited flag so the flag commits with the update itself.
type AuditService struct{}

func NewAuditService() *AuditService {
	return &AuditService{}
}

func (s *AuditService) Register(bus *events.Bus) {
	bus.Subscribe(events.KindMessage, events.TypeUpdating, s.OnMessageUpdating)
}

func (s *AuditService) OnMessageUpdating(ctx context.Context, uow unitofwork.UnitOfWork, ev events.Event) error {
	pre, ok := ev.Pre.(*entity.Message)
	if !ok {
		return fmt.Errorf("audit: unexpected pre-image type %T", ev.Pre)
	}
	post, ok := ev.Post.(*entity.Message)
	if !ok {
		return fmt.Errorf("audit: unexpected post-image type %T", ev.Post)
	}

	if pre.Content == post.Content {
		// Not a content edit; no snapshot, Edited untouched.
		return nil
	}

	post.Edited = true

	history := &entity.MessageHistory{
		Id:         uuid.New(),
		MessageId:  pre.Id,
		OldContent: pre.Content,
		EditorId:   post.EditorId,
		EditedAt:   time.Now(),
	}
	return uow.MessageRepository().CreateHistory(ctx, history)
}
