package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"messaging-be/internal/dto"
	"messaging-be/internal/entity"
	"messaging-be/internal/events"
	"messaging-be/internal/pkg/logger"
	"messaging-be/internal/repository/unitofwork"
)

type INotificationService interface {
	List(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*dto.NotificationItem, error)
	MarkAsRead(ctx context.Context, userId, notificationId uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) error
}

// NotificationService fans a new message out to every participant of its
// conversation except the author, and serves the inbox reads. Fan-out runs
// inside the sending transaction; the idempotent repository insert makes a
// retried fan-out land exactly once per (recipient, message).
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *NotificationService) Register(bus *events.Bus) {
	bus.Subscribe(events.KindMessage, events.TypeCreated, s.OnMessageCreated)
}

func (s *NotificationService) OnMessageCreated(ctx context.Context, uow unitofwork.UnitOfWork, ev events.Event) error {
	msg, ok := ev.Post.(*entity.Message)
	if !ok {
		return fmt.Errorf("fanout: unexpected post-image type %T", ev.Post)
	}

	participants, err := uow.ConversationRepository().ParticipantIds(ctx, msg.ConversationId)
	if err != nil {
		return err
	}

	for _, userId := range participants {
		if userId == msg.SenderId {
			continue
		}
		n := &entity.Notification{
			Id:        uuid.New(),
			UserId:    userId,
			MessageId: msg.Id,
			IsRead:    false,
			CreatedAt: msg.CreatedAt,
		}
		if err := uow.NotificationRepository().Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userId uuid.UUID, unreadOnly bool) ([]*dto.NotificationItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notifications, err := uow.NotificationRepository().FindByUser(ctx, userId, unreadOnly)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.NotificationItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, &dto.NotificationItem{
			Id:        n.Id,
			MessageId: n.MessageId,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return items, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userId, notificationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, notificationId)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, userId)
}
