package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"messaging-be/internal/dto"
	"messaging-be/internal/entity"
	"messaging-be/internal/events"
	"messaging-be/internal/pkg/logger"
	"messaging-be/internal/ratelimit"
	"messaging-be/internal/repository/unitofwork"
	pkgEvents "messaging-be/pkg/events"
)

// EventMirror forwards committed domain events to external consumers.
// Implemented by the NATS publisher; nil disables mirroring.
type EventMirror interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

type IMessageService interface {
	// Send persists a new message. rateKey identifies the sending client
	// (the originating address); now is the admission instant, read once
	// at the edge so the limiter core never touches the wall clock.
	Send(ctx context.Context, senderId uuid.UUID, rateKey string, now time.Time, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Edit(ctx context.Context, editorId uuid.UUID, req *dto.EditMessageRequest) (*dto.EditMessageResponse, error)
	Thread(ctx context.Context, requesterId, messageId uuid.UUID) (*dto.ThreadNode, error)
	History(ctx context.Context, requesterId, messageId uuid.UUID) ([]*dto.HistoryEntry, error)
}

type messageService struct {
	uowFactory unitofwork.RepositoryFactory
	bus        *events.Bus
	limiter    *ratelimit.SlidingWindowLimiter
	mirror     EventMirror
	logger     logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	bus *events.Bus,
	limiter *ratelimit.SlidingWindowLimiter,
	mirror EventMirror,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory: uowFactory,
		bus:        bus,
		limiter:    limiter,
		mirror:     mirror,
		logger:     log,
	}
}

func (s *messageService) Send(ctx context.Context, senderId uuid.UUID, rateKey string, now time.Time, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	// Admission gate first: a denied send never reaches storage.
	if !s.limiter.Admit(rateKey, now) {
		return nil, ratelimit.ErrRateLimited
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	msg, err := s.createMessage(ctx, uow, senderId, now, req)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	// Fan-out runs here, inside the transaction: a reaction failure
	// aborts the send.
	if err := s.bus.Publish(ctx, uow, events.Event{
		Kind: events.KindMessage,
		Type: events.TypeCreated,
		Post: msg,
	}); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.mirrorEvent(ctx, "MESSAGE_CREATED", map[string]interface{}{
		"message_id":      msg.Id.String(),
		"conversation_id": msg.ConversationId.String(),
		"sender_id":       msg.SenderId.String(),
	})

	return &dto.SendMessageResponse{Id: msg.Id, CreatedAt: msg.CreatedAt}, nil
}

func (s *messageService) createMessage(ctx context.Context, uow unitofwork.UnitOfWork, senderId uuid.UUID, now time.Time, req *dto.SendMessageRequest) (*entity.Message, error) {
	isParticipant, err := uow.ConversationRepository().IsParticipant(ctx, req.ConversationId, senderId)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	if req.ParentId != nil {
		parent, err := uow.MessageRepository().FindById(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrNotFound
		}
		if parent.ConversationId != req.ConversationId {
			return nil, ErrParentMismatch
		}
	}

	msg := &entity.Message{
		Id:             uuid.New(),
		SenderId:       senderId,
		ConversationId: req.ConversationId,
		Content:        req.Content,
		ParentId:       req.ParentId,
		CreatedAt:      now,
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) Edit(ctx context.Context, editorId uuid.UUID, req *dto.EditMessageRequest) (*dto.EditMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	pre, err := uow.MessageRepository().FindById(ctx, req.Id)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if pre == nil {
		_ = uow.Rollback()
		return nil, ErrNotFound
	}

	isParticipant, err := uow.ConversationRepository().IsParticipant(ctx, pre.ConversationId, editorId)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if !isParticipant {
		_ = uow.Rollback()
		return nil, ErrForbidden
	}

	post := *pre
	post.Content = req.Content
	post.EditorId = &editorId

	// The audit reaction sees the pre/post pair before anything is
	// written; it appends the snapshot and marks post.Edited on a real
	// content change.
	if err := s.bus.Publish(ctx, uow, events.Event{
		Kind: events.KindMessage,
		Type: events.TypeUpdating,
		Pre:  pre,
		Post: &post,
	}); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := uow.MessageRepository().Update(ctx, &post); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.mirrorEvent(ctx, "MESSAGE_EDITED", map[string]interface{}{
		"message_id": post.Id.String(),
		"editor_id":  editorId.String(),
	})

	return &dto.EditMessageResponse{Id: post.Id, Edited: post.Edited}, nil
}

func (s *messageService) Thread(ctx context.Context, requesterId, messageId uuid.UUID) (*dto.ThreadNode, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	root, err := uow.MessageRepository().FindById(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNotFound
	}
	if err := s.requireParticipant(ctx, uow, root.ConversationId, requesterId); err != nil {
		return nil, err
	}
	return s.buildThread(ctx, uow, root)
}

func (s *messageService) buildThread(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.Message) (*dto.ThreadNode, error) {
	node := &dto.ThreadNode{
		Id:        msg.Id,
		SenderId:  msg.SenderId,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		Replies:   make([]*dto.ThreadNode, 0),
	}
	replies, err := uow.MessageRepository().FindReplies(ctx, msg.Id)
	if err != nil {
		return nil, err
	}
	for _, reply := range replies {
		child, err := s.buildThread(ctx, uow, reply)
		if err != nil {
			return nil, err
		}
		node.Replies = append(node.Replies, child)
	}
	return node, nil
}

func (s *messageService) History(ctx context.Context, requesterId, messageId uuid.UUID) ([]*dto.HistoryEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindById(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, ErrNotFound
	}
	if err := s.requireParticipant(ctx, uow, msg.ConversationId, requesterId); err != nil {
		return nil, err
	}

	histories, err := uow.MessageRepository().HistoryByMessage(ctx, messageId)
	if err != nil {
		return nil, err
	}
	entries := make([]*dto.HistoryEntry, 0, len(histories))
	for _, h := range histories {
		entries = append(entries, &dto.HistoryEntry{
			Id:         h.Id,
			OldContent: h.OldContent,
			EditorId:   h.EditorId,
			EditedAt:   h.EditedAt,
		})
	}
	return entries, nil
}

func (s *messageService) requireParticipant(ctx context.Context, uow unitofwork.UnitOfWork, conversationId, userId uuid.UUID) error {
	isParticipant, err := uow.ConversationRepository().IsParticipant(ctx, conversationId, userId)
	if err != nil {
		return err
	}
	if !isParticipant {
		return ErrForbidden
	}
	return nil
}

func (s *messageService) mirrorEvent(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.mirror == nil {
		return
	}
	ev := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := s.mirror.Publish(ctx, ev); err != nil {
		s.logger.Warn("MessageService", "Failed to mirror event to NATS", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
