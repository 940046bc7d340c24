package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"messaging-be/internal/dto"
	"messaging-be/internal/entity"
	"messaging-be/internal/events"
	"messaging-be/internal/pkg/logger"
	"messaging-be/internal/repository/unitofwork"
)

type IConversationService interface {
	Create(ctx context.Context, requesterId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	Show(ctx context.Context, requesterId, conversationId uuid.UUID) (*dto.ShowConversationResponse, error)
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
	bus        *events.Bus
	logger     logger.ILogger
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory, bus *events.Bus, log logger.ILogger) IConversationService {
	return &conversationService{
		uowFactory: uowFactory,
		bus:        bus,
		logger:     log,
	}
}

func (s *conversationService) Create(ctx context.Context, requesterId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	// The requester always joins; duplicates in the request collapse.
	seen := map[uuid.UUID]struct{}{requesterId: {}}
	participantIds := []uuid.UUID{requesterId}
	for _, id := range req.ParticipantIds {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		participantIds = append(participantIds, id)
	}
	if len(participantIds) < 2 {
		return nil, ErrTooFewParticipants
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	users, err := uow.UserRepository().FindByIds(ctx, participantIds)
	if err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if len(users) != len(participantIds) {
		_ = uow.Rollback()
		return nil, fmt.Errorf("%w: one or more participants do not exist", ErrNotFound)
	}

	conv := &entity.Conversation{
		Id:             uuid.New(),
		ParticipantIds: participantIds,
		CreatedAt:      time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conv); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := s.bus.Publish(ctx, uow, events.Event{
		Kind: events.KindConversation,
		Type: events.TypeCreated,
		Post: conv,
	}); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &dto.CreateConversationResponse{Id: conv.Id}, nil
}

func (s *conversationService) Show(ctx context.Context, requesterId, conversationId uuid.UUID) (*dto.ShowConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindById(ctx, conversationId)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrNotFound
	}

	isParticipant, err := uow.ConversationRepository().IsParticipant(ctx, conversationId, requesterId)
	if err != nil {
		return nil, err
	}
	if !isParticipant {
		return nil, ErrNotParticipant
	}

	messages, err := uow.MessageRepository().FindByConversation(ctx, conversationId)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MessageItem, 0, len(messages))
	for _, m := range messages {
		items = append(items, dto.MessageItem{
			Id:        m.Id,
			SenderId:  m.SenderId,
			Content:   m.Content,
			ParentId:  m.ParentId,
			Edited:    m.Edited,
			CreatedAt: m.CreatedAt,
		})
	}

	return &dto.ShowConversationResponse{
		Id:             conv.Id,
		ParticipantIds: conv.ParticipantIds,
		CreatedAt:      conv.CreatedAt,
		Messages:       items,
	}, nil
}
