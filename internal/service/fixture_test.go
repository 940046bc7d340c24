package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"messaging-be/internal/entity"
	"messaging-be/internal/events"
	"messaging-be/internal/pkg/logger"
	"messaging-be/internal/ratelimit"
	"messaging-be/internal/repository/memory"
	"messaging-be/internal/repository/unitofwork"
)

const testJWTSecret = "test_secret"

// fixture wires the services against the in-memory store, mirroring the
// bootstrap wiring: audit, then fan-out, then cleanup.
type fixture struct {
	store   *memory.Store
	factory unitofwork.RepositoryFactory
	bus     *events.Bus
	limiter *ratelimit.SlidingWindowLimiter

	users         IUserService
	conversations IConversationService
	messages      IMessageService
	notifications *NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	bus := events.NewBus()
	limiter := ratelimit.NewSlidingWindowLimiter(60*time.Second, 5)
	log := logger.NewNop()

	NewAuditService().Register(bus)
	notificationService := NewNotificationService(factory, log)
	notificationService.Register(bus)
	NewCleanupService(log).Register(bus)

	return &fixture{
		store:         store,
		factory:       factory,
		bus:           bus,
		limiter:       limiter,
		users:         NewUserService(factory, bus, testJWTSecret, log),
		conversations: NewConversationService(factory, bus, log),
		messages:      NewMessageService(factory, bus, limiter, nil, log),
		notifications: notificationService,
	}
}

func (f *fixture) seedUser(t *testing.T, username string) *entity.User {
	t.Helper()
	u := &entity.User{
		Id:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		Role:      "guest",
		CreatedAt: time.Now(),
	}
	uow := f.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), u))
	return u
}

func (f *fixture) seedConversation(t *testing.T, participants ...uuid.UUID) *entity.Conversation {
	t.Helper()
	c := &entity.Conversation{
		Id:             uuid.New(),
		ParticipantIds: participants,
		CreatedAt:      time.Now(),
	}
	uow := f.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.ConversationRepository().Create(context.Background(), c))
	return c
}

func messageCreatedEvent(msg *entity.Message) events.Event {
	return events.Event{Kind: events.KindMessage, Type: events.TypeCreated, Post: msg}
}

func (f *fixture) seedMessage(t *testing.T, senderId, conversationId uuid.UUID, content string) *entity.Message {
	t.Helper()
	m := &entity.Message{
		Id:             uuid.New(),
		SenderId:       senderId,
		ConversationId: conversationId,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	uow := f.factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.MessageRepository().Create(context.Background(), m))
	return m
}
