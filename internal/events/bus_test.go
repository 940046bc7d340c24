package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"messaging-be/internal/repository/unitofwork"
)

func TestPublishRunsReactionsInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe(KindMessage, TypeCreated, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(KindMessage, TypeCreated, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		order = append(order, "second")
		return nil
	})
	bus.Subscribe(KindMessage, TypeCreated, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		order = append(order, "third")
		return nil
	})

	err := bus.Publish(context.Background(), nil, Event{Kind: KindMessage, Type: TypeCreated})

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestPublishIsSynchronous(t *testing.T) {
	bus := NewBus()
	done := false

	bus.Subscribe(KindUser, TypeDeleted, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		done = true
		return nil
	})

	err := bus.Publish(context.Background(), nil, Event{Kind: KindUser, Type: TypeDeleted})

	// No synchronization needed: when Publish returns the reaction ran.
	assert.NoError(t, err)
	assert.True(t, done)
}

func TestPublishStopsOnFirstError(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	ran := []int{}

	bus.Subscribe(KindMessage, TypeUpdating, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		ran = append(ran, 0)
		return nil
	})
	bus.Subscribe(KindMessage, TypeUpdating, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		ran = append(ran, 1)
		return boom
	})
	bus.Subscribe(KindMessage, TypeUpdating, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		ran = append(ran, 2)
		return nil
	})

	err := bus.Publish(context.Background(), nil, Event{Kind: KindMessage, Type: TypeUpdating})

	assert.Equal(t, []int{0, 1}, ran)

	var reactionErr *ReactionError
	assert.ErrorAs(t, err, &reactionErr)
	assert.Equal(t, 1, reactionErr.Index)
	assert.Equal(t, KindMessage, reactionErr.Kind)
	assert.Equal(t, TypeUpdating, reactionErr.Type)
	assert.ErrorIs(t, err, boom)
}

func TestPublishWithNoSubscribers(t *testing.T) {
	bus := NewBus()
	err := bus.Publish(context.Background(), nil, Event{Kind: KindConversation, Type: TypeCreated})
	assert.NoError(t, err)
}

func TestSubscriberSelectivity(t *testing.T) {
	bus := NewBus()
	calls := 0

	bus.Subscribe(KindMessage, TypeCreated, func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
		calls++
		return nil
	})

	// Same kind, different type: must not fire.
	_ = bus.Publish(context.Background(), nil, Event{Kind: KindMessage, Type: TypeDeleted})
	// Same type, different kind: must not fire.
	_ = bus.Publish(context.Background(), nil, Event{Kind: KindUser, Type: TypeCreated})
	// Exact match fires.
	_ = bus.Publish(context.Background(), nil, Event{Kind: KindMessage, Type: TypeCreated})

	assert.Equal(t, 1, calls)
}
