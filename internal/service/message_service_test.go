package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-be/internal/dto"
	"messaging-be/internal/events"
	"messaging-be/internal/ratelimit"
	"messaging-be/internal/repository/unitofwork"
)

func TestSendRejectedWhenRateLimited(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	req := &dto.SendMessageRequest{ConversationId: conv.Id, Content: "spam"}

	for i := 0; i < 5; i++ {
		_, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", base.Add(time.Duration(i)*time.Second), req)
		require.NoError(t, err)
	}

	_, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", base.Add(6*time.Second), req)
	assert.ErrorIs(t, err, ratelimit.ErrRateLimited)

	// The denied send left no rows behind.
	uow := f.factory.NewUnitOfWork(context.Background())
	msgs, err := uow.MessageRepository().FindByConversation(context.Background(), conv.Id)
	require.NoError(t, err)
	assert.Len(t, msgs, 5)
}

func TestSendRequiresParticipation(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	eve := f.seedUser(t, "eve")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	_, err := f.messages.Send(context.Background(), eve.Id, "10.0.0.9", time.Now(), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "let me in",
	})
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.Empty(t, f.store.Notifications())
}

func TestSendReplyToParentInOtherConversation(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	convA := f.seedConversation(t, alice.Id, bob.Id)
	convB := f.seedConversation(t, alice.Id, bob.Id)
	parent := f.seedMessage(t, alice.Id, convA.Id, "root")

	_, err := f.messages.Send(context.Background(), bob.Id, "10.0.0.2", time.Now(), &dto.SendMessageRequest{
		ConversationId: convB.Id,
		Content:        "reply",
		ParentId:       &parent.Id,
	})
	assert.ErrorIs(t, err, ErrParentMismatch)
}

func TestThreadNestsReplies(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	root, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", time.Now(), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "root",
	})
	require.NoError(t, err)

	reply, err := f.messages.Send(context.Background(), bob.Id, "10.0.0.2", time.Now().Add(time.Second), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "reply",
		ParentId:       &root.Id,
	})
	require.NoError(t, err)

	_, err = f.messages.Send(context.Background(), alice.Id, "10.0.0.1", time.Now().Add(2*time.Second), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "nested",
		ParentId:       &reply.Id,
	})
	require.NoError(t, err)

	tree, err := f.messages.Thread(context.Background(), alice.Id, root.Id)
	require.NoError(t, err)
	require.Len(t, tree.Replies, 1)
	assert.Equal(t, "reply", tree.Replies[0].Content)
	require.Len(t, tree.Replies[0].Replies, 1)
	assert.Equal(t, "nested", tree.Replies[0].Replies[0].Content)
}

func TestSendRolledBackWhenReactionFails(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	boom := errors.New("fanout down")
	f.bus.Subscribe(events.KindMessage, events.TypeCreated, func(ctx context.Context, uow unitofwork.UnitOfWork, ev events.Event) error {
		return boom
	})

	_, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", time.Now(), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "doomed",
	})
	require.ErrorIs(t, err, boom)

	// Neither the message nor the fan-out from the earlier reaction survive.
	uow := f.factory.NewUnitOfWork(context.Background())
	msgs, findErr := uow.MessageRepository().FindByConversation(context.Background(), conv.Id)
	require.NoError(t, findErr)
	assert.Empty(t, msgs)
	assert.Empty(t, f.store.Notifications())
}

func TestEditNotFound(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")

	_, err := f.messages.Edit(context.Background(), alice.Id, &dto.EditMessageRequest{
		Id:      alice.Id, // no such message
		Content: "whatever",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditByNonParticipantForbidden(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	eve := f.seedUser(t, "eve")
	conv := f.seedConversation(t, alice.Id, bob.Id)
	msg := f.seedMessage(t, alice.Id, conv.Id, "original")

	_, err := f.messages.Edit(context.Background(), eve.Id, &dto.EditMessageRequest{
		Id:      msg.Id,
		Content: "hijacked",
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, f.store.Histories())
}
