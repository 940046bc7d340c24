package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-be/internal/dto"
)

func TestSendFansOutToOtherParticipants(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	carol := f.seedUser(t, "carol")
	conv := f.seedConversation(t, alice.Id, bob.Id, carol.Id)

	res, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", time.Now(), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "hello",
	})
	require.NoError(t, err)

	rows := f.store.Notifications()
	require.Len(t, rows, 2)

	recipients := map[uuid.UUID]bool{}
	for _, n := range rows {
		recipients[n.UserId] = true
		assert.Equal(t, res.Id, n.MessageId)
		assert.False(t, n.IsRead)
	}
	assert.True(t, recipients[bob.Id])
	assert.True(t, recipients[carol.Id])
	// The author never notifies themselves.
	assert.False(t, recipients[alice.Id])
}

func TestFanOutIsIdempotentPerRecipientMessage(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	conv := f.seedConversation(t, alice.Id, bob.Id)
	msg := f.seedMessage(t, alice.Id, conv.Id, "hello")

	uow := f.factory.NewUnitOfWork(context.Background())
	ev := messageCreatedEvent(msg)

	require.NoError(t, f.notifications.OnMessageCreated(context.Background(), uow, ev))
	// A replayed delivery lands on the same (recipient, message) pair.
	require.NoError(t, f.notifications.OnMessageCreated(context.Background(), uow, ev))

	assert.Len(t, f.store.Notifications(), 1)
}

func TestListUnreadOnly(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	_, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", time.Now(), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "first",
	})
	require.NoError(t, err)
	_, err = f.messages.Send(context.Background(), alice.Id, "10.0.0.1", time.Now(), &dto.SendMessageRequest{
		ConversationId: conv.Id,
		Content:        "second",
	})
	require.NoError(t, err)

	all, err := f.notifications.List(context.Background(), bob.Id, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, f.notifications.MarkAsRead(context.Background(), bob.Id, all[0].Id))

	unread, err := f.notifications.List(context.Background(), bob.Id, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestMarkAllAsRead(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	for _, content := range []string{"one", "two", "three"} {
		_, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", time.Now(), &dto.SendMessageRequest{
			ConversationId: conv.Id,
			Content:        content,
		})
		require.NoError(t, err)
	}

	require.NoError(t, f.notifications.MarkAllAsRead(context.Background(), bob.Id))

	unread, err := f.notifications.List(context.Background(), bob.Id, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
