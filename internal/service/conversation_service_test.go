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

func TestCreateConversation(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")

	res, err := f.conversations.Create(context.Background(), alice.Id, &dto.CreateConversationRequest{
		ParticipantIds: []uuid.UUID{bob.Id},
	})
	require.NoError(t, err)

	shown, err := f.conversations.Show(context.Background(), bob.Id, res.Id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{alice.Id, bob.Id}, shown.ParticipantIds)
}

func TestCreateConversationDeduplicatesParticipants(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")

	// The requester listed again, and bob twice: collapses to two members.
	res, err := f.conversations.Create(context.Background(), alice.Id, &dto.CreateConversationRequest{
		ParticipantIds: []uuid.UUID{alice.Id, bob.Id, bob.Id},
	})
	require.NoError(t, err)

	shown, err := f.conversations.Show(context.Background(), alice.Id, res.Id)
	require.NoError(t, err)
	assert.Len(t, shown.ParticipantIds, 2)
}

func TestCreateConversationWithOnlySelf(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")

	_, err := f.conversations.Create(context.Background(), alice.Id, &dto.CreateConversationRequest{
		ParticipantIds: []uuid.UUID{alice.Id},
	})
	assert.ErrorIs(t, err, ErrTooFewParticipants)
}

func TestCreateConversationWithUnknownUser(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")

	_, err := f.conversations.Create(context.Background(), alice.Id, &dto.CreateConversationRequest{
		ParticipantIds: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShowConversationListsMessagesInOrder(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	base := time.Now()
	for i, content := range []string{"one", "two", "three"} {
		_, err := f.messages.Send(context.Background(), alice.Id, "10.0.0.1", base.Add(time.Duration(i)*time.Second), &dto.SendMessageRequest{
			ConversationId: conv.Id,
			Content:        content,
		})
		require.NoError(t, err)
	}

	shown, err := f.conversations.Show(context.Background(), bob.Id, conv.Id)
	require.NoError(t, err)
	require.Len(t, shown.Messages, 3)
	assert.Equal(t, "one", shown.Messages[0].Content)
	assert.Equal(t, "three", shown.Messages[2].Content)
}

func TestShowConversationRequiresMembership(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	eve := f.seedUser(t, "eve")
	conv := f.seedConversation(t, alice.Id, bob.Id)

	_, err := f.conversations.Show(context.Background(), eve.Id, conv.Id)
	assert.ErrorIs(t, err, ErrNotParticipant)
}
