package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-be/internal/dto"
)

// Exercises the whole cascade: notifications, history anonymization,
// conversation membership, and authored messages.
func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	shared := f.seedConversation(t, alice.Id, bob.Id)
	// A conversation bob is the last member of; his departure empties it.
	solo := f.seedConversation(t, bob.Id)
	orphan := f.seedMessage(t, bob.Id, solo.Id, "talking to myself")

	// Alice writes, bob edits her message: history row with bob as editor.
	fromAlice, err := f.messages.Send(ctx, alice.Id, "10.0.0.1", time.Now(), &dto.SendMessageRequest{
		ConversationId: shared.Id,
		Content:        "from alice",
	})
	require.NoError(t, err)
	_, err = f.messages.Edit(ctx, bob.Id, &dto.EditMessageRequest{
		Id:      fromAlice.Id,
		Content: "tidied up by bob",
	})
	require.NoError(t, err)

	// Bob writes too, which notifies alice.
	_, err = f.messages.Send(ctx, bob.Id, "10.0.0.2", time.Now(), &dto.SendMessageRequest{
		ConversationId: shared.Id,
		Content:        "from bob",
	})
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, bob.Id))

	uow := f.factory.NewUnitOfWork(ctx)

	// The user row is gone.
	gone, err := uow.UserRepository().FindById(ctx, bob.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Notifications referencing bob either way are gone: his inbox entry
	// for alice's message, and alice's entry for his deleted message.
	assert.Empty(t, f.store.Notifications())

	// The history snapshot survives anonymized.
	histories := f.store.Histories()
	require.Len(t, histories, 1)
	assert.Equal(t, fromAlice.Id, histories[0].MessageId)
	assert.Nil(t, histories[0].EditorId)

	// The shared conversation survives with alice alone; only her message
	// remains.
	remaining, err := uow.MessageRepository().FindByConversation(ctx, shared.Id)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, fromAlice.Id, remaining[0].Id)
	// Bob's edit attribution on alice's surviving message is cleared; the
	// edited flag stays.
	assert.Nil(t, remaining[0].EditorId)
	assert.True(t, remaining[0].Edited)

	participants, err := uow.ConversationRepository().ParticipantIds(ctx, shared.Id)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, alice.Id, participants[0])

	// The emptied conversation is deleted with its message.
	deletedConv, err := uow.ConversationRepository().FindById(ctx, solo.Id)
	require.NoError(t, err)
	assert.Nil(t, deletedConv)

	deletedMsg, err := uow.MessageRepository().FindById(ctx, orphan.Id)
	require.NoError(t, err)
	assert.Nil(t, deletedMsg)
}

func TestDeleteUnknownUser(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, "alice")

	err := f.users.Delete(context.Background(), alice.Id)
	require.NoError(t, err)

	// A second delete finds nothing.
	err = f.users.Delete(context.Background(), alice.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserWithNoTraces(t *testing.T) {
	f := newFixture(t)
	loner := f.seedUser(t, "loner")

	// Nothing to clean: every step is a no-op success.
	require.NoError(t, f.users.Delete(context.Background(), loner.Id))
}
