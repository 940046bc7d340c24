package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
	"messaging-be/internal/events"
	"messaging-be/internal/pkg/logger"
	"messaging-be/internal/repository/unitofwork"
)

// CleanupService repairs derived state when a user is deleted. The Deleted
// event fires after the user row is gone, so nothing here can be rolled
// back: each step runs independently, failures are collected and returned
// together, and the publisher logs them as a degraded-cleanup warning.
//
// Steps, in order:
//  1. delete notifications targeting the user
//  2. clear the editor reference on history snapshots they edited (the
//     snapshots themselves are audit records and survive) and on messages
//     they last edited
//  3. remove them from every conversation; a conversation left with no
//     participants is deleted with its messages, histories, notifications
//  4. delete messages they authored, with the same cascade
//
// A step that finds nothing to clean is a success: the goal state is
// already reached.
type CleanupService struct {
	logger logger.ILogger
}

func NewCleanupService(log logger.ILogger) *CleanupService {
	return &CleanupService{logger: log}
}

func (s *CleanupService) Register(bus *events.Bus) {
	bus.Subscribe(events.KindUser, events.TypeDeleted, s.OnUserDeleted)
}

func (s *CleanupService) OnUserDeleted(ctx context.Context, uow unitofwork.UnitOfWork, ev events.Event) error {
	actor, ok := ev.Pre.(*entity.User)
	if !ok {
		return fmt.Errorf("cleanup: unexpected pre-image type %T", ev.Pre)
	}

	var errs []error

	// Step 1: notifications addressed to the actor.
	if err := uow.NotificationRepository().DeleteByUser(ctx, actor.Id); err != nil {
		errs = append(errs, fmt.Errorf("delete notifications for %s: %w", actor.Id, err))
	}

	// Step 2: anonymize snapshots and edit attributions by the actor.
	if err := uow.MessageRepository().ClearHistoryEditor(ctx, actor.Id); err != nil {
		errs = append(errs, fmt.Errorf("clear history editor %s: %w", actor.Id, err))
	}
	if err := uow.MessageRepository().ClearEditor(ctx, actor.Id); err != nil {
		errs = append(errs, fmt.Errorf("clear message editor %s: %w", actor.Id, err))
	}

	// Step 3: leave every conversation, deleting the emptied ones.
	if err := s.leaveConversations(ctx, uow, actor.Id); err != nil {
		errs = append(errs, err)
	}

	// Step 4: messages the actor authored in surviving conversations.
	msgIds, err := uow.MessageRepository().IdsByAuthor(ctx, actor.Id)
	if err != nil {
		errs = append(errs, fmt.Errorf("list messages by author %s: %w", actor.Id, err))
	} else if err := s.deleteMessagesCascade(ctx, uow, msgIds); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (s *CleanupService) leaveConversations(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	convIds, err := uow.ConversationRepository().ConversationIdsFor(ctx, userId)
	if err != nil {
		return fmt.Errorf("list conversations for %s: %w", userId, err)
	}

	var errs []error
	for _, convId := range convIds {
		if err := uow.ConversationRepository().RemoveParticipant(ctx, convId, userId); err != nil {
			errs = append(errs, fmt.Errorf("remove participant from %s: %w", convId, err))
			continue
		}
		remaining, err := uow.ConversationRepository().ParticipantIds(ctx, convId)
		if err != nil {
			errs = append(errs, fmt.Errorf("count participants of %s: %w", convId, err))
			continue
		}
		if len(remaining) > 0 {
			continue
		}
		if err := s.deleteConversationCascade(ctx, uow, convId); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *CleanupService) deleteConversationCascade(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID) error {
	msgIds, err := uow.MessageRepository().IdsByConversation(ctx, conversationId)
	if err != nil {
		return fmt.Errorf("list messages of %s: %w", conversationId, err)
	}
	if err := s.deleteMessagesCascade(ctx, uow, msgIds); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return fmt.Errorf("delete conversation %s: %w", conversationId, err)
	}
	return nil
}

// deleteMessagesCascade removes messages together with the derived rows
// that reference them, derived rows first so no dangling reference can
// survive a partial failure.
func (s *CleanupService) deleteMessagesCascade(ctx context.Context, uow unitofwork.UnitOfWork, messageIds []uuid.UUID) error {
	if len(messageIds) == 0 {
		return nil
	}
	if err := uow.NotificationRepository().DeleteByMessageIds(ctx, messageIds); err != nil {
		return fmt.Errorf("delete notifications for messages: %w", err)
	}
	if err := uow.MessageRepository().DeleteHistoryByMessageIds(ctx, messageIds); err != nil {
		return fmt.Errorf("delete histories for messages: %w", err)
	}
	if err := uow.MessageRepository().DeleteByIds(ctx, messageIds); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}
