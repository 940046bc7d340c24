// Package memory is an in-process implementation of the storage contracts.
// It backs the unit tests for the audit core so they run without Postgres,
// and mirrors the transactional behavior the core relies on: Begin takes a
// snapshot, Rollback restores it.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"messaging-be/internal/entity"
)

type state struct {
	users         map[uuid.UUID]entity.User
	conversations map[uuid.UUID]entity.Conversation
	messages      map[uuid.UUID]entity.Message
	histories     map[uuid.UUID]entity.MessageHistory
	notifications map[uuid.UUID]entity.Notification
}

func newState() *state {
	return &state{
		users:         make(map[uuid.UUID]entity.User),
		conversations: make(map[uuid.UUID]entity.Conversation),
		messages:      make(map[uuid.UUID]entity.Message),
		histories:     make(map[uuid.UUID]entity.MessageHistory),
		notifications: make(map[uuid.UUID]entity.Notification),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.conversations {
		ids := make([]uuid.UUID, len(v.ParticipantIds))
		copy(ids, v.ParticipantIds)
		v.ParticipantIds = ids
		c.conversations[k] = v
	}
	for k, v := range s.messages {
		c.messages[k] = v
	}
	for k, v := range s.histories {
		c.histories[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	return c
}

type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// Histories returns every snapshot row, for test assertions.
func (s *Store) Histories() []entity.MessageHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.MessageHistory, 0, len(s.state.histories))
	for _, h := range s.state.histories {
		out = append(out, h)
	}
	return out
}

// Notifications returns every notification row, for test assertions.
func (s *Store) Notifications() []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Notification, 0, len(s.state.notifications))
	for _, n := range s.state.notifications {
		out = append(out, n)
	}
	return out
}
