package events

import (
	"context"
	"fmt"
	"sync"

	"messaging-be/internal/repository/unitofwork"
)

// Reaction handles one lifecycle event. The unit of work is the one the
// publisher is mutating through: for Created/Updating it carries the open
// transaction, so whatever the reaction writes commits or rolls back with
// the triggering mutation. For Deleted it is a fresh, non-transactional
// unit of work (the row is already gone).
type Reaction func(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error

// ReactionError wraps a failing reaction so the publisher can tell which
// subscriber broke and decide whether to roll back.
type ReactionError struct {
	Kind  EntityKind
	Type  EventType
	Index int
	Err   error
}

func (e *ReactionError) Error() string {
	return fmt.Sprintf("reaction %d for %s/%s failed: %v", e.Index, e.Kind, e.Type, e.Err)
}

func (e *ReactionError) Unwrap() error {
	return e.Err
}

type busKey struct {
	kind EntityKind
	typ  EventType
}

// Bus dispatches lifecycle events synchronously, in registration order, on
// the publisher's goroutine. Reactions must not re-publish the (kind, type)
// they are handling; the subscription graph wired in bootstrap is acyclic
// and the bus does not check.
type Bus struct {
	mu        sync.RWMutex
	reactions map[busKey][]Reaction
}

func NewBus() *Bus {
	return &Bus{
		reactions: make(map[busKey][]Reaction),
	}
}

// Subscribe registers a reaction for a (kind, type) pair. Registration is
// expected to happen once, during bootstrap, before any Publish.
func (b *Bus) Subscribe(kind EntityKind, typ EventType, r Reaction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := busKey{kind: kind, typ: typ}
	b.reactions[k] = append(b.reactions[k], r)
}

// Publish invokes every reaction registered for the event, in order. The
// first failure aborts the remaining reactions and is returned wrapped in
// a ReactionError; the publisher decides what that means for its
// transaction.
func (b *Bus) Publish(ctx context.Context, uow unitofwork.UnitOfWork, ev Event) error {
	b.mu.RLock()
	reactions := b.reactions[busKey{kind: ev.Kind, typ: ev.Type}]
	b.mu.RUnlock()

	for i, r := range reactions {
		if err := r(ctx, uow, ev); err != nil {
			return &ReactionError{Kind: ev.Kind, Type: ev.Type, Index: i, Err: err}
		}
	}
	return nil
}
