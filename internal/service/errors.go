package service

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrNotParticipant     = errors.New("user is not a participant of the conversation")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrParentMismatch     = errors.New("parent message belongs to a different conversation")
	ErrTooFewParticipants = errors.New("a conversation needs at least two distinct participants")
	ErrForbidden          = errors.New("operation not allowed for this user")
)
