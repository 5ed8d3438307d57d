package service

import "errors"

var (
	// ErrSessionNotFound means the session id is unknown or its snapshot
	// has expired out of the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionBusy means another answer submission for the same session
	// is already in flight.
	ErrSessionBusy = errors.New("session has a submission in flight")

	// ErrInvalidTransition means the requested operation is not legal in
	// the session's current state.
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrNoActiveQuestion means an answer arrived for a session that has
	// no question outstanding.
	ErrNoActiveQuestion = errors.New("no active question")

	// ErrBankExhausted means no unasked question exists at any reachable
	// difficulty tier.
	ErrBankExhausted = errors.New("question bank exhausted")
)
