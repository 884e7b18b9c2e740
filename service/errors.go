package service

import (
	"errors"
	"fmt"

	"skillswap-service/store"
)

// Kind classifies a failure surfaced by the core. Kinds are stable; the
// detail text is safe to show to end users.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindSelfReference     Kind = "self_reference"
	KindInvalidReference  Kind = "invalid_reference"
	KindUnauthorized      Kind = "unauthorized"
	KindInvalidStatus     Kind = "invalid_status"
	KindInvalidTransition Kind = "invalid_transition"
	KindAlreadyTerminal   Kind = "already_terminal"
)

type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return e.Detail
}

// Is matches any *Error of the same kind, so callers can test against the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrSelfReference     = &Error{Kind: KindSelfReference}
	ErrInvalidReference  = &Error{Kind: KindInvalidReference}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrInvalidStatus     = &Error{Kind: KindInvalidStatus}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrAlreadyTerminal   = &Error{Kind: KindAlreadyTerminal}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a core failure, or "" for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// lookupError turns a store miss into a NotFound failure with detail and
// wraps every other error.
func lookupError(err error, detail string) error {
	if errors.Is(err, store.ErrNotFound) {
		return &Error{Kind: KindNotFound, Detail: detail}
	}
	return fmt.Errorf("%s: %w", detail, err)
}
