package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure. Every kind maps to exactly one
// outward signal at the HTTP layer.
type ErrorKind string

// Error kinds surfaced by the services.
const (
	KindBadRequest             ErrorKind = "BAD_REQUEST"
	KindInvalidDate            ErrorKind = "INVALID_DATE"
	KindInvalidWindow          ErrorKind = "INVALID_WINDOW"
	KindNotFound               ErrorKind = "NOT_FOUND"
	KindUnauthorized           ErrorKind = "UNAUTHORIZED"
	KindForbidden              ErrorKind = "FORBIDDEN"
	KindConflict               ErrorKind = "CONFLICT"
	KindRelationTargetNotFound ErrorKind = "RELATION_TARGET_NOT_FOUND"
	KindInternal               ErrorKind = "INTERNAL_ERROR"
)

// DomainError is a failure the caller is expected to handle by kind.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports kind equality so errors.Is works against the sentinel values below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// NewDomainError creates a new domain error.
func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
	}
}

// Errorf creates a domain error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *DomainError {
	return NewDomainError(kind, fmt.Sprintf(format, args...))
}

// KindOf returns the kind carried by err, or KindInternal when err is not a
// domain error.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// Kind-only sentinels for errors.Is comparisons.
var (
	ErrBadRequest             = &DomainError{Kind: KindBadRequest}
	ErrInvalidDate            = &DomainError{Kind: KindInvalidDate}
	ErrInvalidWindow          = &DomainError{Kind: KindInvalidWindow}
	ErrNotFound               = &DomainError{Kind: KindNotFound}
	ErrUnauthorized           = &DomainError{Kind: KindUnauthorized}
	ErrForbidden              = &DomainError{Kind: KindForbidden}
	ErrConflict               = &DomainError{Kind: KindConflict}
	ErrRelationTargetNotFound = &DomainError{Kind: KindRelationTargetNotFound}
	ErrInternal               = &DomainError{Kind: KindInternal}
)
