package shared

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that need machine-readable handling.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindNotComputable Kind = "not_computable"
	KindStorage       Kind = "storage"
)

// Sentinel errors matched with errors.Is regardless of message.
var (
	// ErrNotFound indicates a referenced id is missing.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a unique constraint or capacity violation.
	ErrConflict = errors.New("conflict")
	// ErrValidation indicates an invalid field value.
	ErrValidation = errors.New("validation failed")
	// ErrNotComputable indicates a layer lacks the inputs for its outputs.
	ErrNotComputable = errors.New("not computable")
	// ErrStorage indicates a backend failure.
	ErrStorage = errors.New("storage error")
)

// Error carries a kind alongside a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return sentinel(e.Kind)
}

// Is lets errors.Is match the kind sentinel through the chain.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindNotComputable:
		return ErrNotComputable
	case KindStorage:
		return ErrStorage
	}
	return nil
}

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a conflict error with a formatted message.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps a backend failure.
func Storage(msg string, err error) error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// KindOf extracts the kind from an error chain, or "" when untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotComputable):
		return KindNotComputable
	case errors.Is(err, ErrStorage):
		return KindStorage
	}
	return ""
}
