package utils

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindInvalidToken
	KindPersistence
	KindExternalFetch
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindInvalidToken:
		return "InvalidTokenError"
	case KindPersistence:
		return "PersistenceError"
	case KindExternalFetch:
		return "ExternalFetchError"
	case KindNotFound:
		return "NotFoundError"
	default:
		return "InternalServerError"
	}
}

// AppError carries a kind so callers can switch on it instead of on concrete types.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any AppError of the same kind, so the sentinels below work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation    = &AppError{Kind: KindValidation, Message: "validation error"}
	ErrUnauthorized  = &AppError{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrInvalidToken  = &AppError{Kind: KindInvalidToken, Message: "invalid token"}
	ErrDatabaseError = &AppError{Kind: KindPersistence, Message: "database error"}
	ErrExternalFetch = &AppError{Kind: KindExternalFetch, Message: "external fetch failed"}
	ErrNotFound      = &AppError{Kind: KindNotFound, Message: "not found"}

	ErrInvalidPage     = Validation("page must be greater than 0")
	ErrInvalidPageSize = Validation("page size must be between 1 and 100")
)

const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgForbiddenResource  = "You're not authorized to access this resource"
)

func Validation(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) error {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func Unauthorized(msg string) error {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func InvalidToken(err error) error {
	return &AppError{Kind: KindInvalidToken, Message: "invalid token", Err: err}
}

// Persistence wraps a store failure. Already-classified errors pass through unchanged.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	var app *AppError
	if errors.As(err, &app) {
		return err
	}
	return &AppError{Kind: KindPersistence, Message: "database error", Err: err}
}

func PersistenceMsg(msg string, err error) error {
	return &AppError{Kind: KindPersistence, Message: msg, Err: err}
}

func ExternalFetch(err error) error {
	return &AppError{Kind: KindExternalFetch, Message: "external fetch failed", Err: err}
}

// KindOf reports the kind of err, KindInternal for anything unclassified.
func KindOf(err error) ErrorKind {
	var app *AppError
	if errors.As(err, &app) {
		return app.Kind
	}
	return KindInternal
}
