package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// DomainError standardizes application errors crossing the HTTP boundary.
// Err keeps the underlying cause for server-side logging; only Code and
// Message are ever serialized to the client.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewEmailInUse() error {
	return NewDomainError("EMAIL_IN_USE", "email already registered", http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, collapsing the auth
// domain sentinels onto their boundary statuses. Credential failures,
// provider rejections and missing sessions all read the same to the client.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return NewEmailInUse().(*DomainError)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return NewUnauthorized("invalid email or password").(*DomainError)
	case errors.Is(err, domain.ErrInvalidProviderToken):
		return NewUnauthorized("invalid provider token").(*DomainError)
	case errors.Is(err, domain.ErrSessionNotFound):
		return NewUnauthorized("not authenticated").(*DomainError)
	case errors.Is(err, domain.ErrAccountNotFound):
		return NewUnauthorized("not authenticated").(*DomainError)
	}

	return NewInternalError(err).(*DomainError)
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
