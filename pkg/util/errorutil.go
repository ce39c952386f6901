package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is checks across layers.
var (
	// ErrNotFound marks a mutation aimed at a student id that is not in
	// the roster, or a read of an absent durable key.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks a durable-store read or write failure. Always
	// recoverable: callers report it, they never crash on it.
	ErrPersistence = errors.New("persistence failure")
	// ErrLookup marks an address-lookup failure (network, bad format or
	// unknown postal code). Surfaced as a single category, never retried.
	ErrLookup = errors.New("address lookup failed")
	// ErrValidation marks input rejected before any write was attempted.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks a failed credential check.
	ErrUnauthorized = errors.New("unauthorized")
)

// DomainError standardizes application errors.
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
	return &DomainError{
		Code:       "VALIDATION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
		Err:        ErrValidation,
	}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
		Err:        ErrNotFound,
	}
}

func NewUnauthorized(message string) error {
	return &DomainError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Err:        ErrUnauthorized,
	}
}

func NewPersistenceError(err error) error {
	return &DomainError{
		Code:       "PERSISTENCE_FAILED",
		Message:    "durable store operation failed",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        errors.Join(ErrPersistence, err),
	}
}

func NewLookupError(message string, err error) error {
	return &DomainError{
		Code:       "LOOKUP_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        errors.Join(ErrLookup, err),
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, mapping the
// sentinel taxonomy onto codes and HTTP statuses.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return &DomainError{Code: "NOT_FOUND", Message: err.Error(), HTTPStatus: http.StatusNotFound, Err: err}
	case errors.Is(err, ErrValidation):
		return &DomainError{Code: "VALIDATION_FAILED", Message: err.Error(), HTTPStatus: http.StatusBadRequest, Err: err}
	case errors.Is(err, ErrUnauthorized):
		return &DomainError{Code: "UNAUTHORIZED", Message: err.Error(), HTTPStatus: http.StatusUnauthorized, Err: err}
	case errors.Is(err, ErrPersistence):
		return &DomainError{Code: "PERSISTENCE_FAILED", Message: "durable store operation failed", HTTPStatus: http.StatusServiceUnavailable, Err: err}
	case errors.Is(err, ErrLookup):
		return &DomainError{Code: "LOOKUP_FAILED", Message: err.Error(), HTTPStatus: http.StatusBadGateway, Err: err}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
