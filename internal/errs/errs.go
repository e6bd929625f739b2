// Package errs defines the error taxonomy shared by the intake pipeline,
// the reporting layer and the HTTP transport.
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError describes a single invalid or missing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError indicates malformed or missing input. It carries
// field-level detail where available.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error: invalid request"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AuthError indicates missing or invalid credentials or session token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// NotFoundError indicates a referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// ConflictError indicates a business-rule violation such as an inactive
// offer or a duplicate application.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StorageError indicates an object-storage upload or download failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ConnectionError indicates the database is unavailable.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database unavailable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// HTTPStatus returns the HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		auth       *AuthError
		notFound   *NotFoundError
		conflict   *ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &auth):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
