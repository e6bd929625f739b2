package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("title", "min"), http.StatusBadRequest},
		{"auth", &AuthError{}, http.StatusUnauthorized},
		{"not found", &NotFoundError{Entity: "job offer"}, http.StatusNotFound},
		{"conflict", &ConflictError{Message: "duplicate application"}, http.StatusConflict},
		{"storage", &StorageError{Op: "upload", Err: errors.New("boom")}, http.StatusInternalServerError},
		{"connection", &ConnectionError{Err: errors.New("refused")}, http.StatusInternalServerError},
		{"plain", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatusWrapped(t *testing.T) {
	err := fmt.Errorf("submit failed: %w", &NotFoundError{Entity: "job offer"})
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "contactEmail", Message: "required"},
		{Field: "sqMeters", Message: "gt"},
	}}
	assert.Equal(t, "validation error: contactEmail: required; sqMeters: gt", err.Error())

	empty := &ValidationError{}
	assert.Equal(t, "validation error: invalid request", empty.Error())
}

func TestNotFoundErrorMessage(t *testing.T) {
	assert.Equal(t, "application not found", (&NotFoundError{Entity: "application"}).Error())
}

func TestAuthErrorDefaultMessage(t *testing.T) {
	assert.Equal(t, "unauthorized", (&AuthError{}).Error())
	assert.Equal(t, "invalid token", (&AuthError{Message: "invalid token"}).Error())
}

func TestStorageErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := &StorageError{Op: "upload", Err: inner}
	assert.ErrorIs(t, err, inner)
}
