package service

import (
	"errors"
	"fmt"

	"doc-assistant-be/internal/pkg/serverutils"
)

var (
	ErrUnauthenticated      = errors.New("Authentication required.")
	ErrInvalidCredentials   = errors.New("Invalid email or password.")
	ErrInvalidToken         = errors.New("Error decoding signature.")
	ErrRefreshExpired       = errors.New("Refresh has expired.")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrConflict             = errors.New("already exists")
)

// NotFoundError carries a user-facing message; errors.Is matches Kind.
type NotFoundError struct {
	Kind    error
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Unwrap() error { return e.Kind }

func documentNotFound(id uint) error {
	return &NotFoundError{Kind: ErrDocumentNotFound, Message: fmt.Sprintf("Document %d not found.", id)}
}

func organizationNotFound(id uint) error {
	return &NotFoundError{Kind: ErrOrganizationNotFound, Message: fmt.Sprintf("Organization %d not found.", id)}
}

func userNotFound(email string) error {
	return &NotFoundError{Kind: ErrUserNotFound, Message: fmt.Sprintf("User with email %s does not exist.", email)}
}

// ValidationError rejects input before any write or provider call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a unique constraint clash; errors.Is matches ErrConflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return ErrConflict }

func validate(req interface{}) error {
	if err := serverutils.ValidateRequest(req); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}
