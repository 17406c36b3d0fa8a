package services

import (
	"errors"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrAdminRequired = errors.New("admin role required")
)

// UserError carries a message that is shown to the user as is.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message to show for err, or fallback.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}
	return fallback
}

func serverErrorOr(err error, fallback string) string {
	var backendErr *backend.Error
	if errors.As(err, &backendErr) && backendErr.ServerError() != "" {
		return backendErr.ServerError()
	}
	return fallback
}

func serverMessageOr(err error, fallback string) string {
	var backendErr *backend.Error
	if errors.As(err, &backendErr) && backendErr.ServerMessage() != "" {
		return backendErr.ServerMessage()
	}
	return fallback
}
