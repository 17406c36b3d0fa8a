package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

type Kind string

const (
	KindNetwork  Kind = "network"
	KindTimeout  Kind = "timeout"
	KindCanceled Kind = "canceled"
	KindServer   Kind = "server"
	KindNotFound Kind = "not_found"
)

const (
	MessageUnavailable = "Server is unavailable. Please try again later."
	MessageTimeout     = "Request timed out. Please try again."
	MessageUnexpected  = "An unexpected error occurred"
	MessageCanceled    = "Request was cancelled."
)

// errorPayload is the body the backend sends with non-2xx responses.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Error is the single shape every failed backend call is translated into.
// Message is always safe to show to the user.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	payload errorPayload
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ServerMessage is the payload's message field, empty when the server sent none.
func (e *Error) ServerMessage() string {
	return e.payload.Message
}

// ServerError is the payload's error field, empty when the server sent none.
func (e *Error) ServerError() string {
	return e.payload.Error
}

func translateTransportError(ctx context.Context, err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: KindTimeout, Message: MessageTimeout, cause: err}
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		return &Error{Kind: KindCanceled, Message: MessageCanceled, cause: err}
	default:
		return &Error{Kind: KindNetwork, Message: MessageUnavailable, cause: err}
	}
}

// ContextError describes why ctx ended in the same terms as a failed
// request: a timeout or a cancellation.
func ContextError(ctx context.Context) error {
	return translateTransportError(ctx, ctx.Err())
}

func translateStatusError(status int, payload errorPayload) *Error {
	kind := KindServer
	if status == http.StatusNotFound {
		kind = KindNotFound
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		message = strings.TrimSpace(payload.Error)
	}
	if message == "" {
		message = MessageUnexpected
	}

	return &Error{Kind: kind, Status: status, Message: message, payload: payload}
}

func KindOf(err error) Kind {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Kind
	}
	return ""
}

// MessageOf returns a user facing message for any error.
func MessageOf(err error) string {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return MessageUnexpected
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsCanceled(err error) bool {
	return KindOf(err) == KindCanceled
}
