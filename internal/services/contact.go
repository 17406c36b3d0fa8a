package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/events"
	"strings"
)

const MessageContactNetwork = "Network error. Please check your connection."

type ContactForm struct {
	Name    string `form:"name" validate:"required" label:"Name"`
	Email   string `form:"email" validate:"required,email" label:"Email"`
	Subject string `form:"subject" validate:"required" label:"Subject"`
	Message string `form:"message" validate:"required,min=20" label:"Message"`
}

type contactClient interface {
	SendContact(ctx context.Context, creds backend.Credentials, request backend.ContactRequest) (backend.ContactResult, error)
}

type Contact struct {
	client contactClient
	bus    EventBus.Bus
}

func NewContact(client contactClient, bus EventBus.Bus) *Contact {
	return &Contact{client: client, bus: bus}
}

// Submit validates the form locally and then sends it exactly once.
// It returns the server's confirmation message.
func (c *Contact) Submit(ctx context.Context, creds backend.Credentials, form ContactForm) (string, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)

	if err := validateForm(form); err != nil {
		return "", err
	}

	result, err := c.client.SendContact(ctx, creds, backend.ContactRequest{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		logBackendFailure("contact", err)
		return "", &UserError{Message: serverMessageOr(err, MessageContactNetwork), Err: err}
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = MessageContactNetwork
		}
		return "", &UserError{Message: message}
	}

	c.bus.Publish(events.ContactSubmittedTopic, events.ContactSubmitted{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
	})
	return result.Message, nil
}
