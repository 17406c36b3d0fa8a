package services

import (
	"context"
	"errors"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	"github.com/maxaizer/namaste-jobs/internal/session"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strings"
)

const (
	MessageRegistrationFailed = "Registration failed. Please try again."
	MessageProfileUpdateFail  = "Failed to update profile"
	MessageLogoutFailed       = "Logout failed. Please try again."
)

type RegistrationForm struct {
	Name     string `form:"name" validate:"required" label:"Name"`
	Email    string `form:"email" validate:"required,email" label:"Email"`
	Phone    string `form:"phone" validate:"required" label:"Phone"`
	Password string `form:"password" validate:"required,min=6" label:"Password"`
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email" label:"Email"`
	Password string `form:"password" validate:"required" label:"Password"`
}

type ProfileForm struct {
	Name  string `form:"name" validate:"required" label:"Name"`
	Email string `form:"email" validate:"required,email" label:"Email"`
	Phone string `form:"phone" label:"Phone"`
}

func ProfileFormFrom(user *models.User) ProfileForm {
	if user == nil {
		return ProfileForm{}
	}
	return ProfileForm{Name: user.Name, Email: user.Email, Phone: user.Phone}
}

type accountsClient interface {
	Register(ctx context.Context, creds backend.Credentials, request backend.RegisterRequest) (backend.AuthResult, error)
	Login(ctx context.Context, creds backend.Credentials, request backend.LoginRequest) (backend.AuthResult, error)
	Logout(ctx context.Context, creds backend.Credentials) (backend.Credentials, error)
	UpdateProfile(ctx context.Context, creds backend.Credentials, request backend.UpdateProfileRequest) (models.User, error)
}

type accountSessions interface {
	Get(id string) (session.Session, error)
	SetUser(id string, user models.User, cookies []*http.Cookie) (session.Session, error)
	ReplaceUser(id string, user models.User) (session.Session, error)
	ClearUser(id string) (session.Session, error)
}

type Accounts struct {
	client   accountsClient
	sessions accountSessions
}

func NewAccounts(client accountsClient, sessions accountSessions) *Accounts {
	return &Accounts{client: client, sessions: sessions}
}

// Register always asks for the standard user role.
func (a *Accounts) Register(ctx context.Context, sessionID string, form RegistrationForm) (session.Session, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)

	if err := validateForm(form); err != nil {
		return session.Session{}, err
	}

	current, err := a.sessions.Get(sessionID)
	if err != nil {
		return session.Session{}, err
	}

	result, err := a.client.Register(ctx, current.Credentials(), backend.RegisterRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		Role:     models.RoleUser,
	})
	if err != nil {
		logBackendFailure("register", err)
		return session.Session{}, &UserError{Message: serverErrorOr(err, MessageRegistrationFailed), Err: err}
	}

	return a.sessions.SetUser(sessionID, result.User, result.Cookies)
}

func (a *Accounts) Login(ctx context.Context, sessionID string, form LoginForm) (session.Session, error) {
	form.Email = strings.TrimSpace(form.Email)

	if err := validateForm(form); err != nil {
		return session.Session{}, err
	}

	current, err := a.sessions.Get(sessionID)
	if err != nil {
		return session.Session{}, err
	}

	result, err := a.client.Login(ctx, current.Credentials(), backend.LoginRequest{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		logBackendFailure("login", err)
		return session.Session{}, &UserError{Message: serverErrorOr(err, backend.MessageOf(err)), Err: err}
	}

	return a.sessions.SetUser(sessionID, result.User, result.Cookies)
}

// Logout clears the session user only after the backend confirmed it.
func (a *Accounts) Logout(ctx context.Context, sessionID string) error {
	current, err := a.sessions.Get(sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !current.IsAuthenticated() {
		return nil
	}

	if _, err = a.client.Logout(ctx, current.Credentials()); err != nil {
		logBackendFailure("logout", err)
		return &UserError{Message: MessageLogoutFailed, Err: err}
	}

	_, err = a.sessions.ClearUser(sessionID)
	return err
}

func (a *Accounts) UpdateProfile(ctx context.Context, sessionID string, form ProfileForm) (session.Session, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)

	current, err := a.sessions.Get(sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return session.Session{}, ErrLoginRequired
	}
	if err != nil {
		return session.Session{}, err
	}
	if !current.IsAuthenticated() {
		return session.Session{}, ErrLoginRequired
	}

	if err = validateForm(form); err != nil {
		return session.Session{}, err
	}

	user, err := a.client.UpdateProfile(ctx, current.Credentials(), backend.UpdateProfileRequest{
		Name:  form.Name,
		Email: form.Email,
		Phone: form.Phone,
	})
	if err != nil {
		logBackendFailure("update profile", err)
		return session.Session{}, &UserError{Message: serverErrorOr(err, MessageProfileUpdateFail), Err: err}
	}

	return a.sessions.ReplaceUser(sessionID, user)
}

func logBackendFailure(operation string, err error) {
	entry := log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi)
	var backendErr *backend.Error
	if errors.As(err, &backendErr) && backendErr.Kind == backend.KindServer {
		// rejected input, not an outage
		entry.Warnf("%s rejected by backend: %v", operation, err)
		return
	}
	entry.Errorf("%s failed: %v", operation, err)
}
