package backend

import (
	"context"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"net/http"
)

type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AuthResult is the user returned by register or login together with
// the cookies the backend set for it.
type AuthResult struct {
	User    models.User
	Cookies Credentials
}

type userEnvelope struct {
	Success *bool        `json:"success"`
	Message string       `json:"message"`
	Error   string       `json:"error"`
	User    *models.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, creds Credentials, request RegisterRequest) (AuthResult, error) {
	return c.authenticate(ctx, "register", "/auth/register", creds, request)
}

func (c *Client) Login(ctx context.Context, creds Credentials, request LoginRequest) (AuthResult, error) {
	return c.authenticate(ctx, "login", "/auth/login", creds, request)
}

func (c *Client) authenticate(ctx context.Context, operation, path string, creds Credentials, payload any) (AuthResult, error) {

	resp, err := c.sendRequest(ctx, operation, http.MethodPost, path, nil, creds, payload)
	if err != nil {
		return AuthResult{}, err
	}

	envelope, err := decode[userEnvelope](operation, resp.body)
	if err != nil {
		return AuthResult{}, err
	}
	if envelope.User == nil {
		return AuthResult{}, translateStatusError(http.StatusOK, errorPayload{Message: envelope.Message, Error: envelope.Error})
	}

	return AuthResult{User: *envelope.User, Cookies: resp.cookies}, nil
}

// Me returns the user the credentials belong to. The backend answers
// with either a bare user or a {user} envelope.
func (c *Client) Me(ctx context.Context, creds Credentials) (models.User, error) {

	resp, err := c.sendRequest(ctx, "me", http.MethodGet, "/auth/me", nil, creds, nil)
	if err != nil {
		return models.User{}, err
	}

	envelope, err := decode[userEnvelope]("me", resp.body)
	if err != nil {
		return models.User{}, err
	}
	if envelope.User != nil {
		return *envelope.User, nil
	}

	return decode[models.User]("me", resp.body)
}

func (c *Client) Logout(ctx context.Context, creds Credentials) (Credentials, error) {

	resp, err := c.sendRequest(ctx, "logout", http.MethodPost, "/auth/logout", nil, creds, nil)
	if err != nil {
		return nil, err
	}
	return resp.cookies, nil
}

// UpdateProfile fails unless the backend reports success and returns the user.
func (c *Client) UpdateProfile(ctx context.Context, creds Credentials, request UpdateProfileRequest) (models.User, error) {

	resp, err := c.sendRequest(ctx, "update_profile", http.MethodPut, "/users/update", nil, creds, request)
	if err != nil {
		return models.User{}, err
	}

	envelope, err := decode[userEnvelope]("update_profile", resp.body)
	if err != nil {
		return models.User{}, err
	}
	if envelope.Success == nil || !*envelope.Success || envelope.User == nil {
		return models.User{}, translateStatusError(http.StatusOK, errorPayload{Message: envelope.Message, Error: envelope.Error})
	}

	return *envelope.User, nil
}
