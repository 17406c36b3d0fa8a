package services

import (
	"context"
	"errors"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"net/http"
	"testing"
)

func Test_Accounts_Register_ShouldAlwaysRequestUserRole(t *testing.T) {

	assert := assert.New(t)
	store := newTestStore()
	current := store.Create()

	client := &mockAccountsClient{}
	client.On("Register", mock.Anything, mock.Anything, mock.MatchedBy(func(r backend.RegisterRequest) bool {
		return r.Role == models.RoleUser && r.Email == "asha@example.com"
	})).Return(backend.AuthResult{
		User:    models.User{ID: "u1", Name: "Asha", Role: models.RoleUser},
		Cookies: backend.Credentials{{Name: "token", Value: "jwt"}},
	}, nil)

	updated, err := NewAccounts(client, store).Register(context.Background(), current.ID, RegistrationForm{
		Name:     "Asha",
		Email:    " asha@example.com ",
		Phone:    "9876543210",
		Password: "secret1",
	})

	assert.NoError(err)
	assert.Equal("Asha", updated.User.Name)
	assert.Equal("jwt", updated.Credentials()[0].Value)
}

func Test_Accounts_Register_WhenPasswordShort_ShouldNotCallBackend(t *testing.T) {

	store := newTestStore()
	client := &mockAccountsClient{}

	_, err := NewAccounts(client, store).Register(context.Background(), store.Create().ID, RegistrationForm{
		Name: "Asha", Email: "asha@example.com", Phone: "1", Password: "12345",
	})

	var formErrors FormErrors
	assert.True(t, errors.As(err, &formErrors))
	assert.Equal(t, "Password must be at least 6 characters", formErrors["password"])
	client.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Accounts_Register_WhenRejected_ShouldShowServerErrorOrFallback(t *testing.T) {

	store := newTestStore()
	client := &mockAccountsClient{}
	client.On("Register", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, backendError(staticResponse{status: 400, body: `{"error":"User already exists"}`})).Once()
	client.On("Register", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, backendError(staticResponse{err: errors.New("refused")})).Once()

	accounts := NewAccounts(client, store)
	form := RegistrationForm{Name: "A", Email: "a@b.co", Phone: "1", Password: "secret1"}

	_, err := accounts.Register(context.Background(), store.Create().ID, form)
	assert.Equal(t, "User already exists", UserMessage(err, ""))

	_, err = accounts.Register(context.Background(), store.Create().ID, form)
	assert.Equal(t, MessageRegistrationFailed, UserMessage(err, ""))
}

func Test_Accounts_Logout_WhenBackendFails_ShouldKeepUser(t *testing.T) {

	store := newTestStore()
	current := newSessionWithUser(store, regular)

	client := &mockAccountsClient{}
	client.On("Logout", mock.Anything, mock.Anything).
		Return(nil, backendError(staticResponse{status: 500})).Once()
	client.On("Logout", mock.Anything, mock.Anything).Return(nil, nil).Once()

	accounts := NewAccounts(client, store)

	err := accounts.Logout(context.Background(), current.ID)
	assert.Equal(t, MessageLogoutFailed, UserMessage(err, ""))
	stillSignedIn, _ := store.Get(current.ID)
	assert.True(t, stillSignedIn.IsAuthenticated())

	assert.NoError(t, accounts.Logout(context.Background(), current.ID))
	signedOut, _ := store.Get(current.ID)
	assert.False(t, signedOut.IsAuthenticated())
}

func Test_Accounts_Login_ShouldStoreUserAndCookies(t *testing.T) {

	store := newTestStore()
	current := store.Create()

	client := &mockAccountsClient{}
	client.On("Login", mock.Anything, mock.Anything, backend.LoginRequest{Email: "admin@example.com", Password: "pw"}).
		Return(backend.AuthResult{User: *admin, Cookies: []*http.Cookie{{Name: "token", Value: "t"}}}, nil)

	updated, err := NewAccounts(client, store).Login(context.Background(), current.ID, LoginForm{Email: "admin@example.com", Password: "pw"})

	assert.NoError(t, err)
	assert.True(t, updated.IsAdmin())
}

func Test_Accounts_UpdateProfile_ShouldReplaceSessionUser(t *testing.T) {

	assert := assert.New(t)
	store := newTestStore()
	current := newSessionWithUser(store, regular)

	client := &mockAccountsClient{}
	client.On("UpdateProfile", mock.Anything, mock.Anything, backend.UpdateProfileRequest{Name: "Asha K", Email: "asha@example.com"}).
		Return(models.User{ID: "user-1", Name: "Asha K", Email: "asha@example.com", Role: models.RoleUser}, nil)

	updated, err := NewAccounts(client, store).UpdateProfile(context.Background(), current.ID, ProfileForm{Name: "Asha K", Email: "asha@example.com"})

	assert.NoError(err)
	assert.Equal("Asha K", updated.User.Name)
	assert.Equal("secret", updated.Credentials()[0].Value)
}

func Test_Accounts_UpdateProfile_ShouldKeepDashboardDraft(t *testing.T) {

	store := newTestStore()
	current := newSessionWithUser(store, admin)
	_, _ = store.Update(current.ID, func(s *session.Session) {
		s.Dashboard.Draft.Title = "Half written job"
	})

	client := &mockAccountsClient{}
	client.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(models.User{ID: "admin-1", Name: "Admin K", Role: models.RoleAdmin}, nil)

	updated, err := NewAccounts(client, store).UpdateProfile(context.Background(), current.ID, ProfileForm{Name: "Admin K", Email: "admin@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, "Half written job", updated.Dashboard.Draft.Title)
}

func Test_Accounts_UpdateProfile_WhenFailed_ShouldUseFallbackMessage(t *testing.T) {

	store := newTestStore()
	current := newSessionWithUser(store, regular)

	client := &mockAccountsClient{}
	client.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, backendError(staticResponse{status: 500, body: `{"message":"boom"}`}))

	_, err := NewAccounts(client, store).UpdateProfile(context.Background(), current.ID, ProfileForm{Name: "A", Email: "a@b.co"})

	assert.Equal(t, MessageProfileUpdateFail, UserMessage(err, ""))
}

func Test_Accounts_UpdateProfile_WhenSignedOut_ShouldRequireLogin(t *testing.T) {

	store := newTestStore()
	client := &mockAccountsClient{}

	_, err := NewAccounts(client, store).UpdateProfile(context.Background(), store.Create().ID, ProfileForm{Name: "A", Email: "a@b.co"})

	assert.ErrorIs(t, err, ErrLoginRequired)
}

func Test_Accounts_WhenNoStoredSession_ShouldTreatAsSignedOut(t *testing.T) {

	store := newTestStore()
	client := &mockAccountsClient{}
	accounts := NewAccounts(client, store)

	_, err := accounts.UpdateProfile(context.Background(), "", ProfileForm{Name: "A", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrLoginRequired)

	assert.NoError(t, accounts.Logout(context.Background(), ""))
	client.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}
