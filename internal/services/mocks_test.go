package services

import (
	"context"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/session"
	"github.com/stretchr/testify/mock"
	"io"
	"net/http"
	"strings"
	"time"
)

type mockJobsSource struct {
	mock.Mock
}

func (m *mockJobsSource) List(ctx context.Context, creds backend.Credentials, query backend.JobsQuery) (backend.JobsPage, error) {
	args := m.Called(ctx, creds, query)
	page, _ := args.Get(0).(backend.JobsPage)
	return page, args.Error(1)
}

func (m *mockJobsSource) Get(ctx context.Context, creds backend.Credentials, id string) (models.Job, error) {
	args := m.Called(ctx, creds, id)
	job, _ := args.Get(0).(models.Job)
	return job, args.Error(1)
}

type mockJobsWriter struct {
	mock.Mock
}

func (m *mockJobsWriter) CreateJob(ctx context.Context, creds backend.Credentials, job backend.JobPayload) (models.Job, error) {
	args := m.Called(ctx, creds, job)
	created, _ := args.Get(0).(models.Job)
	return created, args.Error(1)
}

func (m *mockJobsWriter) UpdateJob(ctx context.Context, creds backend.Credentials, id string, job backend.JobPayload) (models.Job, error) {
	args := m.Called(ctx, creds, id, job)
	updated, _ := args.Get(0).(models.Job)
	return updated, args.Error(1)
}

func (m *mockJobsWriter) DeleteJob(ctx context.Context, creds backend.Credentials, id string) error {
	args := m.Called(ctx, creds, id)
	return args.Error(0)
}

type mockContactClient struct {
	mock.Mock
}

func (m *mockContactClient) SendContact(ctx context.Context, creds backend.Credentials, request backend.ContactRequest) (backend.ContactResult, error) {
	args := m.Called(ctx, creds, request)
	result, _ := args.Get(0).(backend.ContactResult)
	return result, args.Error(1)
}

type mockAccountsClient struct {
	mock.Mock
}

func (m *mockAccountsClient) Register(ctx context.Context, creds backend.Credentials, request backend.RegisterRequest) (backend.AuthResult, error) {
	args := m.Called(ctx, creds, request)
	result, _ := args.Get(0).(backend.AuthResult)
	return result, args.Error(1)
}

func (m *mockAccountsClient) Login(ctx context.Context, creds backend.Credentials, request backend.LoginRequest) (backend.AuthResult, error) {
	args := m.Called(ctx, creds, request)
	result, _ := args.Get(0).(backend.AuthResult)
	return result, args.Error(1)
}

func (m *mockAccountsClient) Logout(ctx context.Context, creds backend.Credentials) (backend.Credentials, error) {
	args := m.Called(ctx, creds)
	cookies, _ := args.Get(0).(backend.Credentials)
	return cookies, args.Error(1)
}

func (m *mockAccountsClient) UpdateProfile(ctx context.Context, creds backend.Credentials, request backend.UpdateProfileRequest) (models.User, error) {
	args := m.Called(ctx, creds, request)
	user, _ := args.Get(0).(models.User)
	return user, args.Error(1)
}

// backendError builds the error the backend client returns for the given response.
func backendError(response staticResponse) error {
	client := backend.NewClient("http://backend.test/api")
	client.SetHTTPClient(response)
	return client.DeleteJob(context.Background(), nil, "x")
}

type staticResponse struct {
	status int
	body   string
	err    error
}

func (s staticResponse) Do(_ *http.Request) (*http.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func newSessionWithUser(store *session.Store, user *models.User) session.Session {
	created := store.Create()
	if user != nil {
		created, _ = store.SetUser(created.ID, *user, []*http.Cookie{{Name: "token", Value: "secret"}})
	}
	return created
}

var (
	admin   = &models.User{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin}
	regular = &models.User{ID: "user-1", Name: "Asha", Role: models.RoleUser}
)

func newTestStore() *session.Store {
	return session.NewStore(time.Hour)
}
