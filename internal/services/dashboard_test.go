package services

import (
	"context"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/dashboard"
	"github.com/maxaizer/namaste-jobs/internal/domain/events"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

var validDraft = dashboard.JobDraft{
	Title:         "Golang Developer",
	Company:       "Infosys",
	Location:      "Pune",
	Category:      "IT",
	Salary:        "12 LPA",
	Description:   "Build services",
	Qualification: "B.Tech",
}

type dashboardFixture struct {
	service *Dashboard
	jobs    *mockJobsSource
	writer  *mockJobsWriter
	bus     EventBus.Bus
}

func newDashboardFixture() dashboardFixture {
	f := dashboardFixture{
		jobs:   &mockJobsSource{},
		writer: &mockJobsWriter{},
		bus:    EventBus.New(),
	}
	return f
}

func (f *dashboardFixture) open(t *testing.T, user *models.User, existing ...models.Job) string {
	store := newTestStore()
	f.service = NewDashboard(f.jobs, f.writer, store, f.bus)
	current := newSessionWithUser(store, user)

	if user.IsAdmin() {
		f.jobs.On("List", mock.Anything, mock.Anything, backend.JobsQuery{}).
			Return(backend.JobsPage{Jobs: existing, TotalPages: 1, TotalJobs: len(existing)}, nil).Once()
		_, err := f.service.Open(context.Background(), current.ID, "")
		assert.NoError(t, err)
	}
	return current.ID
}

func Test_Dashboard_Open_WhenNoUser_ShouldRequireLoginBeforeFetch(t *testing.T) {

	f := newDashboardFixture()
	sessionID := f.open(t, nil)

	_, err := f.service.Open(context.Background(), sessionID, "")

	assert.ErrorIs(t, err, ErrLoginRequired)
	f.jobs.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Dashboard_Open_WhenNotAdmin_ShouldRequireAdminBeforeFetch(t *testing.T) {

	f := newDashboardFixture()
	sessionID := f.open(t, regular)

	_, err := f.service.Open(context.Background(), sessionID, "")

	assert.ErrorIs(t, err, ErrAdminRequired)
	f.jobs.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Dashboard_Open_WhenUnknownSession_ShouldRequireLogin(t *testing.T) {

	f := newDashboardFixture()
	f.open(t, nil)

	_, err := f.service.Open(context.Background(), "missing", "")

	assert.ErrorIs(t, err, ErrLoginRequired)
}

func Test_Dashboard_Open_WithEditID_ShouldFillDraft(t *testing.T) {

	f := newDashboardFixture()
	store := newTestStore()
	f.service = NewDashboard(f.jobs, f.writer, store, f.bus)
	current := newSessionWithUser(store, admin)

	f.jobs.On("List", mock.Anything, mock.Anything, backend.JobsQuery{}).
		Return(backend.JobsPage{Jobs: []models.Job{{ID: "1", Title: "SRE", Location: "Remote"}}}, nil)

	board, err := f.service.Open(context.Background(), current.ID, "1")

	assert.NoError(t, err)
	assert.Equal(t, "1", board.EditingID)
	assert.Equal(t, "SRE", board.Draft.Title)
	assert.Equal(t, "Remote", board.Draft.Location)
}

func Test_Dashboard_Open_WhenFetchFails_ShouldShowError(t *testing.T) {

	f := newDashboardFixture()
	store := newTestStore()
	f.service = NewDashboard(f.jobs, f.writer, store, f.bus)
	current := newSessionWithUser(store, admin)

	f.jobs.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, backendError(staticResponse{err: errors.New("connection refused")}))

	board, err := f.service.Open(context.Background(), current.ID, "")

	assert.NoError(t, err)
	assert.True(t, board.Loaded)
	assert.Equal(t, backend.MessageUnavailable, board.LoadError)
	assert.Empty(t, board.Jobs)
}

func Test_Dashboard_Submit_Create_ShouldPrependAndResetDraft(t *testing.T) {

	assert := assert.New(t)
	f := newDashboardFixture()
	sessionID := f.open(t, admin, models.Job{ID: "a"}, models.Job{ID: "b"})

	created := 0
	_ = f.bus.Subscribe(events.JobCreatedTopic, func(e events.JobCreated) {
		created++
	})

	f.writer.On("CreateJob", mock.Anything, mock.Anything, payloadFrom(validDraft)).
		Return(models.Job{ID: "new", Title: validDraft.Title}, nil).Once()

	board, err := f.service.Submit(context.Background(), sessionID, "", validDraft)
	assert.NoError(err)

	assert.Equal([]string{"new", "a", "b"}, jobIDs(board.Jobs))
	assert.Equal(dashboard.JobDraft{}, board.Draft)
	assert.Equal(1, created)
	f.writer.AssertNumberOfCalls(t, "CreateJob", 1)
}

func Test_Dashboard_Submit_Update_ShouldReplaceInPlace(t *testing.T) {

	assert := assert.New(t)
	f := newDashboardFixture()
	sessionID := f.open(t, admin, models.Job{ID: "a"}, models.Job{ID: "b"}, models.Job{ID: "c"})

	f.writer.On("UpdateJob", mock.Anything, mock.Anything, "b", payloadFrom(validDraft)).
		Return(models.Job{ID: "b", Title: "Updated"}, nil).Once()

	board, err := f.service.Submit(context.Background(), sessionID, "b", validDraft)
	assert.NoError(err)

	assert.Equal([]string{"a", "b", "c"}, jobIDs(board.Jobs))
	assert.Equal("Updated", board.Jobs[1].Title)
	assert.False(board.IsEditing())
	assert.Equal(dashboard.JobDraft{}, board.Draft)
}

func Test_Dashboard_Submit_WhenBackendFails_ShouldKeepListAndDraft(t *testing.T) {

	assert := assert.New(t)
	f := newDashboardFixture()
	sessionID := f.open(t, admin, models.Job{ID: "a"})

	f.writer.On("CreateJob", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, backendError(staticResponse{status: 400, body: `{"message":"Salary is invalid"}`}))

	board, err := f.service.Submit(context.Background(), sessionID, "", validDraft)

	assert.Error(err)
	assert.Equal("Error: Salary is invalid", UserMessage(err, ""))
	assert.Equal("Error: Salary is invalid", board.Alert)
	assert.Equal([]string{"a"}, jobIDs(board.Jobs))
	assert.Equal(validDraft, board.Draft)
}

func Test_Dashboard_Submit_WhenInvalid_ShouldNotCallBackend(t *testing.T) {

	assert := assert.New(t)
	f := newDashboardFixture()
	sessionID := f.open(t, admin)

	draft := validDraft
	draft.Title = "  "
	draft.Location = "Gujarat"

	board, err := f.service.Submit(context.Background(), sessionID, "", draft)

	var formErrors FormErrors
	assert.True(errors.As(err, &formErrors))
	assert.Equal("Title is required", formErrors["title"])
	assert.True(formErrors.Has("location"))
	assert.Equal("Gujarat", board.Draft.Location)
	f.writer.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Dashboard_Delete_ShouldRemoveOnSuccessOnly(t *testing.T) {

	assert := assert.New(t)
	f := newDashboardFixture()
	sessionID := f.open(t, admin, models.Job{ID: "a"}, models.Job{ID: "b"})

	f.writer.On("DeleteJob", mock.Anything, mock.Anything, "a").
		Return(backendError(staticResponse{err: errors.New("connection reset")})).Once()
	f.writer.On("DeleteJob", mock.Anything, mock.Anything, "a").Return(nil).Once()

	board, err := f.service.Delete(context.Background(), sessionID, "a")
	assert.Error(err)
	assert.Equal([]string{"a", "b"}, jobIDs(board.Jobs))
	assert.Equal("Failed to delete job: "+backend.MessageUnavailable, board.Alert)

	board, err = f.service.Delete(context.Background(), sessionID, "a")
	assert.NoError(err)
	assert.Equal([]string{"b"}, jobIDs(board.Jobs))
}

func Test_Dashboard_Delete_WhenNotAdmin_ShouldNotCallBackend(t *testing.T) {

	f := newDashboardFixture()
	sessionID := f.open(t, regular)

	_, err := f.service.Delete(context.Background(), sessionID, "a")

	assert.ErrorIs(t, err, ErrAdminRequired)
	f.writer.AssertNotCalled(t, "DeleteJob", mock.Anything, mock.Anything, mock.Anything)
}

func Test_Dashboard_Cancel_ShouldDiscardDraft(t *testing.T) {

	f := newDashboardFixture()
	sessionID := f.open(t, admin, models.Job{ID: "a", Title: "SRE"})
	f.writer.On("UpdateJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, backendError(staticResponse{status: 500}))

	board, _ := f.service.Submit(context.Background(), sessionID, "a", validDraft)
	assert.True(t, board.IsEditing())

	board, err := f.service.Cancel(sessionID)

	assert.NoError(t, err)
	assert.False(t, board.IsEditing())
	assert.Equal(t, dashboard.JobDraft{}, board.Draft)
}

func jobIDs(jobs []models.Job) []string {
	ids := make([]string, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	return ids
}
