package services

import (
	"context"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/dashboard"
	"github.com/maxaizer/namaste-jobs/internal/domain/events"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	"github.com/maxaizer/namaste-jobs/internal/session"
	log "github.com/sirupsen/logrus"
	"strings"
)

type jobsWriter interface {
	CreateJob(ctx context.Context, creds backend.Credentials, job backend.JobPayload) (models.Job, error)
	UpdateJob(ctx context.Context, creds backend.Credentials, id string, job backend.JobPayload) (models.Job, error)
	DeleteJob(ctx context.Context, creds backend.Credentials, id string) error
}

type sessionStore interface {
	Get(id string) (session.Session, error)
	Update(id string, fn func(*session.Session)) (session.Session, error)
}

// Dashboard is the admin job board. Every operation checks the session
// user before touching the backend.
type Dashboard struct {
	jobs     jobsSource
	writer   jobsWriter
	sessions sessionStore
	bus      EventBus.Bus
}

func NewDashboard(jobs jobsSource, writer jobsWriter, sessions sessionStore, bus EventBus.Bus) *Dashboard {
	return &Dashboard{jobs: jobs, writer: writer, sessions: sessions, bus: bus}
}

func (d *Dashboard) Guard(s session.Session) error {
	if !s.IsAuthenticated() {
		return ErrLoginRequired
	}
	if !s.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// Open mounts the board: the job list is fetched once and stored in the
// session. A non-empty editID puts the matching job into the draft.
// A cancelled ctx leaves the session untouched.
func (d *Dashboard) Open(ctx context.Context, sessionID string, editID string) (dashboard.Board, error) {
	current, err := d.authorize(sessionID)
	if err != nil {
		return dashboard.Board{}, err
	}

	board := dashboard.Board{}
	page, err := d.jobs.List(ctx, current.Credentials(), backend.JobsQuery{})
	switch {
	case backend.IsCanceled(err):
		return dashboard.Board{}, err
	case err != nil:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("failed to load dashboard jobs: %v", err)
		board.FailLoad(backend.MessageOf(err))
	default:
		board.Load(page.Jobs)
	}

	if editID != "" {
		if job, found := board.Find(editID); found {
			board.StartEdit(job)
		}
	}

	updated, err := d.sessions.Update(sessionID, func(s *session.Session) {
		s.Dashboard = board
	})
	if err != nil {
		return dashboard.Board{}, err
	}
	return updated.Dashboard, nil
}

// Submit creates a job when editingID is empty and updates it otherwise.
// On any failure the list is unchanged and the draft is kept.
func (d *Dashboard) Submit(ctx context.Context, sessionID string, editingID string, draft dashboard.JobDraft) (dashboard.Board, error) {
	current, err := d.authorize(sessionID)
	if err != nil {
		return dashboard.Board{}, err
	}

	draft = trimDraft(draft)
	if err = validateForm(draft); err != nil {
		board, updateErr := d.keepDraft(sessionID, editingID, draft, "")
		return board, errors.Join(err, updateErr)
	}

	var job models.Job
	if editingID != "" {
		job, err = d.writer.UpdateJob(ctx, current.Credentials(), editingID, payloadFrom(draft))
	} else {
		job, err = d.writer.CreateJob(ctx, current.Credentials(), payloadFrom(draft))
	}

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("failed to save job (editing %q): %v", editingID, err)
		board, updateErr := d.keepDraft(sessionID, editingID, draft, "Error: "+backend.MessageOf(err))
		return board, errors.Join(&UserError{Message: board.Alert, Err: err}, updateErr)
	}

	adminID := current.User.ID
	updated, err := d.sessions.Update(sessionID, func(s *session.Session) {
		if editingID != "" {
			s.Dashboard.Replace(job)
		} else {
			s.Dashboard.Prepend(job)
		}
	})

	if editingID != "" {
		d.bus.Publish(events.JobUpdatedTopic, events.JobUpdated{Job: job, AdminID: adminID})
	} else {
		d.bus.Publish(events.JobCreatedTopic, events.JobCreated{Job: job, AdminID: adminID})
	}

	if err != nil {
		return dashboard.Board{}, err
	}
	return updated.Dashboard, nil
}

func (d *Dashboard) Delete(ctx context.Context, sessionID string, jobID string) (dashboard.Board, error) {
	current, err := d.authorize(sessionID)
	if err != nil {
		return dashboard.Board{}, err
	}

	if err = d.writer.DeleteJob(ctx, current.Credentials(), jobID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("failed to delete job %s: %v", jobID, err)
		alert := "Failed to delete job: " + backend.MessageOf(err)
		updated, updateErr := d.sessions.Update(sessionID, func(s *session.Session) {
			s.Dashboard.Alert = alert
		})
		return updated.Dashboard, errors.Join(&UserError{Message: alert, Err: err}, updateErr)
	}

	updated, err := d.sessions.Update(sessionID, func(s *session.Session) {
		s.Dashboard.Remove(jobID)
	})
	d.bus.Publish(events.JobDeletedTopic, events.JobDeleted{JobID: jobID, AdminID: current.User.ID})

	if err != nil {
		return dashboard.Board{}, err
	}
	return updated.Dashboard, nil
}

// Cancel leaves edit mode and discards the draft.
func (d *Dashboard) Cancel(sessionID string) (dashboard.Board, error) {
	if _, err := d.authorize(sessionID); err != nil {
		return dashboard.Board{}, err
	}

	updated, err := d.sessions.Update(sessionID, func(s *session.Session) {
		s.Dashboard.CancelEdit()
	})
	if err != nil {
		return dashboard.Board{}, err
	}
	return updated.Dashboard, nil
}

func (d *Dashboard) authorize(sessionID string) (session.Session, error) {
	current, err := d.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return session.Session{}, ErrLoginRequired
		}
		return session.Session{}, err
	}
	return current, d.Guard(current)
}

func (d *Dashboard) keepDraft(sessionID, editingID string, draft dashboard.JobDraft, alert string) (dashboard.Board, error) {
	updated, err := d.sessions.Update(sessionID, func(s *session.Session) {
		s.Dashboard.Draft = draft
		s.Dashboard.EditingID = editingID
		s.Dashboard.Alert = alert
	})
	return updated.Dashboard, err
}

func trimDraft(draft dashboard.JobDraft) dashboard.JobDraft {
	return dashboard.JobDraft{
		Title:         strings.TrimSpace(draft.Title),
		Company:       strings.TrimSpace(draft.Company),
		Location:      strings.TrimSpace(draft.Location),
		Category:      strings.TrimSpace(draft.Category),
		Salary:        strings.TrimSpace(draft.Salary),
		Description:   strings.TrimSpace(draft.Description),
		Qualification: strings.TrimSpace(draft.Qualification),
	}
}

func payloadFrom(draft dashboard.JobDraft) backend.JobPayload {
	return backend.JobPayload{
		Title:         draft.Title,
		Company:       draft.Company,
		Location:      draft.Location,
		Category:      draft.Category,
		Salary:        draft.Salary,
		Description:   draft.Description,
		Qualification: draft.Qualification,
	}
}
