package events

import (
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
)

var (
	JobCreatedTopic       = "JobCreatedEvent"
	JobUpdatedTopic       = "JobUpdatedEvent"
	JobDeletedTopic       = "JobDeletedEvent"
	ContactSubmittedTopic = "ContactSubmittedEvent"
)

type JobCreated struct {
	Job     models.Job
	AdminID string
}

type JobUpdated struct {
	Job     models.Job
	AdminID string
}

type JobDeleted struct {
	JobID   string
	AdminID string
}

type ContactSubmitted struct {
	Name    string
	Email   string
	Subject string
}
