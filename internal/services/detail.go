package services

import (
	"context"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	log "github.com/sirupsen/logrus"
	"strings"
)

type DetailResult struct {
	State            ViewState
	Job              models.Job
	Requirements     []string
	Responsibilities []string
}

type Detail struct {
	jobs jobsSource
}

func NewDetail(jobs jobsSource) *Detail {
	return &Detail{jobs: jobs}
}

// Load fetches a single job. Any failure, or an empty record, is a not found page.
func (d *Detail) Load(ctx context.Context, creds backend.Credentials, id string) DetailResult {
	if strings.TrimSpace(id) == "" {
		return DetailResult{State: StateNotFound}
	}

	job, err := d.jobs.Get(ctx, creds, id)
	if err != nil {
		if !backend.IsNotFound(err) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
				Errorf("failed to load job %s: %v", id, err)
		}
		return DetailResult{State: StateNotFound}
	}
	if job.IsEmpty() {
		return DetailResult{State: StateNotFound}
	}

	return DetailResult{
		State:            StateLoaded,
		Job:              job,
		Requirements:     job.RequirementItems(),
		Responsibilities: job.ResponsibilityItems(),
	}
}
