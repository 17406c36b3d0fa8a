package backend

import (
	"context"
	"fmt"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"net/http"
	"net/url"
)

type JobsPage struct {
	Jobs       []models.Job
	TotalPages int
	TotalJobs  int
}

type getJobsResponse struct {
	Jobs       []models.Job `json:"jobs"`
	TotalPages int          `json:"totalPages"`
	TotalJobs  int          `json:"totalJobs"`
}

type jobEnvelope struct {
	Job *models.Job `json:"job"`
}

// JobPayload is the body of job create and update requests.
type JobPayload struct {
	Title         string `json:"title"`
	Company       string `json:"company"`
	Location      string `json:"location"`
	Category      string `json:"category"`
	Salary        string `json:"salary"`
	Description   string `json:"description"`
	Qualification string `json:"qualification"`
}

// GetJobs accepts both the paged {jobs, totalPages, totalJobs} shape
// and a bare array of jobs.
func (c *Client) GetJobs(ctx context.Context, creds Credentials, query JobsQuery) (JobsPage, error) {

	if err := query.Validate(); err != nil {
		return JobsPage{}, fmt.Errorf("invalid parameters: %w", err)
	}

	resp, err := c.sendRequest(ctx, "get_jobs", http.MethodGet, "/jobs", query.ToUrlParams(), creds, nil)
	if err != nil {
		return JobsPage{}, err
	}

	if isJSONArray(resp.body) {
		jobs, err := decode[[]models.Job]("get_jobs", resp.body)
		if err != nil {
			return JobsPage{}, err
		}
		return JobsPage{Jobs: jobs, TotalPages: 1, TotalJobs: len(jobs)}, nil
	}

	page, err := decode[getJobsResponse]("get_jobs", resp.body)
	if err != nil {
		return JobsPage{}, err
	}

	result := JobsPage{Jobs: page.Jobs, TotalPages: page.TotalPages, TotalJobs: page.TotalJobs}
	if result.Jobs == nil {
		result.Jobs = []models.Job{}
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	return result, nil
}

func (c *Client) GetJob(ctx context.Context, creds Credentials, id string) (models.Job, error) {

	resp, err := c.sendRequest(ctx, "get_job", http.MethodGet, "/jobs/"+url.PathEscape(id), nil, creds, nil)
	if err != nil {
		return models.Job{}, err
	}

	return decodeJob("get_job", resp.body)
}

func (c *Client) CreateJob(ctx context.Context, creds Credentials, job JobPayload) (models.Job, error) {

	resp, err := c.sendRequest(ctx, "create_job", http.MethodPost, "/jobs", nil, creds, job)
	if err != nil {
		return models.Job{}, err
	}

	return decodeJob("create_job", resp.body)
}

func (c *Client) UpdateJob(ctx context.Context, creds Credentials, id string, job JobPayload) (models.Job, error) {

	resp, err := c.sendRequest(ctx, "update_job", http.MethodPut, "/jobs/"+url.PathEscape(id), nil, creds, job)
	if err != nil {
		return models.Job{}, err
	}

	updated, err := decodeJob("update_job", resp.body)
	if err != nil {
		return models.Job{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, nil
}

func (c *Client) DeleteJob(ctx context.Context, creds Credentials, id string) error {
	_, err := c.sendRequest(ctx, "delete_job", http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, creds, nil)
	return err
}

// decodeJob accepts a {job: {...}} envelope or a bare job object.
func decodeJob(operation string, body []byte) (models.Job, error) {
	envelope, err := decode[jobEnvelope](operation, body)
	if err != nil {
		return models.Job{}, err
	}
	if envelope.Job != nil {
		return *envelope.Job, nil
	}

	return decode[models.Job](operation, body)
}
