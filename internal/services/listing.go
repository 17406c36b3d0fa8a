package services

import (
	"context"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const ListingTimeout = 8 * time.Second

type ViewState string

const (
	StateError    ViewState = "error"
	StateEmpty    ViewState = "empty"
	StateLoaded   ViewState = "loaded"
	StateNotFound ViewState = "not_found"
)

type jobsSource interface {
	List(ctx context.Context, creds backend.Credentials, query backend.JobsQuery) (backend.JobsPage, error)
	Get(ctx context.Context, creds backend.Credentials, id string) (models.Job, error)
}

// ListingQuery is the filter state of the jobs page, kept in the URL.
type ListingQuery struct {
	Category string
	Location string
	Search   string
	Page     int
}

func ParseListingQuery(values url.Values) ListingQuery {
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return ListingQuery{
		Category: strings.TrimSpace(values.Get("category")),
		Location: strings.TrimSpace(values.Get("location")),
		Search:   strings.TrimSpace(values.Get("search")),
		Page:     page,
	}
}

// URL links to the given page keeping the active filters.
func (q ListingQuery) URL(page int) string {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	if len(params) == 0 {
		return "/jobs"
	}
	return "/jobs?" + params.Encode()
}

func (q ListingQuery) Heading() string {
	switch {
	case q.Category != "" && q.Location != "":
		return q.Category + " Jobs in " + q.Location
	case q.Category != "":
		return q.Category + " Jobs"
	case q.Location != "":
		return "Jobs in " + q.Location
	default:
		return "All Job Listings"
	}
}

func (q ListingQuery) backendQuery() backend.JobsQuery {
	return backend.JobsQuery{
		Category: q.Category,
		Location: q.Location,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    JobsPerPage,
	}
}

type ListingResult struct {
	Query      ListingQuery
	State      ViewState
	Error      string
	Jobs       []models.Job
	TotalJobs  int
	Pagination Pagination
	RangeStart int
	RangeEnd   int
}

type Listing struct {
	jobs    jobsSource
	timeout time.Duration
}

func NewListing(jobs jobsSource) *Listing {
	return &Listing{jobs: jobs, timeout: ListingTimeout}
}

// Load fetches one page of jobs. Every call is an independent fetch
// bounded by the listing timeout.
func (l *Listing) Load(ctx context.Context, creds backend.Credentials, query ListingQuery) ListingResult {
	if query.Page < 1 {
		query.Page = 1
	}
	result := ListingResult{Query: query, Jobs: []models.Job{}}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	page, err := l.jobs.List(ctx, creds, query.backendQuery())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("failed to load jobs for %q: %v", query.URL(query.Page), err)
		result.State = StateError
		result.Error = backend.MessageOf(err)
		result.Pagination = NewPagination(query.Page, 1, query.URL)
		return result
	}

	result.Jobs = page.Jobs
	result.TotalJobs = page.TotalJobs
	result.Pagination = NewPagination(query.Page, page.TotalPages, query.URL)
	result.RangeStart = (query.Page-1)*JobsPerPage + 1
	result.RangeEnd = min(query.Page*JobsPerPage, page.TotalJobs)

	if len(page.Jobs) == 0 {
		result.State = StateEmpty
	} else {
		result.State = StateLoaded
	}
	return result
}
