package services

import (
	"cmp"
	"context"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"net/url"
	"slices"
	"strconv"
	"time"
)

type QuickFilter struct {
	Name     string
	Category string
	Location string
}

func (f QuickFilter) URL() string {
	params := url.Values{}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Location != "" {
		params.Set("location", f.Location)
	}
	return "/jobs?" + params.Encode()
}

var QuickFilters = []QuickFilter{
	{Name: "Latest Jobs", Category: "latest-jobs"},
	{Name: "Job in Gujarat", Location: "gujarat"},
	{Name: "Job in Haryana", Location: "haryana"},
	{Name: "Job in NCR", Location: "ncr"},
	{Name: "Job in Noida", Location: "noida"},
	{Name: "Job in Delhi", Location: "delhi"},
	{Name: "10th Pass", Category: "10th-pass"},
	{Name: "12th Pass", Category: "12th-pass"},
	{Name: "Graduation Pass", Category: "graduation"},
	{Name: "B.Tech", Category: "btech"},
	{Name: "MBA Pass", Category: "mba"},
	{Name: "Diploma Pass", Category: "diploma"},
}

var FeaturedCategories = []string{
	"Information Technology",
	"Healthcare",
	"Education",
	"Banking & Finance",
	"Marketing",
	"Customer Service",
	"Manufacturing",
	"Sales",
}

// HomePages holds the page number of every home section.
type HomePages struct {
	Hot   int
	Tech  int
	Other int
}

func ParseHomePages(values url.Values) HomePages {
	page := func(name string) int {
		number, err := strconv.Atoi(values.Get(name))
		if err != nil || number < 1 {
			return 1
		}
		return number
	}
	return HomePages{Hot: page("page"), Tech: page("tech_page"), Other: page("other_page")}
}

func (p HomePages) url(param string, number int) string {
	params := url.Values{}
	set := func(name string, value int) {
		if value > 1 {
			params.Set(name, strconv.Itoa(value))
		}
	}
	set("page", p.Hot)
	set("tech_page", p.Tech)
	set("other_page", p.Other)
	params.Del(param)
	set(param, number)

	if len(params) == 0 {
		return "/"
	}
	return "/?" + params.Encode()
}

type HomeSection struct {
	Title      string
	Jobs       []models.Job
	Pagination Pagination
}

type HomeResult struct {
	Hot     HomeSection
	Tech    HomeSection
	Other   HomeSection
	Failed  bool
	Now     time.Time
	Filters []QuickFilter
}

type Home struct {
	jobs jobsSource
	now  func() time.Time
}

func NewHome(jobs jobsSource) *Home {
	return &Home{jobs: jobs, now: time.Now}
}

// Load fetches every job once, newest first, and splits it into the
// hot, tech and other sections. A failed fetch renders empty sections.
func (h *Home) Load(ctx context.Context, creds backend.Credentials, pages HomePages) HomeResult {
	result := HomeResult{Now: h.now(), Filters: QuickFilters}

	page, err := h.jobs.List(ctx, creds, backend.JobsQuery{})
	var jobs []models.Job
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("failed to load home page jobs: %v", err)
		result.Failed = true
	} else {
		jobs = slices.Clone(page.Jobs)
		slices.SortStableFunc(jobs, func(a, b models.Job) int {
			return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
		})
	}

	isTech := func(job models.Job, _ int) bool {
		return job.IsTech()
	}
	techJobs := lo.Filter(jobs, isTech)
	otherJobs := lo.Reject(jobs, isTech)

	result.Hot = section("Hot Jobs", jobs, pages.Hot, func(n int) string { return pages.url("page", n) })
	result.Tech = section("Tech Jobs", techJobs, pages.Tech, func(n int) string { return pages.url("tech_page", n) })
	result.Other = section("Other Jobs", otherJobs, pages.Other, func(n int) string { return pages.url("other_page", n) })
	return result
}

func section(title string, jobs []models.Job, page int, urlFor func(int) string) HomeSection {
	visible, total := paginate(jobs, page, JobsPerPage)
	return HomeSection{
		Title:      title,
		Jobs:       visible,
		Pagination: NewPagination(page, total, urlFor),
	}
}
