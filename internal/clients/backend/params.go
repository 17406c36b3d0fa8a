package backend

import (
	"fmt"
	"net/url"
	"strconv"
)

type JobsQuery struct {
	Category string
	Location string
	Search   string
	Page     int
	Limit    int
}

func (q JobsQuery) Validate() error {

	if q.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if q.Limit < 0 || q.Limit > 100 {
		return fmt.Errorf("limit must be between 0 and 100")
	}

	return nil
}

func (q JobsQuery) ToUrlParams() url.Values {

	params := url.Values{}
	if q.Page > 0 {
		params.Add("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Add("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		params.Add("category", q.Category)
	}
	if q.Location != "" {
		params.Add("location", q.Location)
	}
	if q.Search != "" {
		params.Add("search", q.Search)
	}

	return params
}

// CacheKey identifies the query for request deduplication and caching.
func (q JobsQuery) CacheKey() string {
	return "jobs?" + q.ToUrlParams().Encode()
}
