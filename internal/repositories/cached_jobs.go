package repositories

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/events"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"slices"
	"strings"
	"sync/atomic"
	"time"
)

const (
	listKeyPrefix = "jobs:"
	jobKeyPrefix  = "job:"

	// sharedFetchTimeout bounds a backend request that outlives the
	// caller which started it.
	sharedFetchTimeout = 15 * time.Second
)

type jobsReader interface {
	GetJobs(ctx context.Context, creds backend.Credentials, query backend.JobsQuery) (backend.JobsPage, error)
	GetJob(ctx context.Context, creds backend.Credentials, id string) (models.Job, error)
}

// CachedJobs is the read side of jobs for every page. Concurrent identical
// reads share one backend request, results live for ttl and are dropped
// as soon as a job is created, updated or deleted.
type CachedJobs struct {
	reader       jobsReader
	cache        *gocache.Cache
	ttl          time.Duration
	fetchTimeout time.Duration
	group        singleflight.Group
	generation   atomic.Int64
}

func NewCachedJobs(reader jobsReader, ttl time.Duration) *CachedJobs {
	return &CachedJobs{
		reader:       reader,
		cache:        gocache.New(ttl, 2*ttl+time.Minute),
		ttl:          ttl,
		fetchTimeout: sharedFetchTimeout,
	}
}

func (c *CachedJobs) List(ctx context.Context, creds backend.Credentials, query backend.JobsQuery) (backend.JobsPage, error) {
	key := fmt.Sprintf("%s%d:%s", listKeyPrefix, c.generation.Load(), query.CacheKey())

	if value, found := c.cache.Get(key); found {
		metrics.JobCacheLookups.WithLabelValues("hit").Inc()
		return clonePage(value.(backend.JobsPage)), nil
	}
	metrics.JobCacheLookups.WithLabelValues("miss").Inc()

	value, err := c.shared(ctx, key, func(fetchCtx context.Context) (any, error) {
		return c.reader.GetJobs(fetchCtx, creds, query)
	})
	if err != nil {
		return backend.JobsPage{}, err
	}

	return clonePage(value.(backend.JobsPage)), nil
}

func (c *CachedJobs) Get(ctx context.Context, creds backend.Credentials, id string) (models.Job, error) {
	key := fmt.Sprintf("%s%d:%s", jobKeyPrefix, c.generation.Load(), id)

	if value, found := c.cache.Get(key); found {
		metrics.JobCacheLookups.WithLabelValues("hit").Inc()
		return value.(models.Job), nil
	}
	metrics.JobCacheLookups.WithLabelValues("miss").Inc()

	value, err := c.shared(ctx, key, func(fetchCtx context.Context) (any, error) {
		return c.reader.GetJob(fetchCtx, creds, id)
	})
	if err != nil {
		return models.Job{}, err
	}

	return value.(models.Job), nil
}

// shared runs fetch once per key for all concurrent callers. The request
// is detached from the caller that started it, every caller stops waiting
// when its own ctx ends.
func (c *CachedJobs) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	result := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		value, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.store(key, value)
		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, backend.ContextError(ctx)
	case res := <-result:
		return res.Val, res.Err
	}
}

func (c *CachedJobs) store(key string, value any) {
	if c.ttl <= 0 {
		return
	}
	c.cache.Set(key, value, c.ttl)
}

// Invalidate moves reads to a new generation, so a fetch still in flight
// can only fill a key nobody reads any more.
func (c *CachedJobs) Invalidate(jobID string) {
	c.generation.Add(1)

	for key := range c.cache.Items() {
		if strings.HasPrefix(key, listKeyPrefix) || strings.HasPrefix(key, jobKeyPrefix) {
			c.cache.Delete(key)
		}
	}
	log.Debugf("job cache invalidated, job id: %q", jobID)
}

func (c *CachedJobs) SubscribeInvalidation(bus EventBus.Bus) error {
	if err := bus.Subscribe(events.JobCreatedTopic, func(e events.JobCreated) {
		c.Invalidate(e.Job.ID)
	}); err != nil {
		return err
	}

	if err := bus.Subscribe(events.JobUpdatedTopic, func(e events.JobUpdated) {
		c.Invalidate(e.Job.ID)
	}); err != nil {
		return err
	}

	return bus.Subscribe(events.JobDeletedTopic, func(e events.JobDeleted) {
		c.Invalidate(e.JobID)
	})
}

func clonePage(page backend.JobsPage) backend.JobsPage {
	page.Jobs = slices.Clone(page.Jobs)
	return page
}
