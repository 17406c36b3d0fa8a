package services

import (
	"context"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type SessionsCleanupRepository interface {
	RemoveExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionSweeper interface {
	Sweep() int
}

// SessionsCleaner drops expired sessions from memory and from the database on a schedule.
type SessionsCleaner struct {
	sessions SessionsCleanupRepository
	store    sessionSweeper
	cron     *cron.Cron
	now      func() time.Time
}

func NewSessionsCleaner(sessions SessionsCleanupRepository, store sessionSweeper, schedule string) (*SessionsCleaner, error) {

	if schedule == "" {
		return nil, errors.New("cleanup schedule must not be empty")
	}

	sc := &SessionsCleaner{
		sessions: sessions,
		store:    store,
		cron:     cron.New(),
		now:      time.Now,
	}

	_, err := sc.cron.AddFunc(schedule, sc.cleanExpiredSessions)
	if err != nil {
		return nil, errors.Wrap(err, "invalid cleanup schedule")
	}

	sc.cron.Start()
	log.Infof("sessions cleaner started, schedule: %s", schedule)
	return sc, nil
}

func (sc *SessionsCleaner) Stop() {
	<-sc.cron.Stop().Done()
}

func (sc *SessionsCleaner) cleanExpiredSessions() {
	swept := sc.store.Sweep()
	rowsAffected, err := sc.sessions.RemoveExpired(context.Background(), sc.now())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("Failed to clean expired sessions: %v", err)
	} else {
		log.Infof("Expired sessions were cleaned at %v, in memory: %d, affected rows: %v", sc.now(), swept, rowsAffected)
	}
}
