package session

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/namaste-jobs/internal/clients/backend"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/maxaizer/namaste-jobs/internal/logger"
	log "github.com/sirupsen/logrus"
	"time"
)

type sessionsRepository interface {
	SaveAll(ctx context.Context, records []models.SessionRecord) error
	LoadAll(ctx context.Context, now time.Time) ([]models.SessionRecord, error)
}

type userFetcher interface {
	Me(ctx context.Context, creds backend.Credentials) (models.User, error)
}

// Save writes a snapshot of all live sessions.
func (s *Store) Save(ctx context.Context, repo sessionsRepository) error {
	sessions := s.snapshot()
	records := make([]models.SessionRecord, 0, len(sessions))

	for _, session := range sessions {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
		}
		records = append(records, models.SessionRecord{
			ID:        session.ID,
			Data:      data,
			ExpiresAt: s.expiresAt(session),
		})
	}

	if err := repo.SaveAll(ctx, records); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}
	log.Infof("saved %d sessions", len(records))
	return nil
}

// Load restores persisted sessions. The user of every session holding
// backend cookies is fetched again; a failed fetch leaves it signed out.
func (s *Store) Load(ctx context.Context, repo sessionsRepository, users userFetcher) error {
	records, err := repo.LoadAll(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}

	sessions := make([]Session, 0, len(records))
	for _, record := range records {
		var session Session
		if err = json.Unmarshal(record.Data, &session); err != nil {
			log.Warnf("skipping unreadable session %s: %v", record.ID, err)
			continue
		}
		session.ID = record.ID
		session.User = nil

		if len(session.Cookies) > 0 {
			user, err := users.Me(ctx, session.Credentials())
			if err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
					Debugf("session %s restored signed out: %v", record.ID, err)
				session.Cookies = nil
			} else {
				session.User = &user
			}
		}

		sessions = append(sessions, session)
	}

	s.restore(sessions)
	log.Infof("restored %d sessions", len(sessions))
	return nil
}
