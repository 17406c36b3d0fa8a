package repositories

import (
	"context"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"time"
)

type Sessions struct {
	db *gorm.DB
}

func NewSessionsRepository(db *gorm.DB) *Sessions {
	return &Sessions{db: db}
}

// SaveAll upserts the given snapshots in one transaction.
func (s *Sessions) SaveAll(ctx context.Context, records []models.SessionRecord) error {
	if len(records) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error
	})
}

// LoadAll returns every snapshot that has not expired at now.
func (s *Sessions) LoadAll(ctx context.Context, now time.Time) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	err := s.db.WithContext(ctx).
		Where("expires_at > ?", now).
		Find(&records).Error
	return records, err
}

func (s *Sessions) Remove(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.SessionRecord{}, "id = ?", id).Error
}

func (s *Sessions) RemoveExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.SessionRecord{}, "expires_at <= ?", now)
	return res.RowsAffected, res.Error
}
