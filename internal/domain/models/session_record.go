package models

import "time"

// SessionRecord is a persisted browser session snapshot.
type SessionRecord struct {
	ID        string `gorm:"primaryKey"`
	Data      []byte
	ExpiresAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
