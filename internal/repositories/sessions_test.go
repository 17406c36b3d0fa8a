package repositories

import (
	"context"
	"github.com/maxaizer/namaste-jobs/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"path/filepath"
	"testing"
	"time"
)

func newTestDb(t *testing.T) *DbContext {
	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("could not create db context: %s", err)
	}
	if err = dbCtx.Migrate(); err != nil {
		t.Fatalf("could not migrate db: %s", err)
	}
	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func Test_Sessions_SaveAndLoad_ShouldSkipExpired(t *testing.T) {

	assert := assert.New(t)
	repo := NewSessionsRepository(newTestDb(t).DB)
	ctx := context.Background()
	now := time.Now()

	err := repo.SaveAll(ctx, []models.SessionRecord{
		{ID: "alive", Data: []byte(`{"a":1}`), ExpiresAt: now.Add(time.Hour)},
		{ID: "dead", Data: []byte(`{}`), ExpiresAt: now.Add(-time.Hour)},
	})
	assert.NoError(err)

	records, err := repo.LoadAll(ctx, now)
	assert.NoError(err)
	assert.Len(records, 1)
	assert.Equal("alive", records[0].ID)
	assert.Equal([]byte(`{"a":1}`), records[0].Data)
}

func Test_Sessions_SaveAll_ShouldOverwriteExisting(t *testing.T) {

	assert := assert.New(t)
	repo := NewSessionsRepository(newTestDb(t).DB)
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	assert.NoError(repo.SaveAll(ctx, []models.SessionRecord{{ID: "s", Data: []byte("v1"), ExpiresAt: expires}}))
	assert.NoError(repo.SaveAll(ctx, []models.SessionRecord{{ID: "s", Data: []byte("v2"), ExpiresAt: expires}}))

	records, err := repo.LoadAll(ctx, time.Now())
	assert.NoError(err)
	assert.Len(records, 1)
	assert.Equal([]byte("v2"), records[0].Data)
}

func Test_Sessions_RemoveExpired(t *testing.T) {

	assert := assert.New(t)
	repo := NewSessionsRepository(newTestDb(t).DB)
	ctx := context.Background()
	now := time.Now()

	assert.NoError(repo.SaveAll(ctx, []models.SessionRecord{
		{ID: "1", ExpiresAt: now.Add(-time.Minute)},
		{ID: "2", ExpiresAt: now.Add(-time.Hour)},
		{ID: "3", ExpiresAt: now.Add(time.Hour)},
	}))

	removed, err := repo.RemoveExpired(ctx, now)
	assert.NoError(err)
	assert.Equal(int64(2), removed)

	assert.NoError(repo.Remove(ctx, "3"))
	records, err := repo.LoadAll(ctx, now)
	assert.NoError(err)
	assert.Empty(records)
}
