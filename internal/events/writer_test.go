package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briantully/acquia-cli/internal/db"
	"github.com/briantully/acquia-cli/internal/events"
	"github.com/briantully/acquia-cli/internal/migrate"
	"github.com/briantully/acquia-cli/internal/repo"
)

func openTestDB(t *testing.T) *repo.Repo {
	t.Helper()
	conn, err := db.Open(db.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migrate.Migrate(conn))
	require.NoError(t, migrate.Migrate(conn)) // idempotent
	return &repo.Repo{DB: conn}
}

func TestAppendAndReadBack(t *testing.T) {
	r := openTestDB(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	w := events.Writer{DB: r.DB, Now: func() time.Time { return now }}
	ctx := context.Background()

	require.NoError(t, w.Append(ctx, "deploy.start", "app-1", "stage", events.Payload{"ref": "tags/1.2"}))
	require.NoError(t, w.Append(ctx, "deploy.finish", "app-1", "stage", nil))

	got, err := r.LatestEvents(ctx, 10, repo.EventFilters{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// newest first
	assert.Equal(t, "deploy.finish", got[0].Type)
	assert.Equal(t, "deploy.start", got[1].Type)
	assert.Equal(t, "2024-03-01T10:00:00Z", got[1].TS)
	assert.Equal(t, "app-1", got[1].AppID)
	assert.Equal(t, "stage", got[1].Environment)
	assert.JSONEq(t, `{"ref":"tags/1.2"}`, got[1].Payload)
	assert.JSONEq(t, `{}`, got[0].Payload)
}

func TestLatestEventsFilters(t *testing.T) {
	r := openTestDB(t)
	w := events.Writer{DB: r.DB}
	ctx := context.Background()

	require.NoError(t, w.Append(ctx, "deploy.start", "app-1", "stage", nil))
	require.NoError(t, w.Append(ctx, "deploy.start", "app-2", "dev", nil))
	require.NoError(t, w.Append(ctx, "config.start", "app-1", "dev", nil))

	got, err := r.LatestEvents(ctx, 10, repo.EventFilters{Type: "deploy.start"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.LatestEvents(ctx, 10, repo.EventFilters{AppID: "app-1", Environment: "dev"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "config.start", got[0].Type)
}

func TestLatestEventsLimit(t *testing.T) {
	r := openTestDB(t)
	w := events.Writer{DB: r.DB}
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, w.Append(ctx, "deploy.start", "app-1", "stage", nil))
	}

	got, err := r.LatestEvents(ctx, 3, repo.EventFilters{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
