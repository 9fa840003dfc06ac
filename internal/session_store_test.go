package internal

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	tmpFile, err := os.CreateTemp("", "clawdash_test-*.db")
	require.NoError(t, err)
	dbPath := tmpFile.Name()
	_ = tmpFile.Close()

	t.Cleanup(func() {
		_ = os.Remove(dbPath)
	})

	db, err := Connect(dbPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	err = Migrate(dbPath)
	require.NoError(t, err)
	return db
}

func TestSessionStoreRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	store, err := OpenSessionStore(db, "default", "http://localhost:8000/api")
	require.NoError(t, err)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
	assert.True(t, store.UpdatedAt().IsZero())

	require.NoError(t, store.SetTokens("access-1", "refresh-1"))
	require.NoError(t, store.SetAccessToken("access-2"))

	reopened, err := OpenSessionStore(db, "default", "http://localhost:8000/api")
	require.NoError(t, err)
	assert.Equal(t, "access-2", reopened.AccessToken())
	assert.Equal(t, "refresh-1", reopened.RefreshToken())
	assert.WithinDuration(t, time.Now(), reopened.UpdatedAt(), time.Minute)
}

func TestSessionStoreClear(t *testing.T) {
	db := setupTestDB(t)

	store, err := OpenSessionStore(db, "default", "http://localhost:8000/api")
	require.NoError(t, err)
	require.NoError(t, store.SetTokens("access-1", "refresh-1"))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.AccessToken())

	reopened, err := OpenSessionStore(db, "default", "http://localhost:8000/api")
	require.NoError(t, err)
	assert.Empty(t, reopened.AccessToken())
	assert.Empty(t, reopened.RefreshToken())
}

func TestSessionStoreProfilesAreIsolated(t *testing.T) {
	db := setupTestDB(t)

	work, err := OpenSessionStore(db, "work", "https://dash.example.com/api")
	require.NoError(t, err)
	require.NoError(t, work.SetTokens("work-access", "work-refresh"))

	home, err := OpenSessionStore(db, "home", "http://localhost:8000/api")
	require.NoError(t, err)
	assert.Empty(t, home.AccessToken())
	require.NoError(t, home.SetTokens("home-access", "home-refresh"))

	profiles, err := ListProfiles(db)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "home", profiles[0].Profile)
	assert.Equal(t, "work", profiles[1].Profile)
	assert.Equal(t, "https://dash.example.com/api", profiles[1].BaseURL)
}

func TestSessionStoreIgnoresOtherServer(t *testing.T) {
	db := setupTestDB(t)

	store, err := OpenSessionStore(db, "default", "https://old.example.com/api")
	require.NoError(t, err)
	require.NoError(t, store.SetTokens("access-1", "refresh-1"))

	moved, err := OpenSessionStore(db, "default", "https://new.example.com/api")
	require.NoError(t, err)
	assert.Empty(t, moved.AccessToken())
	assert.Empty(t, moved.RefreshToken())
}

func TestSessionStoreCheck(t *testing.T) {
	db := setupTestDB(t)

	store, err := OpenSessionStore(db, "default", "http://localhost:8000/api")
	require.NoError(t, err)

	check := store.Check()
	assert.Equal(t, "session-store", check.Name())
	assert.True(t, check.Pass())

	require.NoError(t, store.Close())
	assert.False(t, check.Pass())
}

func TestClientPersistsRefreshedToken(t *testing.T) {
	db := setupTestDB(t)
	backend := &testBackend{validToken: "fresh", refreshAccess: "fresh"}

	store, err := OpenSessionStore(db, "default", "ignored")
	require.NoError(t, err)
	require.NoError(t, store.SetTokens("stale", "refresh-1"))

	client, _ := newTestClient(t, backend, store, nil)
	require.NoError(t, client.Get(context.Background(), "/data/", nil, nil))

	reopened, err := OpenSessionStore(db, "default", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "fresh", reopened.AccessToken())
	assert.Equal(t, "refresh-1", reopened.RefreshToken())
}
