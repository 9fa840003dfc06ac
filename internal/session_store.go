package internal

import (
	"database/sql"
	_ "embed"
	"log"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tavsec/gin-healthcheck/checks"
)

//go:embed sql/select_session.sql
var selectSessionSQL string

//go:embed sql/upsert_session.sql
var upsertSessionSQL string

//go:embed sql/delete_session.sql
var deleteSessionSQL string

//go:embed sql/list_profiles.sql
var listProfilesSQL string

// SessionStore is a Session persisted in SQLite under a profile name, so that
// credentials survive between command invocations. Reads are served from memory.
type SessionStore struct {
	db      *sql.DB
	profile string
	baseURL string

	mu        sync.RWMutex
	access    string
	refresh   string
	updatedAt time.Time
}

type ProfileInfo struct {
	Profile   string    `json:"profile"`
	BaseURL   string    `json:"base_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpenSessionStore loads the profile's stored tokens. Tokens stored for a different
// base URL are ignored, as they were issued by another server.
func OpenSessionStore(db *sql.DB, profile, baseURL string) (*SessionStore, error) {
	store := &SessionStore{db: db, profile: profile, baseURL: baseURL}

	var storedURL string
	err := db.QueryRow(selectSessionSQL, profile).Scan(&storedURL, &store.access, &store.refresh, &store.updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return store, nil
	case err != nil:
		return nil, errors.Wrapf(err, "failed to load session for profile %s", profile)
	}

	if storedURL != baseURL {
		log.Printf("Stored session for profile %s belongs to %s, not %s; ignoring it", profile, storedURL, baseURL)
		store.access = ""
		store.refresh = ""
	}
	return store, nil
}

func (s *SessionStore) Profile() string {
	return s.profile
}

func (s *SessionStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *SessionStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

func (s *SessionStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(access, refresh)
}

func (s *SessionStore) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(access, s.refresh)
}

func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = ""
	s.refresh = ""
	s.updatedAt = time.Time{}
	if _, err := s.db.Exec(deleteSessionSQL, s.profile); err != nil {
		return errors.Wrapf(err, "failed to delete session for profile %s", s.profile)
	}
	return nil
}

// save must be called with the write lock held. Memory is updated even when the
// write fails, so the running process keeps a working session.
func (s *SessionStore) save(access, refresh string) error {
	now := time.Now().UTC()
	s.access = access
	s.refresh = refresh
	s.updatedAt = now

	if _, err := s.db.Exec(upsertSessionSQL, s.profile, s.baseURL, access, refresh, now); err != nil {
		return errors.Wrapf(err, "failed to save session for profile %s", s.profile)
	}
	return nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}

func ListProfiles(db *sql.DB) ([]ProfileInfo, error) {
	rows, err := db.Query(listProfilesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	profiles := make([]ProfileInfo, 0)
	for rows.Next() {
		var info ProfileInfo
		if err := rows.Scan(&info.Profile, &info.BaseURL, &info.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		profiles = append(profiles, info)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating over rows")
	}
	return profiles, nil
}

func (s *SessionStore) Check() checks.Check {
	return &sessionStoreCheck{db: s.db}
}

type sessionStoreCheck struct {
	db *sql.DB
}

func (c *sessionStoreCheck) Pass() bool {
	return c.db.Ping() == nil
}

func (c *sessionStoreCheck) Name() string {
	return "session-store"
}
