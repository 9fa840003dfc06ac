package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLAWDASH_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIURL)
	assert.Equal(t, "./data/clawdash.db", cfg.DBPath)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.LogRequests)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CLAWDASH_CONFIG", "")
	t.Setenv("CLAWDASH_API_URL", "https://dash.example.com/api")
	t.Setenv("CLAWDASH_PROFILE", "work")
	t.Setenv("CLAWDASH_TIMEOUT", "5s")
	t.Setenv("CLAWDASH_LOG_REQUESTS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://dash.example.com/api", cfg.APIURL)
	assert.Equal(t, "work", cfg.Profile)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.LogRequests)
}

func TestLoadFileWithEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clawdash.yaml", `
api_url: "http://staging.internal/api"
db_path: "/tmp/staging.db"
profile: "staging"
timeout: "10s"
`)
	t.Setenv("CLAWDASH_PROFILE", "override")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://staging.internal/api", cfg.APIURL)
	assert.Equal(t, "/tmp/staging.db", cfg.DBPath)
	assert.Equal(t, "override", cfg.Profile)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadFromConfigEnvVar(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clawdash.yaml", `profile: "from-file"`)
	t.Setenv("CLAWDASH_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Profile)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat failed")
}

func TestLoadBrokenFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yaml", "profile: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{Profile: ""}).Validate())
	assert.Error(t, (&Config{Profile: "p", Timeout: -time.Second}).Validate())
	assert.NoError(t, (&Config{Profile: "p"}).Validate())
}
