package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT_ID", "GOOGLE_CLOUD_LOCATION", "GCP_LOCATION",
	"GOOGLE_APPLICATION_CREDENTIALS", "BRIEFFORGE_DEFAULT_MODEL", "BRIEFFORGE_CACHE_TTL",
	"BRIEFFORGE_CACHE_SWEEP", "BRIEFFORGE_RETRY_DELAY", "BRIEFFORGE_PROBE_ON_INIT",
	"BRIEFFORGE_SINGLE_FLIGHT", "BRIEFFORGE_CONFIG",
}

// isolate clears every key Load reads and runs from an empty directory so a
// developer's .env is not picked up.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Model.Project)
	assert.Equal(t, "us-central1", cfg.Model.Location)
	assert.Equal(t, "flash", cfg.Model.Default)
	assert.True(t, cfg.Model.ProbeOnInit)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SweepInterval)
	assert.Equal(t, 2*time.Second, cfg.Generation.RetryDelay)
	assert.False(t, cfg.Generation.SingleFlight)
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("GCP_PROJECT_ID", "legacy-project")
	t.Setenv("GOOGLE_CLOUD_LOCATION", "europe-west4")
	t.Setenv("BRIEFFORGE_DEFAULT_MODEL", "pro")
	t.Setenv("BRIEFFORGE_CACHE_TTL", "30m")
	t.Setenv("BRIEFFORGE_RETRY_DELAY", "0s")
	t.Setenv("BRIEFFORGE_PROBE_ON_INIT", "false")
	t.Setenv("BRIEFFORGE_SINGLE_FLIGHT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy-project", cfg.Model.Project)
	assert.Equal(t, "europe-west4", cfg.Model.Location)
	assert.Equal(t, "pro", cfg.Model.Default)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.Duration(0), cfg.Generation.RetryDelay)
	assert.False(t, cfg.Model.ProbeOnInit)
	assert.True(t, cfg.Generation.SingleFlight)
}

func TestLoad_ProjectPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "primary")
	t.Setenv("GCP_PROJECT_ID", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Model.Project)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("BRIEFFORGE_CACHE_TTL", "forever")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BRIEFFORGE_CACHE_TTL")

	t.Setenv("BRIEFFORGE_CACHE_TTL", "")
	t.Setenv("BRIEFFORGE_SINGLE_FLIGHT", "maybe")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "from-env")
	t.Setenv("BRIEFFORGE_TEST_REGION", "asia-northeast1")

	path := filepath.Join(t.TempDir(), "briefforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model:
  location: ${BRIEFFORGE_TEST_REGION}
  default: pro
cache:
  ttl: 5m
generation:
  single_flight: true
`), 0o644))
	t.Setenv("BRIEFFORGE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Model.Project)
	assert.Equal(t, "asia-northeast1", cfg.Model.Location)
	assert.Equal(t, "pro", cfg.Model.Default)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SweepInterval)
	assert.True(t, cfg.Generation.SingleFlight)
}

func TestLoad_MissingOverlay(t *testing.T) {
	isolate(t)
	t.Setenv("BRIEFFORGE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
