package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedService(t *testing.T) (ConfigService, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	return NewConfigServiceWithPath(path, filepath.Join(dir, ".env")), path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc, _ := isolatedService(t)

	cfg, err := svc.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 8, cfg.UI.PageSize)
	assert.Equal(t, 10, cfg.UI.ErrorHistorySize)
	assert.Equal(t, 3*time.Second, cfg.UI.SuccessAlert.Duration)
	assert.Equal(t, 5*time.Second, cfg.UI.ErrorAlert.Duration)
}

func TestSaveThenLoadKeepsValues(t *testing.T) {
	svc, path := isolatedService(t)

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://rentals.internal:9000"
	cfg.API.Timeout = Duration{2500 * time.Millisecond}
	cfg.UI.PageSize = 12
	require.NoError(t, svc.Save(cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "2.5s")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://rentals.internal:9000", loaded.API.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, loaded.API.Timeout.Duration)
	assert.Equal(t, 12, loaded.UI.PageSize)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	svc, path := isolatedService(t)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\npage_size = 5\n"), 0o644))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.UI.PageSize)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.UI.ErrorHistorySize)
}

func TestEnvOverridesFile(t *testing.T) {
	svc, path := isolatedService(t)
	require.NoError(t, os.WriteFile(path, []byte("[api]\nbase_url = 'http://file:1'\n"), 0o644))

	t.Setenv(EnvAPIURL, "http://env:2/")
	t.Setenv(EnvPageSize, "3")

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env:2", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.UI.PageSize)
}

func TestDotEnvFileIsRead(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvLogFile+"=/tmp/dash.log\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv(EnvLogFile) })

	svc := NewConfigServiceWithPath(filepath.Join(dir, "config.toml"), envFile)
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dash.log", cfg.Log.File)
}

func TestInvalidValuesAreRejected(t *testing.T) {
	svc, path := isolatedService(t)
	require.NoError(t, os.WriteFile(path, []byte("[ui]\npage_size = 0\n"), 0o644))

	_, err := svc.Load()
	assert.ErrorContains(t, err, "page_size")

	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))
	_, err = svc.Load()
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadFromPathMissing(t *testing.T) {
	svc, _ := isolatedService(t)
	_, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "config file not found")
}
