package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 38472
	cfg.Backend.BaseURL = "https://workai-backend.onrender.com"
	cfg.Capture.RequireFields = true
	return cfg
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	out, vr := NormalizeAndValidate(validConfig())
	require.True(t, vr.OK(), "errors: %v", vr.Errors)

	assert.Equal(t, "append", out.Deck.HistoryOrder)
	assert.Equal(t, 60, out.Backend.UploadTimeoutSeconds)
	assert.Equal(t, 1.0, out.Backend.RequestsPerSecond)
	assert.Equal(t, 2, out.Backend.Burst)
}

func TestNormalizeTrimsAndLowercases(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.BaseURL = "  https://workai-backend.onrender.com/  "
	cfg.Deck.HistoryOrder = " PREPEND "

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK(), "errors: %v", vr.Errors)
	assert.Equal(t, "https://workai-backend.onrender.com", out.Backend.BaseURL)
	assert.Equal(t, "prepend", out.Deck.HistoryOrder)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := validConfig()
	cfg.App.Port = 0
	cfg.Backend.BaseURL = "not-a-url"
	cfg.Backend.RequestsPerSecond = -1
	cfg.Deck.HistoryOrder = "sideways"

	_, vr := NormalizeAndValidate(cfg)
	require.False(t, vr.OK())
	joined := joinLines(vr.Errors)
	assert.Contains(t, joined, "app.port")
	assert.Contains(t, joined, "backend.base_url")
	assert.Contains(t, joined, "requests_per_second")
	assert.Contains(t, joined, "history_order")
}

func TestValidateWarnings(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.UploadTimeoutSeconds = 2
	cfg.Capture.RequireFields = false
	cfg.Capture.DefaultDescription = ""

	_, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), "warnings never block")
	assert.Len(t, vr.Warnings, 2)
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := validConfig()
	cfg.Capture.DefaultDescription = "Captured via WorkHub v1"
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.App.Port, got.App.Port)
	assert.Equal(t, cfg.Backend.BaseURL, got.Backend.BaseURL)
	assert.Equal(t, "Captured via WorkHub v1", got.Capture.DefaultDescription)

	// A second save keeps the previous version as .bak.
	cfg.App.Port = 38473
	require.NoError(t, SaveAtomic(path, cfg))

	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, 38472, bak.App.Port)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "no temp file left behind")
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := validConfig()
	cfg.App.Port = -1
	require.Error(t, SaveAtomic(path, cfg))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "invalid config never lands on disk")
}

func TestEnsureUserConfig(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := filepath.Join(t.TempDir(), "default.yml")
	require.NoError(t, os.WriteFile(defaultPath, []byte("app:\n  port: 38472\n"), 0o644))

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	got, err := Load(userPath)
	require.NoError(t, err)
	assert.Equal(t, 38472, got.App.Port)

	// Second run: the user's copy wins, the default is not re-copied.
	require.NoError(t, os.WriteFile(userPath, []byte("app:\n  port: 40000\n"), 0o644))
	again, err := EnsureUserConfig(dataDir, defaultPath)
	require.NoError(t, err)
	got, err = Load(again)
	require.NoError(t, err)
	assert.Equal(t, 40000, got.App.Port)
}

func TestOverlayEnv(t *testing.T) {
	t.Setenv("WORKHUB_BACKEND_URL", "http://127.0.0.1:9999")
	t.Setenv("WORKHUB_PORT", "40123")
	t.Setenv("WORKHUB_DATA_DIR", "/tmp/workhub-test")

	cfg := validConfig()
	OverlayEnv(&cfg)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Backend.BaseURL)
	assert.Equal(t, 40123, cfg.App.Port)
	assert.Equal(t, "/tmp/workhub-test", cfg.App.DataDir)

	t.Setenv("WORKHUB_PORT", "not-a-number")
	OverlayEnv(&cfg)
	assert.Equal(t, 40123, cfg.App.Port, "garbage port override is ignored")
}
