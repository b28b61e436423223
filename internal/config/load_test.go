package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[server]
log_level = "debug"

[downloads]
directory = "/downloads"
category = "tv"

[staging]
root = "/staging"

[import]
unpack_passes = 3

[qbittorrent]
url = "http://localhost:8080"
username = "admin"
password = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/downloads", cfg.Downloads.Directory)
	assert.Equal(t, "tv", cfg.Downloads.Category)
	assert.Equal(t, "/staging", cfg.Staging.Root)
	assert.Equal(t, 3, cfg.Import.UnpackPasses)
	require.NotNil(t, cfg.QBittorrent)
	assert.Equal(t, "http://localhost:8080", cfg.QBittorrent.URL)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[downloads]
directory = "/downloads"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 1, cfg.Import.UnpackPasses)
	assert.Equal(t, "./data/intake.db", cfg.History.Path)
	assert.Nil(t, cfg.QBittorrent)
}

func TestLoad_QBittorrentPollIntervalDefault(t *testing.T) {
	path := writeConfig(t, `
[downloads]
directory = "/downloads"

[qbittorrent]
url = "http://localhost:8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.QBittorrent)
	assert.Equal(t, time.Minute, cfg.QBittorrent.PollInterval)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("INTAKE_TEST_PASSWORD", "hunter2")

	path := writeConfig(t, `
[downloads]
directory = "/downloads"

[qbittorrent]
url = "http://localhost:8080"
password = "${INTAKE_TEST_PASSWORD}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.QBittorrent.Password)
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[server]
log_level = "verbose"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, cfgErr.HasErrors())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeConfig(t, `[downloads
directory = `)
	_, err := Load(path)
	require.Error(t, err)
}
