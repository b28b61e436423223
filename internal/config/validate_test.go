package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_MinimalValid(t *testing.T) {
	cfg := &Config{Downloads: DownloadsConfig{Directory: "/downloads"}}
	assert.Empty(t, cfg.Validate())
}

func TestValidate_MissingDownloadsDirectory(t *testing.T) {
	cfg := &Config{}
	errs := cfg.Validate()
	assert.Contains(t, errs, "downloads.directory: required")
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{LogLevel: "verbose"},
		Downloads: DownloadsConfig{Directory: "/downloads"},
	}
	errs := cfg.Validate()
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "server.log_level")
}

func TestValidate_QBittorrentURLRequired(t *testing.T) {
	cfg := &Config{
		Downloads:   DownloadsConfig{Directory: "/downloads"},
		QBittorrent: &QBittorrentConfig{},
	}
	errs := cfg.Validate()
	assert.Contains(t, errs, "qbittorrent.url: required when qbittorrent is configured")
}

func TestConfigError_Error(t *testing.T) {
	e := &ConfigError{
		Path:    "config.toml",
		Missing: []string{"QBIT_PASS"},
		Errors:  []string{"downloads.directory: required"},
	}
	msg := e.Error()
	assert.Contains(t, msg, "QBIT_PASS")
	assert.Contains(t, msg, "downloads.directory")
	assert.True(t, e.HasErrors())

	assert.Empty(t, (&ConfigError{}).Error())
}
