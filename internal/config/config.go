// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig       `toml:"server"`
	Downloads   DownloadsConfig    `toml:"downloads"`
	Staging     StagingConfig      `toml:"staging"`
	Import      ImportConfig       `toml:"import"`
	QBittorrent *QBittorrentConfig `toml:"qbittorrent"`
	History     HistoryConfig      `toml:"history"`
}

type ServerConfig struct {
	LogLevel string `toml:"log_level"`
}

type DownloadsConfig struct {
	// Directory is the base directory completed torrents land in.
	Directory string `toml:"directory"`

	// Category limits the watch service to one client category.
	Category string `toml:"category"`
}

type StagingConfig struct {
	// Root is where classified files are linked for library import.
	Root string `toml:"root"`
}

type ImportConfig struct {
	// UnpackPasses bounds expand-rescan rounds; 1 unpacks top-level
	// archives only.
	UnpackPasses int `toml:"unpack_passes"`
}

type QBittorrentConfig struct {
	URL          string        `toml:"url"`
	Username     string        `toml:"username"`
	Password     string        `toml:"password"`
	PollInterval time.Duration `toml:"poll_interval"`
}

type HistoryConfig struct {
	Path string `toml:"path"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Import.UnpackPasses == 0 {
		cfg.Import.UnpackPasses = 1
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "./data/intake.db"
	}
	if cfg.QBittorrent != nil && cfg.QBittorrent.PollInterval == 0 {
		cfg.QBittorrent.PollInterval = time.Minute
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
