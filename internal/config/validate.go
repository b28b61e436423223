package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Downloads.Directory == "" {
		errs = append(errs, "downloads.directory: required")
	}

	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Import.UnpackPasses < 0 {
		errs = append(errs, fmt.Sprintf("import.unpack_passes: must be positive, got %d", c.Import.UnpackPasses))
	}

	if c.QBittorrent != nil {
		if c.QBittorrent.URL == "" {
			errs = append(errs, "qbittorrent.url: required when qbittorrent is configured")
		}
		if c.QBittorrent.PollInterval < 0 {
			errs = append(errs, "qbittorrent.poll_interval: must be positive")
		}
	}

	return errs
}
