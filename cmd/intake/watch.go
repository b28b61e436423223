package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/vmunix/intake/internal/history"
	"github.com/vmunix/intake/internal/importer"
	"github.com/vmunix/intake/internal/qbit"
	"github.com/vmunix/intake/internal/service"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll qBittorrent and import completed downloads",
	Long: `Poll qBittorrent and import completed downloads.

Each completed torrent in the configured category is processed once;
imported torrents are remembered in the history database and skipped
on later polls. Runs until interrupted.`,
	RunE: runWatchCmd,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.QBittorrent == nil {
		return fmt.Errorf("qbittorrent not configured")
	}
	logger := newLogger(cfg.Server.LogLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.History.Path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer func() { _ = db.Close() }()

	hist := history.NewStore(db)
	if err := hist.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := qbit.NewClient(ctx, qbit.Config{
		URL:      cfg.QBittorrent.URL,
		Username: cfg.QBittorrent.Username,
		Password: cfg.QBittorrent.Password,
	}, logger.With("component", "qbit"))
	if err != nil {
		return err
	}

	imp := importer.New(importer.Config{
		DownloadDir:  cfg.Downloads.Directory,
		UnpackPasses: cfg.Import.UnpackPasses,
	}, logger.With("component", "importer"))

	runner := service.NewRunner(client, imp, hist, service.Config{
		Category:     cfg.Downloads.Category,
		StagingRoot:  cfg.Staging.Root,
		PollInterval: cfg.QBittorrent.PollInterval,
	}, logger.With("component", "watch"))

	logger.Info("watch started",
		"downloads", cfg.Downloads.Directory,
		"category", cfg.Downloads.Category,
		"poll_interval", cfg.QBittorrent.PollInterval)

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("watch stopped")
	return nil
}
