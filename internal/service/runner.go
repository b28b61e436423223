// Package service runs the polling loop that feeds completed torrents
// into the import pipeline.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/intake/internal/history"
	"github.com/vmunix/intake/internal/importer"
	"github.com/vmunix/intake/internal/qbit"
)

// Config for the watch service.
type Config struct {
	// Category limits polling to one qBittorrent category; empty means
	// all completed torrents.
	Category string

	// StagingRoot, when set, is where classified files are linked
	// after processing.
	StagingRoot string

	PollInterval time.Duration
}

// Runner polls the torrent client and imports completed downloads.
// Torrents are processed one at a time; the pipeline is unsafe against
// concurrent work in the same directory.
type Runner struct {
	torrents qbit.Torrents
	importer *importer.Importer
	history  *history.Store
	cfg      Config
	log      *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(torrents qbit.Torrents, imp *importer.Importer, hist *history.Store, cfg Config, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}
	return &Runner{
		torrents: torrents,
		importer: imp,
		history:  hist,
		cfg:      cfg,
		log:      log,
	}
}

// Run polls until the context is canceled. The first poll happens
// immediately.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(r.cfg.PollInterval)
		defer ticker.Stop()

		if err := r.Poll(ctx); err != nil {
			r.log.Error("poll failed", "error", err)
		}
		for {
			select {
			case <-ticker.C:
				if err := r.Poll(ctx); err != nil {
					r.log.Error("poll failed", "error", err)
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return g.Wait()
}

// Poll lists completed torrents and imports any not seen before.
// Client errors abort the poll; per-torrent failures are logged and do
// not stop the remaining torrents.
func (r *Runner) Poll(ctx context.Context) error {
	torrents, err := r.torrents.Completed(ctx, r.cfg.Category)
	if err != nil {
		return err
	}
	r.log.Debug("poll", "completed", len(torrents), "category", r.cfg.Category)

	for _, t := range torrents {
		seen, err := r.history.Seen(t.Hash)
		if err != nil {
			r.log.Error("history lookup failed", "hash", t.Hash, "error", err)
			continue
		}
		if seen {
			continue
		}

		if err := r.processTorrent(ctx, t); err != nil {
			r.log.Error("import failed", "torrent", t.Name, "error", err)
		}
	}

	return nil
}

func (r *Runner) processTorrent(ctx context.Context, t qbit.Torrent) error {
	r.log.Info("importing completed torrent", "name", t.Name, "hash", t.Hash)

	dir, err := r.importer.ResolveSource(t.Name)
	if err != nil {
		return err
	}

	classified, err := r.importer.ProcessDir(ctx, dir)
	if err != nil {
		return err
	}

	if r.cfg.StagingRoot != "" {
		failed := 0
		for _, res := range r.importer.Stage(classified, dir, r.cfg.StagingRoot) {
			if res.Failed() {
				failed++
			}
		}
		if failed > 0 {
			// Per-file failures were logged by Stage. The torrent still
			// counts as processed so a bad file is not retried forever.
			r.log.Warn("staging incomplete", "torrent", t.Name, "failed", failed)
		}
	}

	entry := &history.Entry{
		Hash:      t.Hash,
		Title:     t.Name,
		SourceDir: dir,
		Files:     categorize(classified),
	}
	if err := r.history.Add(entry); err != nil {
		return err
	}

	r.log.Info("torrent imported", "name", t.Name,
		"videos", len(classified.Videos), "subtitles", len(classified.Subtitles))
	return nil
}

// categorize maps a classified file set onto history file rows.
func categorize(c *importer.Classified) []history.FileEntry {
	inVideos := make(map[string]bool, len(c.Videos))
	for _, p := range c.Videos {
		inVideos[p] = true
	}
	inSubs := make(map[string]bool, len(c.Subtitles))
	for _, p := range c.Subtitles {
		inSubs[p] = true
	}

	files := make([]history.FileEntry, 0, len(c.All))
	for _, p := range c.All {
		category := history.CategoryOther
		switch {
		case inVideos[p]:
			category = history.CategoryVideo
		case inSubs[p]:
			category = history.CategorySubtitle
		}
		files = append(files, history.FileEntry{Path: p, Category: category})
	}
	return files
}
