// Package qbit wraps the qBittorrent Web API for the watch service.
// It only reads torrent state; torrent lifecycle stays with the client.
package qbit

import (
	"context"
	"fmt"
	"log/slog"

	qbt "github.com/autobrr/go-qbittorrent"
)

// Torrent is the descriptor the import pipeline needs.
type Torrent struct {
	Hash     string
	Name     string
	SavePath string
}

// Torrents lists finished downloads from a torrent client.
type Torrents interface {
	Completed(ctx context.Context, category string) ([]Torrent, error)
}

// Client talks to one qBittorrent instance.
type Client struct {
	qbt *qbt.Client
	log *slog.Logger
}

// Config for the qBittorrent connection.
type Config struct {
	URL      string
	Username string
	Password string
}

// NewClient connects and authenticates against qBittorrent.
func NewClient(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}

	client := qbt.NewClient(qbt.Config{
		Host:     cfg.URL,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  30,
	})

	if err := client.LoginCtx(ctx); err != nil {
		return nil, fmt.Errorf("qbittorrent login: %w", err)
	}

	log.Debug("qbittorrent client connected", "host", cfg.URL)
	return &Client{qbt: client, log: log}, nil
}

// Completed returns finished torrents, optionally limited to one
// category.
func (c *Client) Completed(ctx context.Context, category string) ([]Torrent, error) {
	opts := qbt.TorrentFilterOptions{Filter: qbt.TorrentFilterCompleted}
	if category != "" {
		opts.Category = category
	}

	list, err := c.qbt.GetTorrentsCtx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list completed torrents: %w", err)
	}

	torrents := make([]Torrent, 0, len(list))
	for _, t := range list {
		torrents = append(torrents, Torrent{
			Hash:     t.Hash,
			Name:     t.Name,
			SavePath: t.SavePath,
		})
	}
	return torrents, nil
}
