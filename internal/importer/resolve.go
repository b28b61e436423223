package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmunix/intake/pkg/title"
)

// ResolveSource maps a torrent title to its directory under downloadDir.
// The exact join is preferred; when it does not exist the title is
// fuzzy-matched against the immediate subdirectories, which covers
// clients that mangle release names (spaces vs dots, stripped tags).
// Only a medium-or-better match is accepted.
func (i *Importer) ResolveSource(torrentTitle string) (string, error) {
	exact := filepath.Join(i.downloadDir, torrentTitle)
	if info, err := os.Stat(exact); err == nil && info.IsDir() {
		return exact, nil
	}

	entries, err := os.ReadDir(i.downloadDir)
	if err != nil {
		return "", fmt.Errorf("read downloads directory: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			candidates = append(candidates, entry.Name())
		}
	}

	match := title.Match(torrentTitle, candidates)
	if match.Confidence < title.ConfidenceMedium {
		return "", fmt.Errorf("%w: %q in %s", ErrSourceNotFound, torrentTitle, i.downloadDir)
	}

	i.log.Debug("fuzzy-matched source directory",
		"title", torrentTitle, "dir", match.Candidate, "score", match.Score)
	return filepath.Join(i.downloadDir, match.Candidate), nil
}
