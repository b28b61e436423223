package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/vmunix/intake/internal/archive"
)

// Config for the importer. The downloads directory is injected here
// rather than read from any global state.
type Config struct {
	// DownloadDir is the base directory completed torrents land in.
	DownloadDir string

	// UnpackPasses bounds how many expand-rescan rounds Process runs.
	// 1 (the default) unpacks top-level archives only; higher values
	// also unpack archives revealed by earlier passes.
	UnpackPasses int
}

// MaxUnpackPasses caps UnpackPasses so a pathological archive chain
// cannot loop forever.
const MaxUnpackPasses = 5

// Importer turns a completed download directory into classified,
// stageable file lists.
type Importer struct {
	downloadDir  string
	unpackPasses int
	expander     *archive.Expander
	log          *slog.Logger
}

// New creates an importer.
func New(cfg Config, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	passes := cfg.UnpackPasses
	if passes < 1 {
		passes = 1
	}
	if passes > MaxUnpackPasses {
		passes = MaxUnpackPasses
	}
	return &Importer{
		downloadDir:  cfg.DownloadDir,
		unpackPasses: passes,
		expander:     archive.NewExpander(log.With("component", "expander")),
		log:          log,
	}
}

// Process resolves the torrent title to a source directory and runs
// the import pipeline over it.
func (i *Importer) Process(ctx context.Context, torrentTitle string) (*Classified, error) {
	dir, err := i.ResolveSource(torrentTitle)
	if err != nil {
		return nil, err
	}
	return i.ProcessDir(ctx, dir)
}

// ProcessDir runs scan, archive expansion, re-scan, and classification
// over one directory. Everything is sequential; per-archive extraction
// failures are logged and skipped, while a scan failure aborts the
// whole operation. The source archives stay on disk, so they appear in
// the returned All list.
//
// Concurrent calls against the same directory race; callers serialize
// per-directory access.
func (i *Importer) ProcessDir(ctx context.Context, dir string) (*Classified, error) {
	i.log.Info("import started", "dir", dir)

	files, err := ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	i.log.Debug("scanned download directory", "dir", dir, "files", len(files))

	attempted := make(map[string]bool)
	for pass := 1; pass <= i.unpackPasses; pass++ {
		var fresh []string
		for _, f := range files {
			if !attempted[f] {
				attempted[f] = true
				fresh = append(fresh, f)
			}
		}

		extracted := 0
		for _, res := range i.expander.Expand(ctx, fresh) {
			if res.Extracted {
				extracted++
			}
		}
		if extracted == 0 {
			break
		}

		// Pick up whatever extraction produced.
		files, err = ListFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("rescan %s: %w", dir, err)
		}
		i.log.Debug("rescanned after extraction", "pass", pass, "files", len(files))
	}

	c := Classify(files)
	i.log.Info("import classified", "dir", dir,
		"files", len(c.All), "videos", len(c.Videos), "subtitles", len(c.Subtitles))
	return &c, nil
}

// Stage links every classified video and subtitle into destRoot,
// keeping each file's path relative to srcDir. Hardlinks are used when
// possible, with a copy fallback. Per-file failures are logged and
// reported in the results; they do not stop the batch.
func (i *Importer) Stage(c *Classified, srcDir, destRoot string) []LinkResult {
	var results []LinkResult

	for _, src := range append(append([]string{}, c.Videos...), c.Subtitles...) {
		rel, err := filepath.Rel(srcDir, src)
		if err != nil || strings.HasPrefix(rel, "..") {
			results = append(results, LinkResult{
				Source: src,
				Err:    fmt.Errorf("%w: %s outside %s", ErrPathTraversal, src, srcDir),
			})
			continue
		}

		res := Link(filepath.Join(destRoot, rel), src, i.log)
		if res.Failed() {
			i.log.Error("stage failed", "src", src, "dest", res.Dest,
				"outcome", res.Outcome, "error", res.Err)
		} else {
			i.log.Debug("staged file", "src", src, "dest", res.Dest, "outcome", res.Outcome)
		}
		results = append(results, res)
	}

	return results
}
