package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// LinkOutcome describes how a file landed at its destination.
type LinkOutcome int

const (
	// OutcomeLinked means the destination is a hardlink to the source.
	OutcomeLinked LinkOutcome = iota
	// OutcomeCopied means hardlinking failed and the destination is an
	// independent copy.
	OutcomeCopied
	// OutcomeConflict means the destination reappeared between removal
	// and linking; the file was abandoned.
	OutcomeConflict
)

func (o LinkOutcome) String() string {
	switch o {
	case OutcomeLinked:
		return "linked"
	case OutcomeCopied:
		return "copied"
	case OutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// LinkResult is the outcome of importing one file.
type LinkResult struct {
	Source  string
	Dest    string
	Outcome LinkOutcome
	Size    int64 // bytes at the destination; 0 on conflict or error
	Err     error
}

// Failed reports whether the destination was not produced.
func (r LinkResult) Failed() bool {
	return r.Err != nil || r.Outcome == OutcomeConflict
}

// test hook for forcing hardlink failure
var osLink = os.Link

// Link places src at dst as a hardlink, falling back to a full copy
// when linking fails (typically a cross-device destination). An
// existing destination file is removed first. The remove-then-link
// sequence is not atomic; callers must serialize writers per path.
func Link(dst, src string, log *slog.Logger) LinkResult {
	if log == nil {
		log = slog.Default()
	}
	res := LinkResult{Source: src, Dest: dst}

	if _, err := os.Lstat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			res.Err = fmt.Errorf("remove existing destination: %w", err)
			return res
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		res.Err = fmt.Errorf("create destination directory: %w", err)
		return res
	}

	err := osLink(src, dst)
	if err == nil {
		res.Outcome = OutcomeLinked
		if info, statErr := os.Stat(dst); statErr == nil {
			res.Size = info.Size()
		}
		return res
	}

	if errors.Is(err, fs.ErrExist) {
		// Something recreated the destination between remove and link.
		log.Error("destination reappeared, abandoning file", "dest", dst)
		res.Outcome = OutcomeConflict
		return res
	}

	log.Warn("hardlink failed, copying instead", "src", src, "dest", dst, "error", err)
	size, err := copyFile(src, dst)
	if err != nil {
		res.Err = err
		return res
	}
	res.Outcome = OutcomeCopied
	res.Size = size
	return res
}

// copyFile copies src to dst, creating parent directories and syncing
// the result. A partial destination is removed on error.
func copyFile(src, dst string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}
	defer func() { _ = dstFile.Close() }()

	size, err := io.Copy(dstFile, srcFile)
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("copy content: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("sync: %w", err)
	}

	return size, nil
}
