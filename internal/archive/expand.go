// Package archive expands archive files in place inside a download
// directory.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"

	"github.com/vmunix/intake/internal/mediatype"
)

var (
	// ErrUnsupportedFormat indicates the file looked like an archive but
	// no extractor handles its format.
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrInsecurePath indicates an archive entry would escape the
	// output directory.
	ErrInsecurePath = errors.New("archive entry escapes output directory")
)

// Result records the outcome of one file in an Expand batch.
type Result struct {
	Path      string
	Extracted bool  // true when the file was an archive and unpacked
	Err       error // nil unless extraction was attempted and failed
}

// Expander unpacks recognized archives into their parent directories.
type Expander struct {
	log *slog.Logger
}

// NewExpander creates an expander.
func NewExpander(log *slog.Logger) *Expander {
	if log == nil {
		log = slog.Default()
	}
	return &Expander{log: log}
}

// Expand extracts every recognized archive in files into its own parent
// directory. Non-archives are passed over. A failed extraction is
// logged and recorded in its Result; it does not stop the batch.
// Archives are left on disk after extraction. A single call makes a
// single pass: archives revealed by extraction are not unpacked here.
func (e *Expander) Expand(ctx context.Context, files []string) []Result {
	results := make([]Result, 0, len(files))

	for _, path := range files {
		if !mediatype.IsArchive(path) {
			results = append(results, Result{Path: path})
			continue
		}

		outDir := filepath.Dir(path)
		e.log.Info("extracting archive", "path", path, "out_dir", outDir)

		if err := e.extract(ctx, path, outDir); err != nil {
			e.log.Error("extraction failed", "path", path, "error", err)
			results = append(results, Result{Path: path, Err: err})
			continue
		}

		results = append(results, Result{Path: path, Extracted: true})
	}

	return results
}

// extract unpacks a single archive into outDir. The format is chosen
// from the filename, matching the extension-based detection used to
// select the file in the first place.
func (e *Expander) extract(ctx context.Context, path, outDir string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	format, stream, err := archives.Identify(ctx, filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("identify %s: %w", filepath.Base(path), err)
	}

	switch format := format.(type) {
	case archives.Extractor:
		return format.Extract(ctx, stream, func(ctx context.Context, info archives.FileInfo) error {
			return e.writeEntry(outDir, info)
		})
	case archives.Decompressor:
		return e.decompress(format, stream, path, outDir)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// writeEntry writes one archive entry under outDir. Symlink entries are
// skipped; the import pipeline never follows links.
func (e *Expander) writeEntry(outDir string, info archives.FileInfo) error {
	name, err := secureJoin(outDir, info.NameInArchive)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return os.MkdirAll(name, 0o755)
	}
	if info.LinkTarget != "" {
		e.log.Debug("skipping link entry", "entry", info.NameInArchive)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("create entry directory: %w", err)
	}

	src, err := info.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", info.NameInArchive, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// decompress handles single-file compression formats (gz, bz2). The
// output keeps the archive's name with the compression suffix removed.
func (e *Expander) decompress(d archives.Decompressor, stream io.Reader, path, outDir string) error {
	rc, err := d.OpenReader(stream)
	if err != nil {
		return fmt.Errorf("open decompressor: %w", err)
	}
	defer func() { _ = rc.Close() }()

	dst, err := os.Create(filepath.Join(outDir, decompressedName(filepath.Base(path))))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, rc); err != nil {
		_ = os.Remove(dst.Name())
		return fmt.Errorf("decompress %s: %w", filepath.Base(path), err)
	}
	return nil
}

// decompressedName strips the compression suffix from a filename.
// "show.nfo.gz" becomes "show.nfo", "pack.tgz" becomes "pack.tar".
func decompressedName(base string) string {
	if strings.HasSuffix(strings.ToLower(base), ".tgz") {
		return base[:len(base)-len(".tgz")] + ".tar"
	}
	stripped := strings.TrimSuffix(base, filepath.Ext(base))
	if stripped == "" {
		return base + ".out"
	}
	return stripped
}

// secureJoin joins an archive entry name onto outDir, rejecting
// absolute names and parent-directory escapes.
func secureJoin(outDir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInsecurePath, name)
	}
	return filepath.Join(outDir, cleaned), nil
}
