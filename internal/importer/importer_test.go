package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeZip writes a zip archive at path containing the given entries.
func makeZip(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	writeFile(t, path, buf.Bytes())
}

func TestProcessDir_ZipWithVideo(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "release.zip")
	makeZip(t, zipPath, map[string][]byte{"episode.mkv": []byte("mkv bytes")})

	imp := New(Config{DownloadDir: dir}, nil)
	c, err := imp.ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	extracted := filepath.Join(dir, "episode.mkv")
	assert.Equal(t, []string{extracted}, c.Videos)
	assert.Empty(t, c.Subtitles)

	// The archive stays on disk and is listed, but never classified.
	assert.Contains(t, c.All, zipPath)
	assert.Contains(t, c.All, extracted)
	assert.NotContains(t, c.Videos, zipPath)

	got, err := os.ReadFile(extracted)
	require.NoError(t, err)
	assert.Equal(t, []byte("mkv bytes"), got)
}

func TestProcessDir_CorruptArchiveDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.zip"), []byte("this is not a zip"))
	makeZip(t, filepath.Join(dir, "good.zip"), map[string][]byte{"movie.mp4": []byte("v")})

	imp := New(Config{DownloadDir: dir}, nil)
	c, err := imp.ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "movie.mp4")}, c.Videos)
	assert.Contains(t, c.All, filepath.Join(dir, "broken.zip"))
}

func TestProcessDir_SinglePassLeavesNestedArchive(t *testing.T) {
	dir := t.TempDir()

	// inner.zip holds the video; outer.zip holds inner.zip.
	var inner bytes.Buffer
	w := zip.NewWriter(&inner)
	f, err := w.Create("episode.mkv")
	require.NoError(t, err)
	_, err = f.Write([]byte("v"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	makeZip(t, filepath.Join(dir, "outer.zip"), map[string][]byte{"inner.zip": inner.Bytes()})

	imp := New(Config{DownloadDir: dir, UnpackPasses: 1}, nil)
	c, err := imp.ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	// One pass unpacks outer.zip only.
	assert.Empty(t, c.Videos)
	assert.Contains(t, c.All, filepath.Join(dir, "inner.zip"))
}

func TestProcessDir_MultiPassUnpacksNestedArchive(t *testing.T) {
	dir := t.TempDir()

	var inner bytes.Buffer
	w := zip.NewWriter(&inner)
	f, err := w.Create("episode.mkv")
	require.NoError(t, err)
	_, err = f.Write([]byte("v"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	makeZip(t, filepath.Join(dir, "outer.zip"), map[string][]byte{"inner.zip": inner.Bytes()})

	imp := New(Config{DownloadDir: dir, UnpackPasses: 3}, nil)
	c, err := imp.ProcessDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "episode.mkv")}, c.Videos)
}

func TestProcessDir_MissingDirectory(t *testing.T) {
	imp := New(Config{DownloadDir: t.TempDir()}, nil)
	_, err := imp.ProcessDir(context.Background(), filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
}

func TestProcess_ResolvesTitle(t *testing.T) {
	dlDir := t.TempDir()
	src := filepath.Join(dlDir, "Some.Show.S01E01.1080p")
	writeFile(t, filepath.Join(src, "episode.mkv"), []byte("v"))
	writeFile(t, filepath.Join(src, "episode.srt"), []byte("s"))

	imp := New(Config{DownloadDir: dlDir}, nil)
	c, err := imp.Process(context.Background(), "Some.Show.S01E01.1080p")
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(src, "episode.mkv")}, c.Videos)
	assert.Equal(t, []string{filepath.Join(src, "episode.srt")}, c.Subtitles)
}

func TestStage(t *testing.T) {
	srcDir := t.TempDir()
	staging := t.TempDir()

	writeFile(t, filepath.Join(srcDir, "episode.mkv"), []byte("video"))
	writeFile(t, filepath.Join(srcDir, "subs", "episode.srt"), []byte("subtitle"))
	writeFile(t, filepath.Join(srcDir, "notes.nfo"), []byte("ignored"))

	imp := New(Config{DownloadDir: srcDir}, nil)
	files, err := ListFiles(srcDir)
	require.NoError(t, err)
	c := Classify(files)

	results := imp.Stage(&c, srcDir, staging)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.False(t, res.Failed(), "stage %s: %v", res.Source, res.Err)
	}

	got, err := os.ReadFile(filepath.Join(staging, "episode.mkv"))
	require.NoError(t, err)
	assert.Equal(t, []byte("video"), got)

	// Relative layout is preserved.
	got, err = os.ReadFile(filepath.Join(staging, "subs", "episode.srt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("subtitle"), got)

	// Non-media files are not staged.
	_, err = os.Stat(filepath.Join(staging, "notes.nfo"))
	assert.True(t, os.IsNotExist(err))
}
