// Package mediatype maps filenames to MIME-style content types.
//
// Detection is by extension only, never by file contents: a file with a
// misleading extension will misclassify. The table is fixed so results
// do not depend on the platform's mime database.
package mediatype

import (
	"path/filepath"
	"strings"
)

// typeByExtension is the fixed extension table. Lookups lowercase the
// extension; the table keys are already lowercase.
var typeByExtension = map[string]string{
	// Video containers
	".mkv":  "video/x-matroska",
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".webm": "video/webm",
	".ts":   "video/mp2t",
	".flv":  "video/x-flv",

	// Text
	".srt": "text/plain",
	".sub": "text/plain",
	".txt": "text/plain",
	".nfo": "text/plain",

	// Archives and compression
	".zip": "application/zip",
	".rar": "application/vnd.rar",
	".7z":  "application/x-7z-compressed",
	".arc": "application/x-freearc",
	".bz":  "application/x-bzip",
	".bz2": "application/x-bzip2",
	".gz":  "application/gzip",
	".tgz": "application/gzip",
	".tar": "application/x-tar",

	// Common torrent payload noise
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".epub": "application/epub+zip",
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
}

// archiveTypes is the set of content types treated as extractable
// containers, including the legacy compressed-zip variants.
var archiveTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-compressed":     true,
	"application/vnd.rar":          true,
	"application/x-7z-compressed":  true,
	"application/x-freearc":        true,
	"application/x-bzip":           true,
	"application/x-bzip2":          true,
	"application/gzip":             true,
	"application/x-gzip":           true,
	"application/x-tar":            true,
}

// Detect returns the content type for a filename based on its
// extension. ok is false when the extension is unknown or absent.
func Detect(name string) (typ string, ok bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "", false
	}
	typ, ok = typeByExtension[ext]
	return typ, ok
}

// IsArchive reports whether the filename's detected content type is a
// recognized archive or compression container.
func IsArchive(name string) bool {
	typ, ok := Detect(name)
	return ok && archiveTypes[typ]
}

// IsVideo reports whether the filename's detected content type has the
// "video" major category.
func IsVideo(name string) bool {
	typ, ok := Detect(name)
	return ok && strings.HasPrefix(typ, "video/")
}
