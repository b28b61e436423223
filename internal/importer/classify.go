package importer

import (
	"path/filepath"
	"strings"

	"github.com/vmunix/intake/internal/mediatype"
)

// Classified partitions a scanned file list. Videos and Subtitles are
// disjoint subsets of All, each preserving All's order. Files whose
// type is unknown, and known types that are neither video nor .srt
// text, appear only in All.
type Classified struct {
	Videos    []string
	Subtitles []string
	All       []string
}

// Classify partitions files into videos and subtitles by content type.
// Subtitles must have the "text" major type and exactly the ".srt"
// extension; the extension is compared case-sensitively as stored.
func Classify(files []string) Classified {
	c := Classified{All: files}

	for _, path := range files {
		typ, ok := mediatype.Detect(path)
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(typ, "video"):
			c.Videos = append(c.Videos, path)
		case strings.HasPrefix(typ, "text") && filepath.Ext(path) == ".srt":
			c.Subtitles = append(c.Subtitles, path)
		}
	}

	return c
}
