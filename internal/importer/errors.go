package importer

import "errors"

var (
	// ErrSourceNotFound indicates no download directory could be
	// resolved for a torrent title.
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrPathTraversal indicates a staged path would escape its root.
	ErrPathTraversal = errors.New("path traversal detected")
)
