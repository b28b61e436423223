// Package importer processes a completed download directory: scan,
// unpack, classify, and stage files into the library layout.
package importer

import (
	"io/fs"
	"path/filepath"
)

// ListFiles returns every regular file under root at any depth.
// Directories and symlinks are skipped. Order follows directory
// iteration order and is not otherwise guaranteed.
//
// A missing or unreadable root fails the walk; that error propagates
// to the caller unwrapped by any per-file handling.
func ListFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
