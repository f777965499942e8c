package download

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Existing is a case-insensitive index of the entries of one directory, so
// DSC001.ARW on disk shadows a remote dsc001.arw on case-sensitive
// filesystems too.
type Existing map[string]struct{}

// ListExisting reads dir once. A missing directory yields an empty index.
func ListExisting(dir string) (Existing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Existing{}, nil
		}
		return nil, err
	}
	idx := make(Existing, len(entries))
	for _, e := range entries {
		idx[strings.ToLower(e.Name())] = struct{}{}
	}
	return idx, nil
}

// Has reports whether the base name of path was listed, ignoring case.
func (e Existing) Has(path string) bool {
	_, ok := e[strings.ToLower(filepath.Base(path))]
	return ok
}
