package fs

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// MapStorage adapts an fs.FS (typically fstest.MapFS) to ports.Storage.
// Absolute paths are interpreted relative to Root.
type MapStorage struct {
	FS   fs.FS
	Root string
}

// NewMapStorage creates a new MapStorage with the given root path and filesystem.
func NewMapStorage(root string, fsys fs.FS) *MapStorage {
	return &MapStorage{
		FS:   fsys,
		Root: filepath.Clean(root),
	}
}

// Stat returns file info for the given path.
func (m *MapStorage) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the entire file at path.
func (m *MapStorage) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// ReadDir lists the entries of a directory, sorted by name.
func (m *MapStorage) ReadDir(path string) ([]fs.DirEntry, error) {
	return fs.ReadDir(m.FS, m.toRelPath(path))
}

// Canonical cleans path and anchors relative paths at Root.
// MapFS has no symlinks, so the cleaned path is already canonical.
func (m *MapStorage) Canonical(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.Root, path)
	}
	if _, err := m.Stat(path); err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

// toRelPath converts an absolute path to a slash-separated path within the filesystem.
// Paths outside the root are returned unchanged and fail downstream with fs.ErrInvalid.
func (m *MapStorage) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return filepath.ToSlash(filepath.Clean(absPath))
	}

	absPath = filepath.Clean(absPath)
	if absPath == m.Root {
		return "."
	}

	prefix := m.Root
	if prefix != string(filepath.Separator) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(absPath, prefix) {
		return absPath
	}

	return filepath.ToSlash(strings.TrimPrefix(absPath, prefix))
}
