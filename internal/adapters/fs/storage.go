// Package fs provides read-only file system adapters for the resolution engine.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSStorage implements ports.Storage using the host file system.
type OSStorage struct{}

// NewOSStorage creates a new OSStorage.
func NewOSStorage() *OSStorage {
	return &OSStorage{}
}

// Stat returns file info for the given path.
func (o *OSStorage) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSStorage) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- paths come from the load path and lock files
	return os.ReadFile(path)
}

// ReadDir lists the entries of a directory, sorted by name.
func (o *OSStorage) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// Canonical returns the absolute, symlink-free form of path.
func (o *OSStorage) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
