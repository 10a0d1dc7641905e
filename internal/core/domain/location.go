package domain

import (
	"encoding/hex"
)

// LocationKind tags a LocationEntry.
type LocationKind uint8

const (
	// LocationBundled is a package shipped with the runtime; it has neither a
	// path nor a content hash.
	LocationBundled LocationKind = iota
	// LocationPath is an explicit path relative to the lock file.
	LocationPath
	// LocationContentHash is a slug-addressed installed package.
	LocationContentHash
)

// LocationEntry describes where a locked package lives.
type LocationEntry struct {
	Kind        LocationKind
	Path        string
	ContentHash []byte
	Version     string
}

// PathLocation builds an explicit path entry.
func PathLocation(path string) LocationEntry {
	return LocationEntry{Kind: LocationPath, Path: path}
}

// HashLocation builds a content hash entry.
func HashLocation(hash []byte, version string) LocationEntry {
	return LocationEntry{Kind: LocationContentHash, ContentHash: hash, Version: version}
}

// HashString returns the content hash as lowercase hex.
func (l LocationEntry) HashString() string {
	return hex.EncodeToString(l.ContentHash)
}
