// Package slug derives the short content-addressed directory names under which
// installed packages live, and searches cache roots for them.
package slug

import (
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Length is the number of characters in a slug.
const Length = 5

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Hasher combines a package id and a content hash into a single integer.
// It must be a pure function: equal inputs always yield equal slugs.
type Hasher func(id uuid.UUID, hash []byte) uint64

// Slug returns the slug of (id, hash).
func (h Hasher) Slug(id uuid.UUID, hash []byte) string {
	return Encode(h(id, hash), Length)
}

// CRC32C checksums the id as a little-endian 128-bit integer, then continues
// the checksum over the content hash.
func CRC32C(id uuid.UUID, hash []byte) uint64 {
	var le [16]byte
	for i, b := range id {
		le[len(le)-1-i] = b
	}
	crc := crc32.Checksum(le[:], castagnoli)
	return uint64(crc32.Update(crc, castagnoli, hash))
}

// XXHash hashes the id bytes followed by the content hash with xxhash64.
func XXHash(id uuid.UUID, hash []byte) uint64 {
	d := xxhash.New()
	_, _ = d.Write(id[:])
	_, _ = d.Write(hash)
	return d.Sum64()
}

// HasherFor returns the Hasher selected by name.
func HasherFor(name domain.SlugHash) (Hasher, error) {
	switch name {
	case domain.SlugHashCRC32C, "":
		return CRC32C, nil
	case domain.SlugHashXXHash:
		return XXHash, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSlugHash, "unknown slug hash"), "slug_hash", string(name))
	}
}

// Encode renders the n least significant base-62 digits of x, least significant first.
func Encode(x uint64, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[x%uint64(len(alphabet))]
		x /= uint64(len(alphabet))
	}
	return string(buf)
}
