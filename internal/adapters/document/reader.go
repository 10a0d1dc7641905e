// Package document reads project descriptors and lock files.
package document

import (
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Reader implements ports.ManifestReader on top of a ports.Storage.
// Each document is parsed at most once per Reader.
type Reader struct {
	storage ports.Storage

	group       singleflight.Group
	mu          sync.RWMutex
	descriptors map[string]*domain.Descriptor
	locks       map[string]*domain.LockGraph
}

// NewReader creates a new Reader backed by the given storage.
func NewReader(storage ports.Storage) *Reader {
	return &Reader{
		storage:     storage,
		descriptors: make(map[string]*domain.Descriptor),
		locks:       make(map[string]*domain.LockGraph),
	}
}

// ReadDescriptor parses the descriptor at path.
func (r *Reader) ReadDescriptor(path string) (*domain.Descriptor, error) {
	r.mu.RLock()
	cached, ok := r.descriptors[path]
	r.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	v, err, _ := r.group.Do("descriptor:"+path, func() (any, error) {
		data, err := r.read(path)
		if err != nil {
			return nil, err
		}
		d, err := parseDescriptor(path, data)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.descriptors[path] = d
		r.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Descriptor).Clone(), nil
}

// ReadLock parses and cross-references the lock file at path.
func (r *Reader) ReadLock(path string) (*domain.LockGraph, error) {
	r.mu.RLock()
	cached, ok := r.locks[path]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := r.group.Do("lock:"+path, func() (any, error) {
		data, err := r.read(path)
		if err != nil {
			return nil, err
		}
		g, err := parseLock(path, data)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.locks[path] = g
		r.mu.Unlock()
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.LockGraph), nil
}

func (r *Reader) read(path string) ([]byte, error) {
	data, err := r.storage.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDocumentReadFailed.Error()), "path", path)
	}
	return data, nil
}

func parseDescriptor(path string, data []byte) (*domain.Descriptor, error) {
	var dto descriptorDTO
	if err := decode(path, data, &dto); err != nil {
		return nil, err
	}

	d := &domain.Descriptor{
		Path:         path,
		Name:         dto.Name,
		Version:      dto.Version,
		Dependencies: make(map[string]uuid.UUID, len(dto.Dependencies)),
	}

	if dto.ID != "" {
		id, err := uuid.Parse(dto.ID)
		if err != nil {
			return nil, zerr.With(malformed(domain.ErrMalformedDescriptor, path, "invalid id"), "id", dto.ID)
		}
		d.ID = id
	}
	if d.ID != uuid.Nil && d.Name == "" {
		return nil, malformed(domain.ErrMalformedDescriptor, path, "id declared without a name")
	}

	for name, raw := range dto.Dependencies {
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			err := zerr.With(malformed(domain.ErrMalformedDescriptor, path, "invalid dependency id"), "dependency", name)
			return nil, zerr.With(err, "id", raw)
		}
		d.Dependencies[name] = id
	}

	return d, nil
}

func parseLock(path string, data []byte) (*domain.LockGraph, error) {
	var dto lockDTO
	if err := decode(path, data, &dto); err != nil {
		return nil, err
	}

	format := dto.Format
	if format == 0 {
		format = currentLockFormat
	}
	if format > currentLockFormat {
		return nil, zerr.With(malformed(domain.ErrMalformedLock, path, "unsupported lock format"), "format", format)
	}

	var stanzas []domain.LockStanza
	for _, name := range slices.Sorted(maps.Keys(dto.Packages)) {
		for i, sd := range dto.Packages[name] {
			st, err := parseStanza(path, name, sd)
			if err != nil {
				return nil, zerr.With(err, "stanza", fmt.Sprintf("%s[%d]", name, i))
			}
			stanzas = append(stanzas, st)
		}
	}

	return domain.NewLockGraph(path, format, stanzas)
}

func parseStanza(path, name string, sd stanzaDTO) (domain.LockStanza, error) {
	st := domain.LockStanza{Name: name}

	if sd.ID != "" {
		id, err := uuid.Parse(sd.ID)
		if err != nil {
			return st, zerr.With(malformed(domain.ErrMalformedLock, path, "invalid stanza id"), "id", sd.ID)
		}
		st.ID = id
	}

	switch {
	case sd.Path != "" && sd.ContentHash != "":
		return st, malformed(domain.ErrMalformedLock, path, "stanza has both path and content_hash")
	case sd.Path != "":
		st.Location = domain.PathLocation(sd.Path)
	case sd.ContentHash != "":
		hash, err := hex.DecodeString(sd.ContentHash)
		if err != nil {
			return st, zerr.With(malformed(domain.ErrMalformedLock, path, "invalid content_hash"), "content_hash", sd.ContentHash)
		}
		st.Location = domain.HashLocation(hash, sd.Version)
	default:
		st.Location = domain.LocationEntry{Kind: domain.LocationBundled}
	}
	st.Location.Version = sd.Version

	switch deps := sd.Dependencies.(type) {
	case nil:
	case []any:
		for _, dep := range deps {
			s, ok := dep.(string)
			if !ok {
				return st, malformed(domain.ErrMalformedLock, path, "dependency list entries must be names")
			}
			st.DepNames = append(st.DepNames, s)
		}
	case map[string]any:
		st.Deps = make(map[string]uuid.UUID, len(deps))
		for dep, raw := range deps {
			s, _ := raw.(string)
			id, err := uuid.Parse(s)
			if err != nil {
				err := zerr.With(malformed(domain.ErrMalformedLock, path, "invalid dependency id"), "dependency", dep)
				return st, zerr.With(err, "id", fmt.Sprint(raw))
			}
			st.Deps[dep] = id
		}
	default:
		return st, malformed(domain.ErrMalformedLock, path, "dependencies must be a list or a table")
	}

	return st, nil
}

func malformed(sentinel error, path, msg string) error {
	return zerr.With(zerr.Wrap(sentinel, msg), "path", path)
}
