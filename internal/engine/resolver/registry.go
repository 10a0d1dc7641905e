package resolver

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry is the table of loaded packages shared by every resolution of a
// session. It starts empty, only grows, and is discarded with its Resolver;
// tests create a fresh one per case.
//
// The registry also tracks in-flight loads and which load waits on which.
// Both share the registry lock so the check-then-insert of a key is atomic.
type Registry struct {
	mu       sync.Mutex
	modules  map[domain.Key]*domain.Module
	inflight map[domain.Key]*call
	waits    map[domain.Key]map[domain.Key]int
}

// call is one in-flight load. done is closed once mod or err is set.
type call struct {
	id   domain.Identity
	done chan struct{}
	mod  *domain.Module
	err  error
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		modules:  make(map[domain.Key]*domain.Module),
		inflight: make(map[domain.Key]*call),
		waits:    make(map[domain.Key]map[domain.Key]int),
	}
}

// Lookup returns the loaded module for id, if any.
func (r *Registry) Lookup(id domain.Identity) (*domain.Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mod, ok := r.modules[id.Key()]
	return mod, ok
}

// Len returns the number of loaded modules.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.modules)
}

// Modules returns the loaded modules ordered by name, then key.
func (r *Registry) Modules() []*domain.Module {
	r.mu.Lock()
	mods := make([]*domain.Module, 0, len(r.modules))
	for _, mod := range r.modules {
		mods = append(mods, mod)
	}
	r.mu.Unlock()

	slices.SortFunc(mods, func(a, b *domain.Module) int {
		if c := strings.Compare(a.Identity.Name.String(), b.Identity.Name.String()); c != 0 {
			return c
		}
		return strings.Compare(a.Identity.Key().String(), b.Identity.Key().String())
	})
	return mods
}

// load returns the module for id, running fn at most once per key.
//
// owner is the key of the load requesting id, or nil for a top-level request.
// While the request is pending the registry records that owner waits on id; a
// request that would close a cycle of waiting loads fails with
// ErrCyclicDependency instead of blocking.
func (r *Registry) load(
	ctx context.Context,
	owner *domain.Key,
	id domain.Identity,
	fn func() (*domain.Module, error),
) (*domain.Module, error) {
	key := id.Key()

	r.mu.Lock()
	if mod, ok := r.modules[key]; ok {
		r.mu.Unlock()
		return mod, nil
	}

	if owner != nil {
		r.addWait(*owner, key)
		if cycle, ok := r.pathLocked(key, *owner); ok {
			r.removeWait(*owner, key)
			err := r.cycleErrorLocked(id, append(cycle, key))
			r.mu.Unlock()
			return nil, err
		}
	}

	if c, ok := r.inflight[key]; ok {
		r.mu.Unlock()

		select {
		case <-c.done:
		case <-ctx.Done():
			r.release(owner, key)
			return nil, ctx.Err()
		}

		r.release(owner, key)
		return c.mod, c.err
	}

	c := &call{id: id, done: make(chan struct{})}
	r.inflight[key] = c
	r.mu.Unlock()

	mod, err := protect(id, fn)

	r.mu.Lock()
	delete(r.inflight, key)
	if err == nil {
		r.modules[key] = mod
	}
	if owner != nil {
		r.removeWait(*owner, key)
	}
	c.mod, c.err = mod, err
	close(c.done)
	r.mu.Unlock()

	return mod, err
}

// protect runs fn, turning a panic into an error so the in-flight marker is
// always cleared and waiters are released.
func protect(id domain.Identity, fn func() (*domain.Module, error)) (mod *domain.Module, err error) {
	defer func() {
		if p := recover(); p != nil {
			mod = nil
			err = zerr.With(zerr.Wrap(domain.ErrLoaderPanicked, fmt.Sprint(p)), "package", id.String())
		}
	}()
	return fn()
}

func (r *Registry) release(owner *domain.Key, key domain.Key) {
	if owner == nil {
		return
	}
	r.mu.Lock()
	r.removeWait(*owner, key)
	r.mu.Unlock()
}

func (r *Registry) addWait(from, to domain.Key) {
	edges, ok := r.waits[from]
	if !ok {
		edges = make(map[domain.Key]int)
		r.waits[from] = edges
	}
	edges[to]++
}

func (r *Registry) removeWait(from, to domain.Key) {
	edges := r.waits[from]
	if edges[to] <= 1 {
		delete(edges, to)
	} else {
		edges[to]--
	}
	if len(edges) == 0 {
		delete(r.waits, from)
	}
}

// pathLocked returns a chain of waiting loads leading from src to dst.
func (r *Registry) pathLocked(src, dst domain.Key) ([]domain.Key, bool) {
	visited := make(map[domain.Key]bool)
	var walk func(k domain.Key) ([]domain.Key, bool)
	walk = func(k domain.Key) ([]domain.Key, bool) {
		if k == dst {
			return []domain.Key{k}, true
		}
		if visited[k] {
			return nil, false
		}
		visited[k] = true
		for _, next := range sortedKeys(r.waits[k]) {
			if rest, ok := walk(next); ok {
				return append([]domain.Key{k}, rest...), true
			}
		}
		return nil, false
	}
	return walk(src)
}

func (r *Registry) cycleErrorLocked(id domain.Identity, cycle []domain.Key) error {
	names := make([]string, 0, len(cycle))
	for _, k := range cycle {
		if c, ok := r.inflight[k]; ok {
			names = append(names, c.id.Name.String())
		} else if k == id.Key() {
			names = append(names, id.Name.String())
		} else {
			names = append(names, k.String())
		}
	}
	err := zerr.With(zerr.Wrap(domain.ErrCyclicDependency, "package requires itself through its dependencies"), "package", id.String())
	return zerr.With(err, "cycle", strings.Join(names, " -> "))
}

func sortedKeys(m map[domain.Key]int) []domain.Key {
	keys := make([]domain.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b domain.Key) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}
