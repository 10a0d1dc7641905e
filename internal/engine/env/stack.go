package env

import (
	"strconv"

	"github.com/google/uuid"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// Stack is an ordered list of environments. Every operation answers from the
// first environment that knows the answer.
type Stack struct {
	envs []ports.Environment
}

// NewStack creates a Stack searched in the given order.
func NewStack(envs ...ports.Environment) *Stack {
	return &Stack{envs: append([]ports.Environment(nil), envs...)}
}

// Environments returns the stacked environments in search order.
func (s *Stack) Environments() []ports.Environment {
	return append([]ports.Environment(nil), s.envs...)
}

// ResolveRoot binds a top-level name in the first environment defining it.
func (s *Stack) ResolveRoot(name string) (domain.Identity, bool) {
	for _, env := range s.envs {
		if id, ok := env.ResolveRoot(name); ok {
			return id, true
		}
	}
	return domain.Identity{}, false
}

// ResolveInContext asks each environment in turn. The first environment that
// knows the context answers, including when it answers LookupMissing.
func (s *Stack) ResolveInContext(ctxID uuid.UUID, name string) (domain.Identity, domain.Lookup) {
	for _, env := range s.envs {
		if id, res := env.ResolveInContext(ctxID, name); res != domain.LookupUnknown {
			return id, res
		}
	}
	return domain.Identity{}, domain.LookupUnknown
}

// Locate returns the entry file from the first environment that can locate id.
func (s *Stack) Locate(id domain.Identity) (string, bool) {
	for _, env := range s.envs {
		if path, ok := env.Locate(id); ok {
			return path, true
		}
	}
	return "", false
}

// Roots merges the roots of all environments. Earlier environments shadow
// later ones by name.
func (s *Stack) Roots() []domain.Identity {
	merged := make(map[string]domain.Identity)
	for _, env := range s.envs {
		for _, id := range env.Roots() {
			if _, seen := merged[id.Name.String()]; !seen {
				merged[id.Name.String()] = id
			}
		}
	}
	return sortedIdentities(merged)
}

// Dependencies answers from the first environment that knows the context.
func (s *Stack) Dependencies(ctxID uuid.UUID) ([]domain.Identity, domain.Lookup) {
	for _, env := range s.envs {
		if ids, res := env.Dependencies(ctxID); res != domain.LookupUnknown {
			return ids, res
		}
	}
	return nil, domain.LookupUnknown
}

// Describe returns a short human-readable description.
func (s *Stack) Describe() string {
	return "stack of " + strconv.Itoa(len(s.envs)) + " environments"
}
