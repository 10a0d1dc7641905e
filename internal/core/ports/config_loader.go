package ports

import "go.trai.ch/depot/internal/core/domain"

// ConfigOverrides carries command line values that take precedence over the
// config file and the environment.
type ConfigOverrides struct {
	ConfigFile string
	LoadPath   []string
	CacheRoots []string
	Verbose    bool
	JSONLogs   bool
}

// ConfigLoader defines the interface for loading the engine configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	Load(cwd string, overrides ConfigOverrides) (*domain.Config, error)
}
