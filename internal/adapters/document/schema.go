package document

// descriptorDTO represents the structure of a depot.toml / depot.yaml project descriptor.
type descriptorDTO struct {
	Name         string            `toml:"name" yaml:"name"`
	ID           string            `toml:"id" yaml:"id"`
	Version      string            `toml:"version" yaml:"version"`
	Dependencies map[string]string `toml:"dependencies" yaml:"dependencies"`
}

// lockDTO represents the structure of a depot-lock.toml / depot-lock.yaml file.
type lockDTO struct {
	Format   int                    `toml:"format" yaml:"format"`
	Packages map[string][]stanzaDTO `toml:"packages" yaml:"packages"`
}

// stanzaDTO represents one locked package.
// Dependencies is either a list of sibling names or a name to id table.
type stanzaDTO struct {
	ID           string `toml:"id" yaml:"id"`
	Path         string `toml:"path" yaml:"path"`
	ContentHash  string `toml:"content_hash" yaml:"content_hash"`
	Version      string `toml:"version" yaml:"version"`
	Dependencies any    `toml:"dependencies" yaml:"dependencies"`
}

// currentLockFormat is the newest lock format this reader understands.
const currentLockFormat = 1
