package config

// fileConfig represents the structure of the depot.config.yaml file.
// Every key can also be set through a DEPOT_<KEY> environment variable.
type fileConfig struct {
	LoadPath    []string `mapstructure:"load_path"`
	CacheRoots  []string `mapstructure:"cache_roots"`
	BundledRoot string   `mapstructure:"bundled_root"`
	SourceExt   string   `mapstructure:"source_ext"`
	SlugHash    string   `mapstructure:"slug_hash"`
	Verbose     bool     `mapstructure:"verbose"`
	JSONLogs    bool     `mapstructure:"json_logs"`
}
