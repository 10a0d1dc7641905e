package domain

// SlugHash names the hash used to derive slugs.
type SlugHash string

const (
	// SlugHashCRC32C is the default slug hash.
	SlugHashCRC32C SlugHash = "crc32c"
	// SlugHashXXHash is the xxhash64 slug hash.
	SlugHashXXHash SlugHash = "xxhash"
)

// Valid reports whether h names a known hash.
func (h SlugHash) Valid() bool {
	return h == SlugHashCRC32C || h == SlugHashXXHash
}

// Config is the resolved engine configuration.
type Config struct {
	// LoadPath lists environment entries, highest precedence first.
	LoadPath []string

	// CacheRoots lists the directories searched for slug-addressed packages, in order.
	CacheRoots []string

	// BundledRoot holds packages locked without path or content hash.
	BundledRoot string

	// SourceExt is the entry file extension, without the dot.
	SourceExt string

	// SlugHash selects the slug hash.
	SlugHash SlugHash

	// Verbose enables debug logging.
	Verbose bool

	// JSONLogs switches the logger to JSON output.
	JSONLogs bool
}
