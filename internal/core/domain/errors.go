package domain

import "go.trai.ch/zerr"

var (
	// ErrNameNotFound is returned when a name is absent from the roots or graph view of a context.
	ErrNameNotFound = zerr.New("package name not found")

	// ErrLocationNotFound is returned when an identity resolved but no on-disk entry file exists.
	ErrLocationNotFound = zerr.New("package location not found")

	// ErrCyclicDependency is returned when a package re-enters resolution while its own load is in flight.
	ErrCyclicDependency = zerr.New("cyclic dependency")

	// ErrMalformedDescriptor is returned when a project descriptor violates its schema.
	ErrMalformedDescriptor = zerr.New("malformed descriptor")

	// ErrMalformedLock is returned when a lock file violates its schema or cross references.
	ErrMalformedLock = zerr.New("malformed lock file")

	// ErrLoadFailed is returned when the loader fails to materialize a located package.
	ErrLoadFailed = zerr.New("failed to load package")

	// ErrLoaderPanicked is returned when the loader panics while materializing a package.
	ErrLoaderPanicked = zerr.New("loader panicked")

	// ErrUnsupportedDocument is returned when no decoder handles a document's extension.
	ErrUnsupportedDocument = zerr.New("unsupported document format")

	// ErrDocumentReadFailed is returned when a descriptor or lock file cannot be read.
	ErrDocumentReadFailed = zerr.New("failed to read document")

	// ErrDocumentParseFailed is returned when a descriptor or lock file cannot be decoded.
	ErrDocumentParseFailed = zerr.New("failed to parse document")

	// ErrEnvironmentScanFailed is returned when a directory environment cannot be listed.
	ErrEnvironmentScanFailed = zerr.New("failed to scan directory environment")

	// ErrProjectNotFound is returned when the active project cannot be found above the working directory.
	ErrProjectNotFound = zerr.New("could not find project descriptor")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidSlugHash is returned when the configured slug hash is unknown.
	ErrInvalidSlugHash = zerr.New("invalid slug hash, expected 'crc32c' or 'xxhash'")

	// ErrInvalidID is returned when a command line id is not a UUID.
	ErrInvalidID = zerr.New("invalid package id")

	// ErrInvalidContentHash is returned when a content hash is not hex encoded.
	ErrInvalidContentHash = zerr.New("invalid content hash")

	// ErrNoNamesSpecified is returned when a command requires package names and none were given.
	ErrNoNamesSpecified = zerr.New("no package names specified")
)
