package domain

import "go.trai.ch/zerr"

var (
	// ErrLockInconsistency is returned when a package in the upstream lock file requires something
	// that neither a locked package nor any locked provider satisfies.
	ErrLockInconsistency = zerr.New("upstream lock file is inconsistent")

	// ErrInternalConsistency is returned when the lock provider index names a package that the
	// lock package index does not contain.
	ErrInternalConsistency = zerr.New("upstream lock repository is internally inconsistent")

	// ErrPackageNotFound is returned when a requested package is not present.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrLockReadFailed is returned when the upstream lock file cannot be read.
	ErrLockReadFailed = zerr.New("failed to read upstream lock file")

	// ErrLockParseFailed is returned when the upstream lock file cannot be parsed.
	ErrLockParseFailed = zerr.New("failed to parse upstream lock file")

	// ErrLockFetchFailed is returned when a remote upstream lock file cannot be fetched.
	ErrLockFetchFailed = zerr.New("failed to fetch upstream lock file")

	// ErrRemoteLockDisallowed is returned when the lock file is a URL but network retrieval is not enabled.
	ErrRemoteLockDisallowed = zerr.New(
		"remote upstream lock file requires COMPOSER_UPSTREAM_LOCK_ALLOW_HTTP to be set",
	)

	// ErrLockCacheMiss is returned in offline mode when no cached copy of a remote lock file exists.
	ErrLockCacheMiss = zerr.New("no cached copy of remote upstream lock file")

	// ErrLockCacheWriteFailed is returned when a fetched lock file cannot be written to the cache.
	ErrLockCacheWriteFailed = zerr.New("failed to write upstream lock file cache")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidLogLevel is returned when the configured log level is unknown.
	ErrInvalidLogLevel = zerr.New("invalid log level, expected one of debug, info, warn, error")

	// ErrPoolReadFailed is returned when the pool snapshot cannot be read.
	ErrPoolReadFailed = zerr.New("failed to read pool snapshot")

	// ErrPoolParseFailed is returned when the pool snapshot cannot be parsed.
	ErrPoolParseFailed = zerr.New("failed to parse pool snapshot")

	// ErrUnknownRepositoryKind is returned when a pool repository declares an unknown type.
	ErrUnknownRepositoryKind = zerr.New("unknown repository type, expected root, platform or remote")

	// ErrReportWriteFailed is returned when the overlay report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write report")

	// ErrUnknownReportFormat is returned when an unsupported report format is requested.
	ErrUnknownReportFormat = zerr.New("unknown report format, expected text, json or yaml")

	// ErrOverlayFailed is returned when applying the upstream lock to the pool fails.
	ErrOverlayFailed = zerr.New("overlay failed")

	// ErrVerifyFailed is returned when auditing the upstream lock file finds inconsistencies.
	ErrVerifyFailed = zerr.New("upstream lock file verification failed")

	// ErrNoLockConfigured is returned by operations that need an upstream lock file when none is set.
	ErrNoLockConfigured = zerr.New("no upstream lock file configured")
)
