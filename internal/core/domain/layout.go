package domain

import "path/filepath"

const (
	// UplockDirName is the name of the internal working directory.
	UplockDirName = ".uplock"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// LocksDirName is the name of the remote lock file cache directory.
	LocksDirName = "locks"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "uplock.yaml"

	// EnvLockFile names the upstream lock file path or URL.
	EnvLockFile = "COMPOSER_UPSTREAM_LOCK_FILE"

	// EnvAllowHTTP enables fetching the upstream lock file over the network.
	EnvAllowHTTP = "COMPOSER_UPSTREAM_LOCK_ALLOW_HTTP"

	// EnvOffline restricts remote lock files to the local cache.
	EnvOffline = "UPLOCK_OFFLINE"

	// EnvLogLevel sets the diagnostic log level.
	EnvLogLevel = "UPLOCK_LOG_LEVEL"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultLockCachePath returns the default path for cached remote lock files.
// It joins .uplock, cache, and locks.
func DefaultLockCachePath() string {
	return filepath.Join(UplockDirName, CacheDirName, LocksDirName)
}
