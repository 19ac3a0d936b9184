package domain

import "strings"

// Config holds the settings that control the overlay.
// It is built once per invocation and passed explicitly to the engine.
type Config struct {
	// LockFile is the path or URL of the upstream lock file. Empty disables the overlay.
	LockFile string

	// AllowHTTP permits fetching LockFile over the network.
	AllowHTTP bool

	// Offline restricts remote lock files to the local cache.
	Offline bool

	// CacheDir is where fetched remote lock files are cached.
	CacheDir string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Enabled reports whether an upstream lock file is configured.
func (c Config) Enabled() bool {
	return c.LockFile != ""
}

// IsRemote reports whether the lock file is addressed by an http(s) URL.
func (c Config) IsRemote() bool {
	lower := strings.ToLower(c.LockFile)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
