package domain

// Lockfile represents a parsed upstream lock snapshot.
// It is the frozen package universe the lock authority answers from.
type Lockfile struct {
	// ContentHash is the hash the lock file records for its manifest, if any.
	ContentHash string

	// Digest is the xxhash64 of the raw lock file bytes, hex-encoded.
	Digest string

	// Packages holds every locked package (including development packages) in file order.
	Packages []*Package
}
