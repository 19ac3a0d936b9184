// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/uplock/internal/core/domain"
)

// LockAuthority answers questions about the externally authoritative set of locked packages.
// Implementations are read-only after construction and must be deterministic.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_authority.go -destination=mocks/mock_lock_authority.go -package=mocks
type LockAuthority interface {
	// FindPackage returns the locked package called name whose version satisfies constraint.
	// The constraint "*" accepts any version. It returns nil when nothing matches.
	FindPackage(name, constraint string) *domain.Package

	// Providers returns the names of locked packages that declare they provide name,
	// in lock order. It returns nil when there are none.
	Providers(name string) []string

	// Packages returns every locked package in lock order.
	Packages() []*domain.Package
}

// LockSource constructs a LockAuthority from the configured upstream lock file.
//
// Implementations are responsible for:
//   - Reading a local lock file or fetching a remote one when permitted
//   - Parsing the lock format into packages and links
//   - Building the provider index
//
// Construction is the only potentially slow step of an overlay and happens once per invocation.
type LockSource interface {
	// Load reads cfg.LockFile and returns an authority over its packages.
	Load(ctx context.Context, cfg domain.Config) (LockAuthority, error)
}
