package lockfile

import (
	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
)

var _ ports.LockAuthority = (*Repository)(nil)

// Repository is a read-only lock authority over a parsed lock file.
type Repository struct {
	lock      *domain.Lockfile
	byName    map[string][]*domain.Package
	providers map[string][]string
}

// NewRepository indexes the packages of lock by name and by provided name.
func NewRepository(lock *domain.Lockfile) *Repository {
	r := &Repository{
		lock:      lock,
		byName:    make(map[string][]*domain.Package, len(lock.Packages)),
		providers: make(map[string][]string),
	}

	seen := make(map[string]map[string]struct{})
	for _, pkg := range lock.Packages {
		r.byName[pkg.Name] = append(r.byName[pkg.Name], pkg)

		for _, link := range pkg.Provides {
			names, ok := seen[link.Target]
			if !ok {
				names = make(map[string]struct{})
				seen[link.Target] = names
			}
			if _, dup := names[pkg.Name]; dup {
				continue
			}
			names[pkg.Name] = struct{}{}
			r.providers[link.Target] = append(r.providers[link.Target], pkg.Name)
		}
	}

	return r
}

// FindPackage returns the first locked package called name whose version satisfies constraint.
func (r *Repository) FindPackage(name, constraint string) *domain.Package {
	for _, pkg := range r.byName[domain.NormalizeName(name)] {
		if MatchConstraint(pkg.Version, constraint) {
			return pkg
		}
	}
	return nil
}

// Providers returns the locked packages that provide name, in lock order.
func (r *Repository) Providers(name string) []string {
	return r.providers[domain.NormalizeName(name)]
}

// Packages returns every locked package in lock order.
func (r *Repository) Packages() []*domain.Package {
	return r.lock.Packages
}

// Digest returns the content digest of the underlying lock file.
func (r *Repository) Digest() string {
	return r.lock.Digest
}

// ContentHash returns the content-hash recorded in the lock file.
func (r *Repository) ContentHash() string {
	return r.lock.ContentHash
}
