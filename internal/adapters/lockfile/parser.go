// Package lockfile reads composer.lock files and serves them as a lock authority.
package lockfile

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/zerr"
)

// Parse decodes a composer.lock document. Runtime and development packages are
// concatenated in that order; names are lower-cased.
func Parse(data []byte) (*domain.Lockfile, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(domain.ErrLockParseFailed, err.Error())
	}

	lock := &domain.Lockfile{
		ContentHash: doc.ContentHash,
		Digest:      Digest(data),
		Packages:    make([]*domain.Package, 0, len(doc.Packages)+len(doc.PackagesDev)),
	}

	for _, group := range [][]lockPackage{doc.Packages, doc.PackagesDev} {
		for i, entry := range group {
			pkg, err := toPackage(entry)
			if err != nil {
				return nil, zerr.With(err, "index", i)
			}
			lock.Packages = append(lock.Packages, pkg)
		}
	}

	return lock, nil
}

// Digest returns the hex xxhash of raw lock file content.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func toPackage(entry lockPackage) (*domain.Package, error) {
	if entry.Name == "" || entry.Version == "" {
		err := zerr.Wrap(domain.ErrLockParseFailed, "package entry needs a name and a version")
		return nil, zerr.With(err, "name", entry.Name)
	}

	pkg := domain.NewPackage(entry.Name, entry.Version)
	pkg.Type = entry.Type
	pkg.Requires = toLinks(pkg.Name, entry.Require)
	pkg.Provides = toLinks(pkg.Name, entry.Provide)
	pkg.Replaces = toLinks(pkg.Name, entry.Replace)
	return pkg, nil
}

func toLinks(source string, entries linkMap) []domain.Link {
	if len(entries) == 0 {
		return nil
	}
	links := make([]domain.Link, len(entries))
	for i, e := range entries {
		links[i] = domain.Link{
			Source:     source,
			Target:     domain.NormalizeName(e.Target),
			Constraint: e.Constraint,
		}
	}
	return links
}
