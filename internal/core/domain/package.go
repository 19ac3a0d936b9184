package domain

import (
	"fmt"
	"strings"
)

// AnyConstraint is the version constraint that accepts every version.
const AnyConstraint = "*"

// Link is a directed relation from one package to another, qualified by a version constraint.
type Link struct {
	// Source is the name of the declaring package.
	Source string

	// Target is the name of the required, provided or replaced package.
	Target string

	// Constraint is the version constraint expression (e.g., "^1.2", "*").
	Constraint string
}

// String renders the link for diagnostics.
func (l Link) String() string {
	return fmt.Sprintf("%s -> %s (%s)", l.Source, l.Target, l.Constraint)
}

// Package is a single version of a named package as seen by the resolution pool or the lock.
// A Package is treated as immutable once constructed.
type Package struct {
	// Name is the lower-cased package name (e.g., "symfony/console").
	Name string

	// Version is the version string exactly as it appears in its source (e.g., "v6.4.1", "dev-main").
	Version string

	// Type is the package type (e.g., "library", "metapackage").
	Type string

	// Requires lists the requirement links in declaration order.
	Requires []Link

	// Provides lists the virtual capabilities this package satisfies.
	Provides []Link

	// Replaces lists the packages this package stands in for.
	Replaces []Link
}

// NewPackage creates a Package with a normalized name.
func NewPackage(name, version string) *Package {
	return &Package{
		Name:    NormalizeName(name),
		Version: version,
	}
}

// WithRequires returns the package after appending requirement links built from target/constraint pairs.
// Link sources are set to the package name.
func (p *Package) WithRequires(pairs ...string) *Package {
	p.Requires = append(p.Requires, buildLinks(p.Name, pairs)...)
	return p
}

// WithProvides returns the package after appending provide links built from target/constraint pairs.
func (p *Package) WithProvides(pairs ...string) *Package {
	p.Provides = append(p.Provides, buildLinks(p.Name, pairs)...)
	return p
}

// String renders the package as name@version.
func (p *Package) String() string {
	return p.Name + "@" + p.Version
}

// NormalizeName lower-cases and trims a package name. Package names are case-insensitive.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func buildLinks(source string, pairs []string) []Link {
	links := make([]Link, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		links = append(links, Link{
			Source:     source,
			Target:     NormalizeName(pairs[i]),
			Constraint: pairs[i+1],
		})
	}
	return links
}
