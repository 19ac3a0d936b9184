package overlay

import (
	"fmt"

	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pinner pins the transitive requirement closure of locked packages.
type Pinner struct {
	logger ports.Logger
}

// NewPinner creates a Pinner that reports each pin through log.
func NewPinner(log ports.Logger) *Pinner {
	return &Pinner{logger: log}
}

// frame is one level of the closure walk: a package, the next link to examine,
// and the packages resolved from the current link that still have to be pinned.
type frame struct {
	pkg     *domain.Package
	next    int
	pending []*domain.Package
}

// PinClosure pins every non-infrastructure package reachable from pkg through requirement links.
//
// A name already decided in acc is not revisited; this guard is what terminates the walk on
// diamond and cyclic graphs. A requirement on a virtual name pins all of its providers.
// The walk uses an explicit stack and visits packages in the same order as a depth-first
// recursion would.
func (p *Pinner) PinClosure(authority ports.LockAuthority, pkg *domain.Package, acc *domain.PinnedSet) error {
	stack := []*frame{{pkg: pkg}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if len(top.pending) > 0 {
			found := top.pending[0]
			top.pending = top.pending[1:]

			p.logger.Debug(fmt.Sprintf(
				"Locking package %s to %s (dependency of %s based on upstream lock file)",
				found.Name, found.Version, top.pkg.Name,
			))
			acc.Set(found.Name, found)
			stack = append(stack, &frame{pkg: found})
			continue
		}

		if top.next >= len(top.pkg.Requires) {
			stack = stack[:len(stack)-1]
			continue
		}

		link := top.pkg.Requires[top.next]
		top.next++

		if domain.IsInfrastructure(link.Target) || acc.Contains(link.Target) {
			continue
		}

		resolved, err := resolve(authority, top.pkg, link)
		if err != nil {
			return err
		}
		top.pending = resolved
	}

	return nil
}

// resolve finds the locked packages that satisfy link: the package itself when the lock holds a
// matching version, otherwise every provider of the virtual name.
func resolve(authority ports.LockAuthority, owner *domain.Package, link domain.Link) ([]*domain.Package, error) {
	if found := authority.FindPackage(link.Target, link.Constraint); found != nil {
		return []*domain.Package{found}, nil
	}

	providers := authority.Providers(link.Target)
	if len(providers) == 0 {
		return nil, lockInconsistency(owner, link)
	}

	resolved := make([]*domain.Package, 0, len(providers))
	for _, name := range providers {
		provider := authority.FindPackage(name, domain.AnyConstraint)
		if provider == nil {
			err := zerr.Wrap(domain.ErrInternalConsistency, fmt.Sprintf(
				"repository for upstream lock file said %s provided %s but the repository didn't contain the actual package",
				name, link.Target,
			))
			err = zerr.With(err, "provider", name)
			return nil, zerr.With(err, "target", link.Target)
		}
		resolved = append(resolved, provider)
	}
	return resolved, nil
}

func lockInconsistency(owner *domain.Package, link domain.Link) error {
	source := link.Source
	if source == "" {
		source = owner.Name
	}
	err := zerr.Wrap(domain.ErrLockInconsistency, fmt.Sprintf(
		"package %s which was present in the upstream lock file requires %s but it was not found in the upstream lock file",
		source, link.Target,
	))
	err = zerr.With(err, "package", source)
	err = zerr.With(err, "target", link.Target)
	return zerr.With(err, "constraint", link.Constraint)
}
