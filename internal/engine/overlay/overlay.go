// Package overlay applies an upstream lock file to the host's resolution pool.
package overlay

import (
	"context"
	"fmt"

	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine pins pool candidates to the versions decided by an upstream lock file.
// An Engine serves a single invocation; it holds no state between calls.
type Engine struct {
	cfg    domain.Config
	source ports.LockSource
	logger ports.Logger
	pinner *Pinner
}

// NewEngine creates a new Engine for the given configuration.
func NewEngine(cfg domain.Config, source ports.LockSource, log ports.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		source: source,
		logger: log,
		pinner: NewPinner(log),
	}
}

// OnPrePoolCreate is the pool creation hook. It replaces the event's candidate list with the
// overlaid list, or leaves the event untouched when the overlay does not apply.
func (e *Engine) OnPrePoolCreate(ctx context.Context, event *domain.PoolEvent) (domain.OverlayResult, error) {
	result, err := e.Overlay(ctx, event)
	if err != nil {
		return domain.OverlayResult{}, err
	}
	if result.Applied {
		event.SetPackages(result.Packages)
	}
	return result, nil
}

// Overlay computes the candidate list for event with every upstream-locked package pinned.
//
//nolint:cyclop // orchestration function
func (e *Engine) Overlay(ctx context.Context, event *domain.PoolEvent) (domain.OverlayResult, error) {
	// 1. Without an upstream lock file the pool passes through
	if !e.cfg.Enabled() {
		e.logger.Debug("No upstream lock file specified, skipped constraining versions.")
		e.logger.Debug("Specify an upstream lock file by specifying the `" + domain.EnvLockFile + "` environment variable.")
		return passThrough(event), nil
	}

	// 2. Nothing requested means a reinstall from an existing lock file
	requires := domain.FilterInfrastructure(event.Requires)
	if len(requires) == 0 {
		e.logger.Debug("Installing from existing lock file, skipped constraining versions from an upstream lock file.")
		return passThrough(event), nil
	}

	e.logger.Info(fmt.Sprintf("Using upstream lock file '%s' to lock versions for known packages.", e.cfg.LockFile))

	authority, err := e.source.Load(ctx, e.cfg)
	if err != nil {
		return domain.OverlayResult{}, zerr.With(zerr.Wrap(err, "load upstream lock file"), "lock_file", e.cfg.LockFile)
	}

	// 3. Root and platform packages are kept verbatim
	roots := event.RootPackages()
	rootNames := make(map[string]struct{}, len(roots))
	acc := domain.NewPinnedSet()
	for _, pkg := range roots {
		rootNames[pkg.Name] = struct{}{}
		if acc.Contains(pkg.Name) {
			continue
		}
		acc.Set(pkg.Name, pkg)
	}

	// 4. Decide each candidate once: locked names are pinned, the rest stay options
	for _, candidate := range event.Packages {
		if acc.Contains(candidate.Name) {
			continue
		}
		if domain.IsInfrastructure(candidate.Name) {
			acc.AppendOption(candidate)
			continue
		}
		if locked := authority.FindPackage(candidate.Name, domain.AnyConstraint); locked != nil {
			acc.Set(locked.Name, locked)
			continue
		}
		acc.AppendOption(candidate)
	}

	// 5. Explicit requests take the lock's match for their constraint, plus its closure
	for _, req := range requires {
		name := domain.NormalizeName(req.Name)
		if _, isRoot := rootNames[name]; isRoot {
			continue
		}

		locked := authority.FindPackage(name, req.Constraint)
		if locked == nil {
			continue
		}

		e.logger.Debug(fmt.Sprintf("Locking package %s to %s based on upstream lock file.", name, locked.Version))
		acc.Set(name, locked)
		if err := e.pinner.PinClosure(authority, locked, acc); err != nil {
			return domain.OverlayResult{}, err
		}
	}

	return buildResult(acc, rootNames), nil
}

func passThrough(event *domain.PoolEvent) domain.OverlayResult {
	entries := make([]domain.Entry, len(event.Packages))
	for i, pkg := range event.Packages {
		entries[i] = domain.Entry{Package: pkg, Decision: domain.DecisionOption}
	}
	return domain.OverlayResult{
		Applied:  false,
		Entries:  entries,
		Packages: event.Packages,
	}
}

func buildResult(acc *domain.PinnedSet, rootNames map[string]struct{}) domain.OverlayResult {
	pinned := acc.Entries()
	entries := make([]domain.Entry, len(pinned))
	for i, pe := range pinned {
		decision := domain.DecisionOption
		if pe.Keyed {
			decision = domain.DecisionPinned
			if _, isRoot := rootNames[pe.Name]; isRoot {
				decision = domain.DecisionRoot
			}
		}
		entries[i] = domain.Entry{Package: pe.Package, Decision: decision}
	}
	return domain.OverlayResult{
		Applied:  true,
		Entries:  entries,
		Packages: acc.List(),
	}
}
