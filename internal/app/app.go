// Package app implements the application layer for uplock.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/uplock/internal/engine/overlay"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	source       ports.LockSource
	poolLoader   ports.PoolLoader
	reporter     ports.Reporter
	logger       ports.Logger
	telemetry    ports.Telemetry
	workDir      string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	source ports.LockSource,
	poolLoader ports.PoolLoader,
	reporter ports.Reporter,
	log ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		source:       source,
		poolLoader:   poolLoader,
		reporter:     reporter,
		logger:       log,
		telemetry:    telemetry,
		workDir:      ".",
	}
}

// WithWorkDir sets the directory the configuration is loaded from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// LockOptions override the lock settings of the loaded configuration.
// Zero values leave the configuration untouched.
type LockOptions struct {
	LockFile  string
	AllowHTTP bool
	Offline   bool
}

// OverlayOptions configuration for the Overlay method.
type OverlayOptions struct {
	LockOptions

	// PoolPath is the pool snapshot to read; "-" reads standard input.
	PoolPath string
	// Format is the report format: text, json or yaml.
	Format string
	// Output receives the report. Nil selects standard output.
	Output io.Writer
}

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	LockOptions

	Output io.Writer
}

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	LockOptions

	Output io.Writer
}

// Overlay applies the upstream lock file to a pool snapshot and reports the resulting candidates.
func (a *App) Overlay(ctx context.Context, opts OverlayOptions) error {
	cfg, err := a.loadConfig(ctx, opts.LockOptions)
	if err != nil {
		return errors.Join(domain.ErrOverlayFailed, err)
	}

	var event *domain.PoolEvent
	err = a.step(ctx, "load pool", func(_ context.Context, _ ports.Vertex) error {
		var loadErr error
		event, loadErr = a.poolLoader.Load(opts.PoolPath)
		return loadErr
	})
	if err != nil {
		return errors.Join(domain.ErrOverlayFailed, err)
	}

	var result domain.OverlayResult
	err = a.step(ctx, "overlay", func(ctx context.Context, v ports.Vertex) error {
		var runErr error
		result, runErr = overlay.NewEngine(cfg, a.source, a.logger).OnPrePoolCreate(ctx, event)
		if runErr == nil {
			v.Log(domain.LogLevelInfo, fmt.Sprintf("%d candidates, %d pinned",
				len(event.Packages), result.CountDecisions(domain.DecisionPinned)))
		}
		return runErr
	})
	if err != nil {
		return errors.Join(domain.ErrOverlayFailed, err)
	}

	if err := a.reporter.Report(output(opts.Output), opts.Format, result); err != nil {
		return errors.Join(domain.ErrOverlayFailed, err)
	}
	return nil
}

// Verify checks that the requirement closure of every package in the upstream lock file
// resolves within the lock. Packages are audited concurrently and every failure is reported.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	cfg, authority, err := a.loadAuthority(ctx, opts.LockOptions)
	if err != nil {
		return errors.Join(domain.ErrVerifyFailed, err)
	}

	pkgs := authority.Packages()
	failures := make([]error, len(pkgs))

	err = a.step(ctx, "verify", func(_ context.Context, _ ports.Vertex) error {
		pinner := overlay.NewPinner(a.logger)

		g := new(errgroup.Group)
		g.SetLimit(runtime.NumCPU())
		for i, pkg := range pkgs {
			g.Go(func() error {
				failures[i] = pinner.PinClosure(authority, pkg, domain.NewPinnedSet(pkg))
				return failures[i]
			})
		}
		if err := g.Wait(); err == nil {
			return nil
		}

		return joinDistinct(failures)
	})
	if err != nil {
		return errors.Join(domain.ErrVerifyFailed, err)
	}

	_, err = fmt.Fprintf(output(opts.Output), "Upstream lock file '%s' is consistent: %d packages checked.\n",
		cfg.LockFile, len(pkgs))
	if err != nil {
		return zerr.Wrap(domain.ErrReportWriteFailed, err.Error())
	}
	return nil
}

// Inspect prints what the upstream lock file records for each name: the locked version with its
// links, and the locked packages providing it.
func (a *App) Inspect(ctx context.Context, names []string, opts InspectOptions) error {
	cfg, authority, err := a.loadAuthority(ctx, opts.LockOptions)
	if err != nil {
		return err
	}

	var out strings.Builder
	header := fmt.Sprintf("Upstream lock file '%s' (%d packages", cfg.LockFile, len(authority.Packages()))
	if d, ok := authority.(interface{ Digest() string }); ok {
		header += ", digest " + d.Digest()
	}
	out.WriteString(header + ")\n")

	var missing []error
	for _, raw := range names {
		name := domain.NormalizeName(raw)
		pkg := authority.FindPackage(name, domain.AnyConstraint)
		providers := authority.Providers(name)

		if pkg == nil && len(providers) == 0 {
			missing = append(missing, zerr.With(zerr.Wrap(domain.ErrPackageNotFound, "not in upstream lock file: "+name), "package", name))
			continue
		}

		if pkg != nil {
			writePackage(&out, pkg)
		} else {
			fmt.Fprintf(&out, "%s (virtual)\n", name)
		}
		for _, p := range providers {
			fmt.Fprintf(&out, "  provided by %s\n", p)
		}
	}

	if _, err := io.WriteString(output(opts.Output), out.String()); err != nil {
		return zerr.Wrap(domain.ErrReportWriteFailed, err.Error())
	}
	return errors.Join(missing...)
}

func writePackage(out *strings.Builder, pkg *domain.Package) {
	fmt.Fprintf(out, "%s %s", pkg.Name, pkg.Version)
	if pkg.Type != "" {
		fmt.Fprintf(out, " (%s)", pkg.Type)
	}
	out.WriteString("\n")

	for _, group := range []struct {
		verb  string
		links []domain.Link
	}{
		{"requires", pkg.Requires},
		{"provides", pkg.Provides},
		{"replaces", pkg.Replaces},
	} {
		for _, l := range group.links {
			fmt.Fprintf(out, "  %s %s %s\n", group.verb, l.Target, l.Constraint)
		}
	}
}

func (a *App) loadConfig(ctx context.Context, opts LockOptions) (domain.Config, error) {
	var cfg domain.Config
	err := a.step(ctx, "load config", func(_ context.Context, _ ports.Vertex) error {
		var loadErr error
		cfg, loadErr = a.configLoader.Load(a.workDir)
		if loadErr != nil {
			return zerr.Wrap(loadErr, "failed to load configuration")
		}

		if opts.LockFile != "" {
			cfg.LockFile = opts.LockFile
		}
		cfg.AllowHTTP = cfg.AllowHTTP || opts.AllowHTTP
		cfg.Offline = cfg.Offline || opts.Offline

		level, levelErr := domain.ParseLogLevel(cfg.LogLevel)
		if levelErr != nil {
			return zerr.With(zerr.Wrap(levelErr, "invalid configuration"), "log_level", cfg.LogLevel)
		}
		a.logger.SetLevel(level)
		return nil
	})
	return cfg, err
}

func (a *App) loadAuthority(ctx context.Context, opts LockOptions) (domain.Config, ports.LockAuthority, error) {
	cfg, err := a.loadConfig(ctx, opts)
	if err != nil {
		return cfg, nil, err
	}
	if !cfg.Enabled() {
		return cfg, nil, zerr.Wrap(domain.ErrNoLockConfigured, "set "+domain.EnvLockFile+" or pass --lock-file")
	}

	var authority ports.LockAuthority
	err = a.step(ctx, "load upstream lock", func(ctx context.Context, _ ports.Vertex) error {
		var loadErr error
		authority, loadErr = a.source.Load(ctx, cfg)
		return loadErr
	})
	return cfg, authority, err
}

// step records fn as a telemetry vertex named name.
func (a *App) step(ctx context.Context, name string, fn func(context.Context, ports.Vertex) error) error {
	ctx, vertex := a.telemetry.Record(ctx, name)
	err := fn(ctx, vertex)
	vertex.Complete(err)
	return err
}

// joinDistinct joins the non-nil errors, dropping repeats of the same message.
// A broken link is found once for every package whose closure reaches it.
func joinDistinct(errs []error) error {
	var out []error
	seen := make(map[string]struct{})
	for _, err := range errs {
		if err == nil {
			continue
		}
		if _, dup := seen[err.Error()]; dup {
			continue
		}
		seen[err.Error()] = struct{}{}
		out = append(out, err)
	}
	return errors.Join(out...)
}

func output(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
