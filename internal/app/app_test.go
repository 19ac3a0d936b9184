package app_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uplock/internal/adapters/lockfile"
	"go.trai.ch/uplock/internal/adapters/telemetry"
	"go.trai.ch/uplock/internal/app"
	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/uplock/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const upstreamLock = `{
	"content-hash": "abc",
	"packages": [
		{"name": "vendor/app", "version": "1.2.0", "require": {"php": ">=8.1", "vendor/lib": "^2.0", "psr/log-implementation": "^1.0"}},
		{"name": "vendor/lib", "version": "2.3.0", "type": "library"},
		{"name": "vendor/logger", "version": "1.0.0", "provide": {"psr/log-implementation": "1.0.0"}}
	]
}`

const brokenLock = `{
	"packages": [
		{"name": "vendor/a", "version": "1.0.0", "require": {"vendor/b": "*"}},
		{"name": "vendor/b", "version": "1.0.0", "require": {"vendor/missing": "^1.0"}},
		{"name": "vendor/c", "version": "1.0.0", "require": {"vendor/gone": "*"}}
	]
}`

type fixture struct {
	ctrl     *gomock.Controller
	loader   *mocks.MockConfigLoader
	source   *mocks.MockLockSource
	pool     *mocks.MockPoolLoader
	reporter *mocks.MockReporter
	logger   *mocks.MockLogger
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		ctrl:     ctrl,
		loader:   mocks.NewMockConfigLoader(ctrl),
		source:   mocks.NewMockLockSource(ctrl),
		pool:     mocks.NewMockPoolLoader(ctrl),
		reporter: mocks.NewMockReporter(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().SetLevel(gomock.Any()).AnyTimes()

	f.app = app.New(f.loader, f.source, f.pool, f.reporter, f.logger, telemetry.NewNoOp()).WithWorkDir("/work")
	return f
}

func authorityFor(t *testing.T, doc string) ports.LockAuthority {
	t.Helper()
	lock, err := lockfile.Parse([]byte(doc))
	require.NoError(t, err)
	return lockfile.NewRepository(lock)
}

func TestApp_Overlay(t *testing.T) {
	f := newFixture(t)

	cfg := domain.Config{LockFile: "from-config.lock", CacheDir: "/work/.uplock/cache/locks"}
	f.loader.EXPECT().Load("/work").Return(cfg, nil)

	event := &domain.PoolEvent{
		Requires: []domain.Requirement{{Name: "vendor/app", Constraint: "^1.0"}},
		Repositories: []domain.Repository{
			{Name: "packagist", Kind: domain.RepositoryRemote},
		},
		Packages: []*domain.Package{
			domain.NewPackage("vendor/app", "1.3.0"),
			domain.NewPackage("vendor/lib", "2.9.0"),
			domain.NewPackage("vendor/extra", "0.1.0"),
		},
	}
	f.pool.EXPECT().Load("pool.yaml").Return(event, nil)

	want := cfg
	want.LockFile = "flag.lock"
	want.AllowHTTP = true
	f.source.EXPECT().Load(gomock.Any(), want).Return(authorityFor(t, upstreamLock), nil)

	var out bytes.Buffer
	var reported domain.OverlayResult
	f.reporter.EXPECT().Report(&out, "json", gomock.Any()).
		DoAndReturn(func(_ io.Writer, _ string, result domain.OverlayResult) error {
			reported = result
			return nil
		})

	err := f.app.Overlay(context.Background(), app.OverlayOptions{
		LockOptions: app.LockOptions{LockFile: "flag.lock", AllowHTTP: true},
		PoolPath:    "pool.yaml",
		Format:      "json",
		Output:      &out,
	})
	require.NoError(t, err)

	assert.True(t, reported.Applied)
	var got []string
	for _, p := range reported.Packages {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{
		"vendor/app@1.2.0",
		"vendor/lib@2.3.0",
		"vendor/extra@0.1.0",
		"vendor/logger@1.0.0",
	}, got)
	assert.Equal(t, reported.Packages, event.Packages)
}

func TestApp_Overlay_Errors(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("/work").Return(domain.Config{}, zerr.Wrap(domain.ErrConfigParseFailed, "bad yaml"))

		err := f.app.Overlay(context.Background(), app.OverlayOptions{PoolPath: "-"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOverlayFailed)
		assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
	})

	t.Run("pool", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("/work").Return(domain.Config{LockFile: "up.lock"}, nil)
		f.pool.EXPECT().Load("missing.yaml").Return(nil, zerr.Wrap(domain.ErrPoolReadFailed, "no such file"))

		err := f.app.Overlay(context.Background(), app.OverlayOptions{PoolPath: "missing.yaml"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOverlayFailed)
		assert.ErrorIs(t, err, domain.ErrPoolReadFailed)
	})

	t.Run("inconsistent lock", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("/work").Return(domain.Config{LockFile: "up.lock"}, nil)
		f.pool.EXPECT().Load("pool.yaml").Return(&domain.PoolEvent{
			Requires: []domain.Requirement{{Name: "vendor/a", Constraint: "*"}},
		}, nil)
		f.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(authorityFor(t, brokenLock), nil)

		err := f.app.Overlay(context.Background(), app.OverlayOptions{PoolPath: "pool.yaml"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOverlayFailed)
		assert.ErrorIs(t, err, domain.ErrLockInconsistency)
	})

	t.Run("invalid log level", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load("/work").Return(domain.Config{LogLevel: "chatty"}, nil)

		err := f.app.Overlay(context.Background(), app.OverlayOptions{PoolPath: "pool.yaml"})

		assert.ErrorIs(t, err, domain.ErrInvalidLogLevel)
	})
}

func TestApp_Overlay_AppliesLogLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	pool := mocks.NewMockPoolLoader(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	loader.EXPECT().Load(".").Return(domain.Config{LogLevel: "debug"}, nil)
	log.EXPECT().SetLevel(domain.LogLevelDebug).Times(1)
	pool.EXPECT().Load("pool.yaml").Return(&domain.PoolEvent{}, nil)
	reporter.EXPECT().Report(gomock.Any(), "text", gomock.Any()).Return(nil)

	a := app.New(loader, mocks.NewMockLockSource(ctrl), pool, reporter, log, telemetry.NewNoOp())
	require.NoError(t, a.Overlay(context.Background(), app.OverlayOptions{PoolPath: "pool.yaml", Format: "text"}))
}

func TestApp_Verify(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(domain.Config{LockFile: "up.lock"}, nil)
	f.source.EXPECT().Load(gomock.Any(), domain.Config{LockFile: "up.lock"}).Return(authorityFor(t, upstreamLock), nil)

	var out bytes.Buffer
	err := f.app.Verify(context.Background(), app.VerifyOptions{Output: &out})

	require.NoError(t, err)
	assert.Equal(t, "Upstream lock file 'up.lock' is consistent: 3 packages checked.\n", out.String())
}

func TestApp_Verify_ReportsEveryFailureOnce(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(domain.Config{LockFile: "up.lock"}, nil)
	f.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(authorityFor(t, brokenLock), nil)

	var out bytes.Buffer
	err := f.app.Verify(context.Background(), app.VerifyOptions{Output: &out})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVerifyFailed)
	assert.ErrorIs(t, err, domain.ErrLockInconsistency)
	assert.Equal(t, 1, strings.Count(err.Error(), "requires vendor/missing"))
	assert.Equal(t, 1, strings.Count(err.Error(), "requires vendor/gone"))
	assert.Empty(t, out.String())
}

func TestApp_Verify_RequiresLockFile(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(domain.Config{}, nil)

	err := f.app.Verify(context.Background(), app.VerifyOptions{Output: io.Discard})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVerifyFailed)
	assert.ErrorIs(t, err, domain.ErrNoLockConfigured)
}

func TestApp_Inspect(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(domain.Config{LockFile: "up.lock"}, nil)
	authority := authorityFor(t, upstreamLock)
	f.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(authority, nil)

	var out bytes.Buffer
	err := f.app.Inspect(context.Background(), []string{"Vendor/App", "psr/log-implementation", "vendor/lib"},
		app.InspectOptions{Output: &out})
	require.NoError(t, err)

	digest := authority.(*lockfile.Repository).Digest()
	want := "Upstream lock file 'up.lock' (3 packages, digest " + digest + ")\n" +
		"vendor/app 1.2.0\n" +
		"  requires php >=8.1\n" +
		"  requires vendor/lib ^2.0\n" +
		"  requires psr/log-implementation ^1.0\n" +
		"psr/log-implementation (virtual)\n" +
		"  provided by vendor/logger\n" +
		"vendor/lib 2.3.0 (library)\n"
	assert.Equal(t, want, out.String())
}

func TestApp_Inspect_UnknownName(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work").Return(domain.Config{LockFile: "up.lock"}, nil)
	f.source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(authorityFor(t, upstreamLock), nil)

	var out bytes.Buffer
	err := f.app.Inspect(context.Background(), []string{"vendor/nope", "vendor/lib"}, app.InspectOptions{Output: &out})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Contains(t, err.Error(), "vendor/nope")
	assert.Contains(t, out.String(), "vendor/lib 2.3.0")
}
