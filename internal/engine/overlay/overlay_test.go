package overlay_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports/mocks"
	"go.trai.ch/uplock/internal/engine/overlay"
	"go.uber.org/mock/gomock"
)

const lockPath = "upstream/composer.lock"

func enabledConfig() domain.Config {
	return domain.Config{LockFile: lockPath}
}

func sourceFor(ctrl *gomock.Controller, authority *memAuthority) *mocks.MockLockSource {
	source := mocks.NewMockLockSource(ctrl)
	source.EXPECT().Load(gomock.Any(), enabledConfig()).Return(authority, nil).Times(1)
	return source
}

func remoteRepo(pkgs ...*domain.Package) domain.Repository {
	return domain.Repository{Name: "packagist", Kind: domain.RepositoryRemote, Packages: pkgs}
}

func TestOverlay_PassThroughWithoutLockFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockLockSource(ctrl)

	candidates := []*domain.Package{pkg("vendor/a", "1.0.0"), pkg("vendor/a", "2.0.0")}
	event := &domain.PoolEvent{
		Requires: []domain.Requirement{{Name: "vendor/a", Constraint: "^1.0"}},
		Packages: candidates,
	}

	engine := overlay.NewEngine(domain.Config{}, source, newQuietLogger(ctrl))
	result, err := engine.OnPrePoolCreate(context.Background(), event)

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, candidates, event.Packages)
	assert.Equal(t, 2, result.CountDecisions(domain.DecisionOption))
}

func TestOverlay_PassThroughWhenOnlyInfrastructureIsRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockLockSource(ctrl)

	candidates := []*domain.Package{pkg("vendor/a", "1.0.0")}
	event := &domain.PoolEvent{
		Requires: []domain.Requirement{
			{Name: "php", Constraint: ">=8.1"},
			{Name: "ext-json", Constraint: "*"},
		},
		Packages: candidates,
	}

	engine := overlay.NewEngine(enabledConfig(), source, newQuietLogger(ctrl))
	result, err := engine.OnPrePoolCreate(context.Background(), event)

	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, candidates, event.Packages)
}

func TestOverlay_PinsLockedVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	locked := pkg("vendor/pkg", "1.2.0")
	authority := newMemAuthority(locked)

	event := &domain.PoolEvent{
		Requires:     []domain.Requirement{{Name: "vendor/unrelated", Constraint: "^1.0"}},
		Repositories: []domain.Repository{remoteRepo()},
		Packages:     []*domain.Package{pkg("vendor/pkg", "1.1.0"), pkg("vendor/pkg", "1.3.0")},
	}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), newQuietLogger(ctrl))
	result, err := engine.OnPrePoolCreate(context.Background(), event)

	require.NoError(t, err)
	assert.True(t, result.Applied)
	require.Len(t, event.Packages, 1)
	assert.Same(t, locked, event.Packages[0])
	assert.Equal(t, domain.DecisionPinned, result.Entries[0].Decision)
}

func TestOverlay_RequirementOnVirtualPinsProviders(t *testing.T) {
	ctrl := gomock.NewController(t)
	x := pkg("vendor/x", "1.0.0", "vendor/iface", "^1.0")
	a := pkg("vendor/a", "1.0.0", "vendor/a-dep", "*").WithProvides("vendor/iface", "1.0.0")
	b := pkg("vendor/b", "1.0.0").WithProvides("vendor/iface", "1.0.0")
	aDep := pkg("vendor/a-dep", "3.0.0")
	authority := newMemAuthority(x, a, b, aDep)

	event := &domain.PoolEvent{
		Requires:     []domain.Requirement{{Name: "vendor/x", Constraint: "1.0.0"}},
		Repositories: []domain.Repository{remoteRepo()},
	}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), newQuietLogger(ctrl))
	result, err := engine.Overlay(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"vendor/x@1.0.0",
		"vendor/a@1.0.0",
		"vendor/a-dep@3.0.0",
		"vendor/b@1.0.0",
	}, listOf(result.Packages))
	assert.Equal(t, 4, result.CountDecisions(domain.DecisionPinned))
}

func TestOverlay_UnlockedRequirementIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	authority := newMemAuthority(pkg("vendor/known", "1.0.0"))

	event := &domain.PoolEvent{
		Requires: []domain.Requirement{{Name: "vendor/missing-pkg", Constraint: "^2.0"}},
		Packages: []*domain.Package{pkg("vendor/other", "0.1.0")},
	}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), newQuietLogger(ctrl))
	result, err := engine.OnPrePoolCreate(context.Background(), event)

	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, []string{"vendor/other@0.1.0"}, listOf(event.Packages))
	assert.Equal(t, domain.DecisionOption, result.Entries[0].Decision)
}

func TestOverlay_UnlockedCandidatesStayOptionsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	authority := newMemAuthority(pkg("vendor/locked", "1.0.0"))

	event := &domain.PoolEvent{
		Requires: []domain.Requirement{{Name: "vendor/free", Constraint: "*"}},
		Packages: []*domain.Package{
			pkg("vendor/free", "2.0.0"),
			pkg("vendor/locked", "0.9.0"),
			pkg("vendor/free", "1.0.0"),
			pkg("ext-intl", "8.3.0"),
		},
	}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), newQuietLogger(ctrl))
	result, err := engine.Overlay(context.Background(), event)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"vendor/free@2.0.0",
		"vendor/locked@1.0.0",
		"vendor/free@1.0.0",
		"ext-intl@8.3.0",
	}, listOf(result.Packages))
	assert.Equal(t, 3, result.CountDecisions(domain.DecisionOption))
	assert.Equal(t, 1, result.CountDecisions(domain.DecisionPinned))
}

func TestOverlay_RootPackagesTakePrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := pkg("acme/site", "dev-main", "vendor/lib", "*")
	platform := pkg("php", "8.3.4")
	dependent := pkg("vendor/lib", "1.0.0", "acme/site", "*")
	authority := newMemAuthority(pkg("acme/site", "9.9.9"), dependent)

	event := &domain.PoolEvent{
		Requires: []domain.Requirement{
			{Name: "acme/site", Constraint: "*"},
			{Name: "vendor/lib", Constraint: "*"},
		},
		Repositories: []domain.Repository{
			{Name: "root", Kind: domain.RepositoryRoot, Packages: []*domain.Package{root}},
			{Name: "platform", Kind: domain.RepositoryPlatform, Packages: []*domain.Package{platform}},
			remoteRepo(),
		},
		Packages: []*domain.Package{root, platform, pkg("acme/site", "9.9.9"), pkg("vendor/lib", "2.0.0")},
	}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), newQuietLogger(ctrl))
	result, err := engine.Overlay(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, result.Entries, 3)
	assert.Same(t, root, result.Entries[0].Package)
	assert.Equal(t, domain.DecisionRoot, result.Entries[0].Decision)
	assert.Same(t, platform, result.Entries[1].Package)
	assert.Equal(t, domain.DecisionRoot, result.Entries[1].Decision)
	assert.Same(t, dependent, result.Entries[2].Package)
	assert.Equal(t, domain.DecisionPinned, result.Entries[2].Decision)
}

func TestOverlay_ExplicitRequirementOverridesCandidateMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	older := pkg("vendor/lib", "1.0.0")
	newer := pkg("vendor/lib", "2.0.0")
	authority := newMemAuthority(older, newer)

	event := &domain.PoolEvent{
		Requires: []domain.Requirement{{Name: "Vendor/Lib", Constraint: "2.0.0"}},
		Packages: []*domain.Package{
			pkg("vendor/first", "1.0.0"),
			pkg("vendor/lib", "1.0.0"),
			pkg("vendor/lib", "2.0.0"),
		},
	}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), newQuietLogger(ctrl))
	result, err := engine.Overlay(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, result.Packages, 2)
	assert.Equal(t, "vendor/first@1.0.0", result.Packages[0].String())
	assert.Same(t, newer, result.Packages[1])
}

func TestOverlay_SourceErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockLockSource(ctrl)
	source.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, domain.ErrLockReadFailed)

	candidates := []*domain.Package{pkg("vendor/a", "1.0.0")}
	event := &domain.PoolEvent{
		Requires: []domain.Requirement{{Name: "vendor/a", Constraint: "*"}},
		Packages: candidates,
	}

	engine := overlay.NewEngine(enabledConfig(), source, newQuietLogger(ctrl))
	_, err := engine.OnPrePoolCreate(context.Background(), event)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockReadFailed)
	assert.Equal(t, candidates, event.Packages)
}

func TestOverlay_LockInconsistencyLeavesEventUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	authority := newMemAuthority(pkg("vendor/a", "1.0.0", "vendor/gone", "^1.0"))

	candidates := []*domain.Package{pkg("vendor/a", "0.5.0")}
	event := &domain.PoolEvent{
		Requires: []domain.Requirement{{Name: "vendor/a", Constraint: "*"}},
		Packages: candidates,
	}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), newQuietLogger(ctrl))
	_, err := engine.OnPrePoolCreate(context.Background(), event)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLockInconsistency))
	assert.Equal(t, candidates, event.Packages)
}

func TestOverlay_LogsLockFileInUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	authority := newMemAuthority(pkg("vendor/a", "1.0.0"))

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("Using upstream lock file 'upstream/composer.lock' to lock versions for known packages.").Times(1)
	log.EXPECT().Debug("Locking package vendor/a to 1.0.0 based on upstream lock file.").Times(1)

	event := &domain.PoolEvent{Requires: []domain.Requirement{{Name: "vendor/a", Constraint: "*"}}}

	engine := overlay.NewEngine(enabledConfig(), sourceFor(ctrl, authority), log)
	_, err := engine.Overlay(context.Background(), event)
	require.NoError(t, err)
}
