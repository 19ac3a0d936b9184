package overlay_test

import (
	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// memAuthority is an in-memory lock authority. A constraint matches when it is "*" or equals the
// version exactly; the first package in lock order wins.
type memAuthority struct {
	order     []*domain.Package
	byName    map[string][]*domain.Package
	providers map[string][]string
	lookups   map[string]int
}

func newMemAuthority(pkgs ...*domain.Package) *memAuthority {
	a := &memAuthority{
		byName:    make(map[string][]*domain.Package),
		providers: make(map[string][]string),
		lookups:   make(map[string]int),
	}
	for _, p := range pkgs {
		a.order = append(a.order, p)
		a.byName[p.Name] = append(a.byName[p.Name], p)
		for _, l := range p.Provides {
			a.providers[l.Target] = append(a.providers[l.Target], p.Name)
		}
	}
	return a
}

// withProvider registers a provider entry without a matching package, to model a broken index.
func (a *memAuthority) withProvider(virtual, provider string) *memAuthority {
	a.providers[virtual] = append(a.providers[virtual], provider)
	return a
}

func (a *memAuthority) FindPackage(name, constraint string) *domain.Package {
	a.lookups[name]++
	for _, p := range a.byName[name] {
		if constraint == domain.AnyConstraint || constraint == p.Version {
			return p
		}
	}
	return nil
}

func (a *memAuthority) Providers(name string) []string {
	return a.providers[name]
}

func (a *memAuthority) Packages() []*domain.Package {
	return a.order
}

func newQuietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func pkg(name, version string, requires ...string) *domain.Package {
	return domain.NewPackage(name, version).WithRequires(requires...)
}

func listOf(pkgs []*domain.Package) []string {
	out := make([]string, len(pkgs))
	for i, p := range pkgs {
		out[i] = p.String()
	}
	return out
}
