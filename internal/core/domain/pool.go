package domain

// RepositoryKind classifies a repository contributing packages to the resolution pool.
type RepositoryKind string

const (
	// RepositoryRoot is the repository holding the project being installed.
	RepositoryRoot RepositoryKind = "root"
	// RepositoryPlatform is the repository describing the local runtime and extensions.
	RepositoryPlatform RepositoryKind = "platform"
	// RepositoryRemote is any repository offering installable candidates.
	RepositoryRemote RepositoryKind = "remote"
)

// Valid reports whether the kind is one of the known repository kinds.
func (k RepositoryKind) Valid() bool {
	switch k {
	case RepositoryRoot, RepositoryPlatform, RepositoryRemote:
		return true
	default:
		return false
	}
}

// Repository is a named source of packages.
type Repository struct {
	Name     string
	Kind     RepositoryKind
	Packages []*Package
}

// PoolEvent is raised by the host just before it creates the resolution pool.
// A handler may replace Packages; the host solver consumes whatever list remains.
type PoolEvent struct {
	// Requires holds the top-level requirements of the current command, in order.
	Requires []Requirement

	// Repositories are the repositories contributing to the pool.
	Repositories []Repository

	// Packages is the full candidate list, in pool order.
	Packages []*Package
}

// RootPackages returns the packages of the root and platform repositories in first-seen order.
func (e *PoolEvent) RootPackages() []*Package {
	var out []*Package
	for _, repo := range e.Repositories {
		if repo.Kind != RepositoryRoot && repo.Kind != RepositoryPlatform {
			continue
		}
		out = append(out, repo.Packages...)
	}
	return out
}

// SetPackages replaces the candidate list handed to the host solver.
func (e *PoolEvent) SetPackages(pkgs []*Package) {
	e.Packages = pkgs
}

// Decision describes how the overlay settled a package entry.
type Decision string

const (
	// DecisionRoot marks a root or platform package kept verbatim.
	DecisionRoot Decision = "root"
	// DecisionPinned marks a package pinned to the upstream lock.
	DecisionPinned Decision = "pinned"
	// DecisionOption marks a pool candidate left for the host solver to choose.
	DecisionOption Decision = "option"
)

// Entry is one package of an overlay result together with its decision.
type Entry struct {
	Package  *Package
	Decision Decision
}

// OverlayResult is the outcome of applying the upstream lock to a pool.
type OverlayResult struct {
	// Applied is false when the overlay passed the pool through unchanged.
	Applied bool

	// Entries holds the resulting packages and decisions in list order.
	Entries []Entry

	// Packages is the resulting candidate list in list order.
	Packages []*Package
}

// CountDecisions returns how many entries carry the given decision.
func (r OverlayResult) CountDecisions(d Decision) int {
	n := 0
	for _, e := range r.Entries {
		if e.Decision == d {
			n++
		}
	}
	return n
}
