package domain

// Requirement represents a top-level request for a package made by the current command.
// This is the input the host collected before resolution (e.g., from `require vendor/pkg:^1.2`).
type Requirement struct {
	// Name is the requested package name (e.g., "guzzlehttp/guzzle").
	Name string

	// Constraint is the requested version constraint (e.g., "^7.8", "*").
	Constraint string
}

// FilterInfrastructure returns the requirements whose names are not infrastructure, in order.
func FilterInfrastructure(reqs []Requirement) []Requirement {
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		if IsInfrastructure(r.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}
