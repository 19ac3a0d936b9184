package pool

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk form of a pool creation event.
// JSON documents are accepted as they are valid YAML.
type Snapshot struct {
	Requires     []RequirementDTO `yaml:"requires"`
	Repositories []RepositoryDTO  `yaml:"repositories"`
	Packages     []PackageDTO     `yaml:"packages"`
}

// RequirementDTO is a top-level requirement of the current command.
type RequirementDTO struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint"`
}

// RepositoryDTO is a repository contributing packages to the pool.
type RepositoryDTO struct {
	Name     string       `yaml:"name"`
	Type     string       `yaml:"type"`
	Packages []PackageDTO `yaml:"packages"`
}

// PackageDTO is a package as listed in a snapshot.
type PackageDTO struct {
	Name    string  `yaml:"name"`
	Version string  `yaml:"version"`
	Type    string  `yaml:"type"`
	Require LinkMap `yaml:"require"`
	Provide LinkMap `yaml:"provide"`
	Replace LinkMap `yaml:"replace"`
}

// LinkEntry is one target/constraint pair of a LinkMap.
type LinkEntry struct {
	Target     string
	Constraint string
}

// LinkMap is a mapping of package name to constraint that keeps document order.
type LinkMap []LinkEntry

// UnmarshalYAML reads the mapping node pairwise to preserve key order.
func (m *LinkMap) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			*m = nil
			return nil
		}
		return fmt.Errorf("line %d: links must be a mapping of name to constraint", node.Line)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*m = nil
			return nil
		}
		return fmt.Errorf("line %d: links must be a mapping of name to constraint", node.Line)
	default:
		return fmt.Errorf("line %d: links must be a mapping of name to constraint", node.Line)
	}

	out := make(LinkMap, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: constraint for %q must be a string", value.Line, key.Value)
		}
		out = append(out, LinkEntry{Target: key.Value, Constraint: value.Value})
	}
	*m = out
	return nil
}
