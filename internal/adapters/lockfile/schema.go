package lockfile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// document is the subset of composer.lock consumed by the overlay.
type document struct {
	ContentHash string        `json:"content-hash"`
	Packages    []lockPackage `json:"packages"`
	PackagesDev []lockPackage `json:"packages-dev"`
}

type lockPackage struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Type    string  `json:"type"`
	Require linkMap `json:"require"`
	Provide linkMap `json:"provide"`
	Replace linkMap `json:"replace"`
}

type linkEntry struct {
	Target     string
	Constraint string
}

// linkMap is a JSON object of package name to constraint that keeps key order.
// An empty JSON array is accepted as an empty object.
type linkMap []linkEntry

// UnmarshalJSON decodes the object token by token to preserve declaration order.
func (m *linkMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch tok {
	case nil:
		*m = nil
		return nil
	case json.Delim('['):
		if dec.More() {
			return fmt.Errorf("link list must be an object, got a non-empty array")
		}
		*m = nil
		return nil
	case json.Delim('{'):
	default:
		return fmt.Errorf("link list must be an object, got %v", tok)
	}

	var out linkMap
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected link key %v", keyTok)
		}

		var constraint string
		if err := dec.Decode(&constraint); err != nil {
			return fmt.Errorf("link %q: %w", key, err)
		}
		out = append(out, linkEntry{Target: key, Constraint: constraint})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = out
	return nil
}
