package domain

import "go.trai.ch/zerr"

// PinnedEntry is one element of a PinnedSet in list order.
type PinnedEntry struct {
	// Name is the package name the entry is filed under.
	Name string

	// Package is the package held by the entry.
	Package *Package

	// Keyed is true when the entry is the single decided package for Name,
	// and false when it is one of several open options.
	Keyed bool
}

// PinnedSet is an insertion-ordered collection of packages.
//
// A name is either absent, decided (exactly one keyed entry), or open (one or more
// unkeyed option entries). List order is meaningful: the host solver uses it as the
// tie-break preference among options. A PinnedSet is not safe for concurrent use.
type PinnedSet struct {
	entries []PinnedEntry
	keyed   map[string]int
}

// NewPinnedSet creates a PinnedSet seeded with the given packages as keyed entries.
// Later duplicates of a name replace the earlier package in place.
func NewPinnedSet(seed ...*Package) *PinnedSet {
	s := &PinnedSet{keyed: make(map[string]int, len(seed))}
	for _, pkg := range seed {
		s.Set(pkg.Name, pkg)
	}
	return s
}

// Contains reports whether a decision (keyed entry) exists for name.
// Open options do not count as a decision.
func (s *PinnedSet) Contains(name string) bool {
	_, ok := s.keyed[name]
	return ok
}

// Get returns the decided package for name.
func (s *PinnedSet) Get(name string) (*Package, error) {
	idx, ok := s.keyed[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrPackageNotFound, "no decision recorded for "+name), "package", name)
	}
	return s.entries[idx].Package, nil
}

// Set records pkg as the decision for name, replacing any prior keyed entry or options.
// The entry keeps the list position of the first entry previously held for name.
// Passing a nil package or empty name is a programming error and panics.
func (s *PinnedSet) Set(name string, pkg *Package) {
	if name == "" || pkg == nil {
		panic("domain: PinnedSet.Set requires a name and a non-nil package")
	}

	if idx, ok := s.keyed[name]; ok {
		s.entries[idx].Package = pkg
		return
	}

	first := -1
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Name != name {
			kept = append(kept, e)
			continue
		}
		if first == -1 {
			first = len(kept)
			kept = append(kept, PinnedEntry{Name: name, Package: pkg, Keyed: true})
		}
	}
	s.entries = kept

	if first == -1 {
		s.entries = append(s.entries, PinnedEntry{Name: name, Package: pkg, Keyed: true})
	}
	s.reindex()
}

// Remove drops every entry, keyed or not, for name.
func (s *PinnedSet) Remove(name string) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.reindex()
}

// AppendOption adds pkg as an open option. Several options may share a name.
// It reports false and leaves the set unchanged when a decision already exists for the name.
func (s *PinnedSet) AppendOption(pkg *Package) bool {
	if pkg == nil {
		panic("domain: PinnedSet.AppendOption requires a non-nil package")
	}
	if s.Contains(pkg.Name) {
		return false
	}
	s.entries = append(s.entries, PinnedEntry{Name: pkg.Name, Package: pkg})
	return true
}

// List returns the packages in insertion order.
func (s *PinnedSet) List() []*Package {
	out := make([]*Package, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Package
	}
	return out
}

// Entries returns a copy of the entries in insertion order.
func (s *PinnedSet) Entries() []PinnedEntry {
	out := make([]PinnedEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries, keyed and unkeyed.
func (s *PinnedSet) Len() int {
	return len(s.entries)
}

func (s *PinnedSet) reindex() {
	if s.keyed == nil {
		s.keyed = make(map[string]int, len(s.entries))
	}
	clear(s.keyed)
	for i, e := range s.entries {
		if e.Keyed {
			s.keyed[e.Name] = i
		}
	}
}
