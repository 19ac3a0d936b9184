// Package pool reads snapshots of the host's pending resolution pool.
package pool

import (
	"bytes"
	"errors"
	"io"
	"os"

	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

var _ ports.PoolLoader = (*Loader)(nil)

// Loader implements ports.PoolLoader for YAML and JSON snapshots.
type Loader struct {
	stdin io.Reader
}

// NewLoader creates a Loader reading "-" from os.Stdin.
func NewLoader() *Loader {
	return &Loader{stdin: os.Stdin}
}

// Load reads and decodes the snapshot at path.
func (l *Loader) Load(path string) (*domain.PoolEvent, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinPath {
		data, err = io.ReadAll(l.stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path is provided by the user
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPoolReadFailed, err.Error()), "path", path)
	}

	event, err := Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return event, nil
}

// Decode converts snapshot bytes into a PoolEvent.
//
// When the snapshot has no top-level packages list, the candidates are the packages of
// every repository in repository order.
func Decode(data []byte) (*domain.PoolEvent, error) {
	var snap Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(domain.ErrPoolParseFailed, err.Error())
	}

	event := &domain.PoolEvent{
		Requires:     make([]domain.Requirement, 0, len(snap.Requires)),
		Repositories: make([]domain.Repository, 0, len(snap.Repositories)),
	}

	for _, req := range snap.Requires {
		if req.Name == "" {
			return nil, zerr.Wrap(domain.ErrPoolParseFailed, "requirement without a name")
		}
		constraint := req.Constraint
		if constraint == "" {
			constraint = domain.AnyConstraint
		}
		event.Requires = append(event.Requires, domain.Requirement{
			Name:       domain.NormalizeName(req.Name),
			Constraint: constraint,
		})
	}

	var fromRepos []*domain.Package
	for _, dto := range snap.Repositories {
		kind := domain.RepositoryKind(dto.Type)
		if !kind.Valid() {
			kindErr := zerr.With(zerr.Wrap(domain.ErrUnknownRepositoryKind, "invalid repository"), "repository", dto.Name)
			return nil, zerr.With(kindErr, "type", dto.Type)
		}

		pkgs, err := toPackages(dto.Packages)
		if err != nil {
			return nil, zerr.With(err, "repository", dto.Name)
		}
		event.Repositories = append(event.Repositories, domain.Repository{
			Name:     dto.Name,
			Kind:     kind,
			Packages: pkgs,
		})
		fromRepos = append(fromRepos, pkgs...)
	}

	if snap.Packages == nil {
		event.Packages = fromRepos
		return event, nil
	}

	pkgs, err := toPackages(snap.Packages)
	if err != nil {
		return nil, err
	}
	event.Packages = pkgs
	return event, nil
}

func toPackages(dtos []PackageDTO) ([]*domain.Package, error) {
	out := make([]*domain.Package, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Name == "" || dto.Version == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrPoolParseFailed, "package needs a name and a version"), "name", dto.Name)
		}
		pkg := domain.NewPackage(dto.Name, dto.Version)
		pkg.Type = dto.Type
		pkg.Requires = toLinks(pkg.Name, dto.Require)
		pkg.Provides = toLinks(pkg.Name, dto.Provide)
		pkg.Replaces = toLinks(pkg.Name, dto.Replace)
		out = append(out, pkg)
	}
	return out, nil
}

func toLinks(source string, entries LinkMap) []domain.Link {
	if len(entries) == 0 {
		return nil
	}
	links := make([]domain.Link, len(entries))
	for i, e := range entries {
		links[i] = domain.Link{Source: source, Target: domain.NormalizeName(e.Target), Constraint: e.Constraint}
	}
	return links
}
