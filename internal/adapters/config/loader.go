// Package config provides the configuration loader for uplock.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader from an optional uplock.yaml and the environment.
// Environment variables take precedence over the file.
type Loader struct {
	logger    ports.Logger
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a Loader reading the process environment.
func NewLoader(log ports.Logger) *Loader {
	return newLoaderWithEnv(log, os.LookupEnv)
}

// newLoaderWithEnv creates a Loader with a custom environment lookup (used for testing).
func newLoaderWithEnv(log ports.Logger, lookupEnv func(string) (string, bool)) *Loader {
	return &Loader{
		logger:    log,
		lookupEnv: lookupEnv,
	}
}

// Load builds the configuration for the given working directory.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	file, err := l.readFile(filepath.Join(cwd, domain.ConfigFileName))
	if err != nil {
		return domain.Config{}, err
	}

	cfg := domain.Config{
		LockFile:  resolvePath(cwd, file.LockFile),
		AllowHTTP: file.AllowHTTP,
		Offline:   file.Offline,
		CacheDir:  resolvePath(cwd, file.CacheDir),
		LogLevel:  file.LogLevel,
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(cwd, domain.DefaultLockCachePath())
	}

	if v, ok := l.lookupEnv(domain.EnvLockFile); ok && v != "" {
		cfg.LockFile = v
	}
	if v, ok := l.lookupEnv(domain.EnvAllowHTTP); ok {
		cfg.AllowHTTP = truthy(v)
	}
	if v, ok := l.lookupEnv(domain.EnvOffline); ok {
		cfg.Offline = truthy(v)
	}
	if v, ok := l.lookupEnv(domain.EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}

	if _, err := domain.ParseLogLevel(cfg.LogLevel); err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "invalid configuration"), "log_level", cfg.LogLevel)
	}

	return cfg, nil
}

func (l *Loader) readFile(path string) (Uplockfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Uplockfile{}, nil
		}
		return Uplockfile{}, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file Uplockfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Uplockfile{}, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	if file.Version != "" && file.Version != SchemaVersion {
		l.logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", path, file.Version, SchemaVersion))
	}

	return file, nil
}

// resolvePath anchors relative file paths at cwd. URLs and empty values are returned as is.
func resolvePath(cwd, path string) string {
	if path == "" || filepath.IsAbs(path) || (domain.Config{LockFile: path}).IsRemote() {
		return path
	}
	return filepath.Join(cwd, path)
}

// truthy follows the shell convention used for the lock environment: unset, empty and "0" are false.
func truthy(v string) bool {
	return v != "" && v != "0"
}
