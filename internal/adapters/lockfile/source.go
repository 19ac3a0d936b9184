package lockfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/uplock/internal/core/domain"
	"go.trai.ch/uplock/internal/core/ports"
	"go.trai.ch/zerr"
)

const httpClientTimeout = 30 * time.Second

var _ ports.LockSource = (*Source)(nil)

// Source implements ports.LockSource for local composer.lock files and http(s) URLs.
// Fetched remote lock files are cached on disk for offline use.
type Source struct {
	logger     ports.Logger
	httpClient *http.Client
}

// NewSource creates a Source with the default HTTP client.
func NewSource(log ports.Logger) *Source {
	return newSourceWithClient(log, &http.Client{Timeout: httpClientTimeout})
}

// newSourceWithClient creates a Source with a custom http client (used for testing).
func newSourceWithClient(log ports.Logger, client *http.Client) *Source {
	return &Source{
		logger:     log,
		httpClient: client,
	}
}

// Load reads cfg.LockFile and returns a Repository over its packages.
func (s *Source) Load(ctx context.Context, cfg domain.Config) (ports.LockAuthority, error) {
	if !cfg.Enabled() {
		return nil, zerr.Wrap(domain.ErrNoLockConfigured, "cannot load upstream lock file")
	}

	var (
		data    []byte
		fetched bool
		err     error
	)
	if cfg.IsRemote() {
		data, fetched, err = s.loadRemote(ctx, cfg)
	} else {
		data, err = readLocal(cfg.LockFile)
	}
	if err != nil {
		return nil, err
	}

	lock, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "lock_file", cfg.LockFile)
	}

	// Only documents that parse are cached
	if fetched {
		cachePath := CachePath(cacheDir(cfg), cfg.LockFile)
		if err := atomicWriteFile(cachePath, data); err != nil {
			s.logger.Warn(fmt.Sprintf("%s: %s: %v", domain.ErrLockCacheWriteFailed.Error(), cachePath, err))
		}
	}

	s.logger.Debug(fmt.Sprintf(
		"Loaded upstream lock file '%s' with %d packages (digest %s).",
		cfg.LockFile, len(lock.Packages), lock.Digest,
	))
	return NewRepository(lock), nil
}

func readLocal(path string) ([]byte, error) {
	//nolint:gosec // Path is provided by the user configuration
	data, err := os.ReadFile(path)
	if err != nil {
		readErr := zerr.Wrap(domain.ErrLockReadFailed, err.Error())
		return nil, zerr.With(readErr, "path", path)
	}
	return data, nil
}

// loadRemote returns the remote lock file content and whether it came from the network.
func (s *Source) loadRemote(ctx context.Context, cfg domain.Config) ([]byte, bool, error) {
	if !cfg.AllowHTTP {
		return nil, false, zerr.With(zerr.Wrap(domain.ErrRemoteLockDisallowed, "cannot fetch"), "url", cfg.LockFile)
	}

	if cfg.Offline {
		cachePath := CachePath(cacheDir(cfg), cfg.LockFile)
		data, err := os.ReadFile(cachePath) //nolint:gosec // Path is a hashed filename in the cache directory
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missErr := zerr.Wrap(domain.ErrLockCacheMiss, "offline mode")
				return nil, false, zerr.With(missErr, "url", cfg.LockFile)
			}
			return nil, false, zerr.With(zerr.Wrap(domain.ErrLockReadFailed, err.Error()), "path", cachePath)
		}
		s.logger.Debug(fmt.Sprintf("Using cached copy of upstream lock file '%s'.", cfg.LockFile))
		return data, false, nil
	}

	data, err := s.fetch(ctx, cfg.LockFile)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *Source) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockFetchFailed, err.Error()), "url", url)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockFetchFailed, err.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.Wrap(domain.ErrLockFetchFailed, fmt.Sprintf("unexpected status %d", resp.StatusCode))
		statusErr = zerr.With(statusErr, "status_code", resp.StatusCode)
		return nil, zerr.With(statusErr, "url", url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLockFetchFailed, err.Error()), "url", url)
	}
	return body, nil
}

// CachePath returns the cache file used for the remote lock file at url.
func CachePath(dir, url string) string {
	return filepath.Join(dir, fmt.Sprintf("%016x.json", xxhash.Sum64String(url)))
}

func cacheDir(cfg domain.Config) string {
	if cfg.CacheDir != "" {
		return filepath.Clean(cfg.CacheDir)
	}
	return domain.DefaultLockCachePath()
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "lock-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
