package manifest

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/ostkgo/physics/ostkerr"
)

// Downloader fetches a remote resource into destDir.
type Downloader interface {
	Download(url, destDir string) (path string, err error)
}

// Manager caches a process-wide Manifest, refreshed under the same
// cross-process lock discipline as eop.Manager/spaceweather.Manager,
// since the manifest file is itself just another remote-fetched,
// locally-cached data file per spec.md §6.
type Manager struct {
	mu sync.RWMutex

	manifest *Manifest

	localRepository string
	lockTimeout     time.Duration
	downloader      Downloader
	group           singleflight.Group
}

// NewManager constructs a Manager rooted at localRepository.
func NewManager(localRepository string, downloader Downloader, lockTimeout time.Duration) *Manager {
	return &Manager{localRepository: localRepository, downloader: downloader, lockTimeout: lockTimeout}
}

// Load replaces the Manager's in-memory manifest from r.
func (m *Manager) Load(r io.Reader) error {
	parsed, err := Parse(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.manifest = parsed
	m.mu.Unlock()
	return nil
}

func (m *Manager) lockFile() string { return filepath.Join(m.localRepository, ".lock") }

// FetchLatest downloads url under a cross-process lock and loads the result
// as the active manifest.
func (m *Manager) FetchLatest(url string) error {
	if m.downloader == nil {
		return errors.Wrap(ostkerr.InvalidState, "manifest: manager has no configured downloader")
	}
	_, err, _ := m.group.Do("fetch", func() (interface{}, error) {
		if err := os.MkdirAll(m.localRepository, 0o755); err != nil {
			return nil, errors.Wrap(err, "manifest: creating local repository")
		}

		ctx, cancel := context.WithTimeout(context.Background(), m.lockTimeout)
		defer cancel()
		fl := flock.New(m.lockFile())
		locked, lockErr := fl.TryLockContext(ctx, 50*time.Millisecond)
		if lockErr != nil || !locked {
			return nil, errors.Wrap(ostkerr.Timeout, "manifest: could not acquire local repository lock")
		}
		defer fl.Unlock()

		tmpDir, err := os.MkdirTemp(m.localRepository, "tmp-")
		if err != nil {
			return nil, errors.Wrap(err, "manifest: creating temporary directory")
		}
		defer os.RemoveAll(tmpDir)

		path, err := m.downloader.Download(url, tmpDir)
		if err != nil {
			return nil, errors.Wrapf(err, "manifest: fetching %q", url)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return nil, errors.Wrapf(ostkerr.DataUnavailable, "manifest: downloaded file from %q is empty or missing", url)
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "manifest: opening downloaded file")
		}
		defer f.Close()
		if err := m.Load(f); err != nil {
			return nil, err
		}

		finalPath := filepath.Join(m.localRepository, filepath.Base(path))
		if err := os.Rename(path, finalPath); err != nil {
			return nil, errors.Wrap(err, "manifest: moving downloaded file into place")
		}
		return nil, nil
	})
	return err
}

// GetRemoteURL returns the remote URL registered for name in the currently
// loaded manifest.
func (m *Manager) GetRemoteURL(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.manifest == nil {
		return "", errors.Wrap(ostkerr.DataUnavailable, "manifest: no manifest loaded")
	}
	return m.manifest.GetRemoteURL(name)
}

// GetLastUpdateTimestamp returns the raw last-update timestamp string
// registered for name in the currently loaded manifest.
func (m *Manager) GetLastUpdateTimestamp(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.manifest == nil {
		return "", errors.Wrap(ostkerr.DataUnavailable, "manifest: no manifest loaded")
	}
	return m.manifest.GetLastUpdateTimestamp(name)
}

// HTTPDownloader is the default Downloader, backed by net/http.
type HTTPDownloader struct {
	Client *http.Client
}

// Download GETs url and writes its body to a file inside destDir.
func (h HTTPDownloader) Download(url, destDir string) (string, error) {
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "manifest: GET %q", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(ostkerr.DataUnavailable, "manifest: GET %q returned status %d", url, resp.StatusCode)
	}

	dest := filepath.Join(destDir, filepath.Base(url))
	f, err := os.Create(dest)
	if err != nil {
		return "", errors.Wrap(err, "manifest: creating download destination")
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", errors.Wrap(err, "manifest: writing downloaded content")
	}
	return dest, nil
}
