package spaceweather

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/ostkgo/physics/manifest"
	"github.com/ostkgo/physics/ostkerr"
	"github.com/ostkgo/physics/timekernel"
)

// manifestEntryCSSISpaceWeather is the manifest catalog entry name
// FetchLatest resolves against.
const manifestEntryCSSISpaceWeather = "cssi-space-weather"

// Downloader fetches a remote space-weather file into destDir, returning
// the path to the downloaded file.
type Downloader interface {
	Download(url, destDir string) (path string, err error)
}

// Manager is the process-wide CSSI space-weather cache, structured exactly
// like eop.Manager (same lock-fetch-validate-move refresh sequence, same
// cascading observation -> prediction lookup): both front an IERS-published,
// MJD-keyed daily data file under Manager.cpp's shared refresh pattern.
type Manager struct {
	mu sync.RWMutex

	data *CSSISpaceWeather

	localRepository string
	lockTimeout     time.Duration
	downloader      Downloader
	group           singleflight.Group
}

// NewManager constructs a Manager rooted at localRepository with the given
// Downloader and lock-acquisition timeout.
func NewManager(localRepository string, downloader Downloader, lockTimeout time.Duration) *Manager {
	return &Manager{localRepository: localRepository, downloader: downloader, lockTimeout: lockTimeout}
}

// Load replaces the Manager's in-memory table from r.
func (m *Manager) Load(r io.Reader) error {
	sw, err := ParseCSSISpaceWeather(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = sw
	m.mu.Unlock()
	return nil
}

func (m *Manager) lockFile() string { return filepath.Join(m.localRepository, ".lock") }

// FetchLatest resolves the "cssi-space-weather" entry in man's loaded
// manifest to a remote URL, downloads it under a cross-process lock,
// validates the result, and loads it as the Manager's active table.
func (m *Manager) FetchLatest(man *manifest.Manager) error {
	if man == nil {
		return errors.Wrap(ostkerr.InvalidState, "spaceweather: no manifest manager configured")
	}
	url, err := man.GetRemoteURL(manifestEntryCSSISpaceWeather)
	if err != nil {
		return errors.Wrapf(err, "spaceweather: resolving manifest entry %q", manifestEntryCSSISpaceWeather)
	}
	return m.fetchLatestFromURL(url)
}

// FetchLatestFromURL bypasses manifest resolution, fetching directly from
// url. For callers (and tests) that already have a resolved URL in hand.
func (m *Manager) FetchLatestFromURL(url string) error {
	return m.fetchLatestFromURL(url)
}

func (m *Manager) fetchLatestFromURL(url string) error {
	if m.downloader == nil {
		return errors.Wrap(ostkerr.InvalidState, "spaceweather: manager has no configured downloader")
	}
	_, err, _ := m.group.Do("fetch", func() (interface{}, error) {
		if err := os.MkdirAll(m.localRepository, 0o755); err != nil {
			return nil, errors.Wrap(err, "spaceweather: creating local repository")
		}

		ctx, cancel := context.WithTimeout(context.Background(), m.lockTimeout)
		defer cancel()
		fl := flock.New(m.lockFile())
		locked, lockErr := fl.TryLockContext(ctx, 50*time.Millisecond)
		if lockErr != nil || !locked {
			return nil, errors.Wrap(ostkerr.Timeout, "spaceweather: could not acquire local repository lock")
		}
		defer fl.Unlock()

		tmpDir, err := os.MkdirTemp(m.localRepository, "tmp-")
		if err != nil {
			return nil, errors.Wrap(err, "spaceweather: creating temporary directory")
		}
		defer os.RemoveAll(tmpDir)

		path, err := m.downloader.Download(url, tmpDir)
		if err != nil {
			return nil, errors.Wrapf(err, "spaceweather: fetching %q", url)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return nil, errors.Wrapf(ostkerr.DataUnavailable, "spaceweather: downloaded file from %q is empty or missing", url)
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "spaceweather: opening downloaded file")
		}
		defer f.Close()
		if err := m.Load(f); err != nil {
			return nil, err
		}

		finalPath := filepath.Join(m.localRepository, filepath.Base(path))
		if err := os.Rename(path, finalPath); err != nil {
			return nil, errors.Wrap(err, "spaceweather: moving downloaded file into place")
		}
		return nil, nil
	})
	return err
}

// GetDailyIndicesAt returns the observation or prediction row covering
// instant's UTC calendar day, cascading observation -> prediction.
func (m *Manager) GetDailyIndicesAt(instant timekernel.Instant) (DailyIndices, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return DailyIndices{}, errors.Wrap(ostkerr.DataUnavailable, "spaceweather: no data loaded")
	}
	dt, err := instant.DateTime(timekernel.UTC, nil)
	if err != nil {
		return DailyIndices{}, err
	}
	mjd := int(dt.ModifiedJulianDate())

	if row, ok := findRow(m.data.Observations, mjd); ok {
		return row, nil
	}
	if row, ok := findRow(m.data.Predictions, mjd); ok {
		return row, nil
	}
	return DailyIndices{}, errors.Wrapf(ostkerr.DataUnavailable, "spaceweather: no data covering MJD %d", mjd)
}

func findRow(rows []DailyIndices, mjd int) (DailyIndices, bool) {
	i := sort.Search(len(rows), func(i int) bool { return rows[i].MJD >= mjd })
	if i < len(rows) && rows[i].MJD == mjd {
		return rows[i], true
	}
	return DailyIndices{}, false
}
