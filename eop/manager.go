package eop

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

// Manifest entry names FetchLatestBulletinA/FetchLatestFinals2000A resolve
// against, matching the catalog original_source/.../Manager.cpp consults
// before every fetch (getRemoteDataUrls/getLastUpdateTimestampFor).
const (
	manifestEntryBulletinA   = "bulletin-a"
	manifestEntryFinals2000A = "finals-2000a"
)

// Downloader fetches a remote EOP data file into destDir, returning the
// path to the downloaded file. The default implementation is backed by
// net/http; tests substitute an in-memory fake.
type Downloader interface {
	Download(url, destDir string) (path string, err error)
}

// Source identifies which underlying table served an EOP lookup.
type Source int

const (
	// SourceObservation: a measured Bulletin A row.
	SourceObservation Source = iota
	// SourcePrediction: a forecast Bulletin A row.
	SourcePrediction
	// SourceFinals2000A: the combined Bulletin A/B finals solution.
	SourceFinals2000A
)

// Manager is the process-wide Earth Orientation Parameters cache: it holds
// the most recently loaded Bulletin A and Finals 2000A tables and serves
// cascading lookups (observation -> prediction -> Finals2000A) for polar
// motion, UT1-UTC, and length-of-day. Grounded on
// original_source/.../Frame/Provider/IERS/Manager.cpp's
// lock-fetch-validate-move refresh sequence, reworked around a
// gofrs/flock cross-process lock and a singleflight.Group that coalesces
// concurrent refreshes instead of the original's coarse std::mutex.
type Manager struct {
	mu sync.RWMutex

	bulletinA *BulletinA
	finals    *Finals2000A

	localRepository string
	lockTimeout     time.Duration
	downloader      Downloader
	group           singleflight.Group
}

// NewManager constructs a Manager rooted at localRepository (created on
// first use) with the given Downloader and lock-acquisition timeout.
func NewManager(localRepository string, downloader Downloader, lockTimeout time.Duration) *Manager {
	return &Manager{
		localRepository: localRepository,
		downloader:      downloader,
		lockTimeout:     lockTimeout,
	}
}

// LoadBulletinA replaces the Manager's in-memory Bulletin A table from r.
func (m *Manager) LoadBulletinA(r io.Reader) error {
	b, err := ParseBulletinA(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.bulletinA = b
	m.mu.Unlock()
	return nil
}

// LoadFinals2000A replaces the Manager's in-memory Finals 2000A table from r.
func (m *Manager) LoadFinals2000A(r io.Reader) error {
	f, err := ParseFinals2000A(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.finals = f
	m.mu.Unlock()
	return nil
}

// lockFile is the cross-process sentinel guarding localRepository, per
// spec.md §6's IDLE -> SERVE -> RELOAD -> LOCK -> FETCH -> VALIDATE+MOVE
// state machine: FetchLatestBulletinA/FetchLatestFinals2000A acquire this
// lock (LOCK), download into a temporary directory (FETCH), validate the
// result is non-empty (VALIDATE), then atomically move it into place and
// release (MOVE, then back to IDLE).
func (m *Manager) lockFile() string {
	return filepath.Join(m.localRepository, ".lock")
}

// FetchLatestBulletinA resolves the "bulletin-a" entry in man's loaded
// manifest to a remote URL, downloads it into the local repository's
// bulletin-A directory under a cross-process lock, validates the result,
// and loads it as the Manager's active Bulletin A table. Mirrors
// original_source/.../Manager.cpp's getRemoteDataUrls-before-fetch
// sequence: the manifest, not a caller-supplied URL, is the source of
// truth for where the data lives.
func (m *Manager) FetchLatestBulletinA(man *manifest.Manager) error {
	return m.fetchLatestFromManifest(man, manifestEntryBulletinA, "bulletin-A", m.LoadBulletinA)
}

// FetchLatestFinals2000A resolves the "finals-2000a" entry in man's loaded
// manifest to a remote URL, downloads it into the local repository's
// finals-2000A directory under a cross-process lock, validates the
// result, and loads it as the Manager's active Finals 2000A table.
func (m *Manager) FetchLatestFinals2000A(man *manifest.Manager) error {
	return m.fetchLatestFromManifest(man, manifestEntryFinals2000A, "finals-2000A", m.LoadFinals2000A)
}

// FetchLatestBulletinAFromURL bypasses manifest resolution, fetching
// directly from url. For callers (and tests) that already have a resolved
// URL in hand rather than a manifest.Manager.
func (m *Manager) FetchLatestBulletinAFromURL(url string) error {
	return m.fetchAndLoad(url, "bulletin-A", m.LoadBulletinA)
}

// FetchLatestFinals2000AFromURL is FetchLatestFinals2000A's
// manifest-bypassing counterpart.
func (m *Manager) FetchLatestFinals2000AFromURL(url string) error {
	return m.fetchAndLoad(url, "finals-2000A", m.LoadFinals2000A)
}

func (m *Manager) fetchLatestFromManifest(man *manifest.Manager, entryName, subdir string, load func(io.Reader) error) error {
	if man == nil {
		return errors.Wrap(ostkerr.InvalidState, "eop: no manifest manager configured")
	}
	url, err := man.GetRemoteURL(entryName)
	if err != nil {
		return errors.Wrapf(err, "eop: resolving manifest entry %q", entryName)
	}
	return m.fetchAndLoad(url, subdir, load)
}

func (m *Manager) fetchAndLoad(url, subdir string, load func(io.Reader) error) error {
	if m.downloader == nil {
		return errors.Wrap(ostkerr.InvalidState, "eop: manager has no configured downloader")
	}
	_, err, _ := m.group.Do(subdir, func() (interface{}, error) {
		destDir := filepath.Join(m.localRepository, subdir)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return nil, errors.Wrap(err, "eop: creating destination directory")
		}
		if err := os.MkdirAll(m.localRepository, 0o755); err != nil {
			return nil, errors.Wrap(err, "eop: creating local repository")
		}

		ctx, cancel := context.WithTimeout(context.Background(), m.lockTimeout)
		defer cancel()
		fl := flock.New(m.lockFile())
		locked, lockErr := fl.TryLockContext(ctx, 50*time.Millisecond)
		if lockErr != nil || !locked {
			return nil, errors.Wrap(ostkerr.Timeout, "eop: could not acquire local repository lock")
		}
		defer fl.Unlock()

		tmpDir, err := os.MkdirTemp(destDir, "tmp-")
		if err != nil {
			return nil, errors.Wrap(err, "eop: creating temporary directory")
		}
		defer os.RemoveAll(tmpDir)

		path, err := m.downloader.Download(url, tmpDir)
		if err != nil {
			return nil, errors.Wrapf(err, "eop: fetching %q", url)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return nil, errors.Wrapf(ostkerr.DataUnavailable, "eop: downloaded file from %q is empty or missing", url)
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "eop: opening downloaded file")
		}
		defer f.Close()
		if err := load(f); err != nil {
			return nil, err
		}

		finalPath := filepath.Join(destDir, filepath.Base(path))
		if err := os.Rename(path, finalPath); err != nil {
			return nil, errors.Wrap(err, "eop: moving downloaded file into place")
		}
		return nil, nil
	})
	return err
}

// lookup is the cascading observation -> prediction -> Finals2000A result
// for a single MJD-keyed quantity.
type lookup struct {
	source Source
	mjd    int
	pmx    float64
	pmy    float64
	ut1MinusUTC float64
	lod    float64
}

// lookupAt returns the bracketing rows' linear interpolation for mjd,
// cascading through the observation table, then the prediction table,
// then Finals2000A, per spec.md §6.
func (m *Manager) lookupAt(mjd float64) (lookup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.bulletinA != nil {
		if l, ok := interpolateObservations(m.bulletinA.Observations, mjd); ok {
			return l, nil
		}
		if l, ok := interpolatePredictions(m.bulletinA.Predictions, mjd); ok {
			return l, nil
		}
	}
	if m.finals != nil {
		if l, ok := interpolateFinals(m.finals.Rows, mjd); ok {
			return l, nil
		}
	}
	return lookup{}, errors.Wrapf(ostkerr.DataUnavailable, "eop: no data covering MJD %.3f", mjd)
}

func interpolateObservations(rows []Observation, mjd float64) (lookup, bool) {
	if len(rows) == 0 || mjd < float64(rows[0].MJD) || mjd > float64(rows[len(rows)-1].MJD) {
		return lookup{}, false
	}
	i := sort.Search(len(rows), func(i int) bool { return float64(rows[i].MJD) >= mjd })
	if i < len(rows) && float64(rows[i].MJD) == mjd {
		r := rows[i]
		return lookup{source: SourceObservation, mjd: r.MJD, pmx: r.PMX, pmy: r.PMY, ut1MinusUTC: r.UT1MinusUTC}, true
	}
	if i == 0 || i >= len(rows) {
		return lookup{}, false
	}
	a, b := rows[i-1], rows[i]
	frac := (mjd - float64(a.MJD)) / float64(b.MJD-a.MJD)
	return lookup{
		source:      SourceObservation,
		pmx:         lerp(a.PMX, b.PMX, frac),
		pmy:         lerp(a.PMY, b.PMY, frac),
		ut1MinusUTC: lerp(a.UT1MinusUTC, b.UT1MinusUTC, frac),
	}, true
}

func interpolatePredictions(rows []Prediction, mjd float64) (lookup, bool) {
	if len(rows) == 0 || mjd < float64(rows[0].MJD) || mjd > float64(rows[len(rows)-1].MJD) {
		return lookup{}, false
	}
	i := sort.Search(len(rows), func(i int) bool { return float64(rows[i].MJD) >= mjd })
	if i < len(rows) && float64(rows[i].MJD) == mjd {
		r := rows[i]
		return lookup{source: SourcePrediction, mjd: r.MJD, pmx: r.PMX, pmy: r.PMY, ut1MinusUTC: r.UT1MinusUTC}, true
	}
	if i == 0 || i >= len(rows) {
		return lookup{}, false
	}
	a, b := rows[i-1], rows[i]
	frac := (mjd - float64(a.MJD)) / float64(b.MJD-a.MJD)
	return lookup{
		source:      SourcePrediction,
		pmx:         lerp(a.PMX, b.PMX, frac),
		pmy:         lerp(a.PMY, b.PMY, frac),
		ut1MinusUTC: lerp(a.UT1MinusUTC, b.UT1MinusUTC, frac),
	}, true
}

func interpolateFinals(rows []Finals2000ARow, mjd float64) (lookup, bool) {
	if len(rows) == 0 || mjd < float64(rows[0].MJD) || mjd > float64(rows[len(rows)-1].MJD) {
		return lookup{}, false
	}
	i := sort.Search(len(rows), func(i int) bool { return float64(rows[i].MJD) >= mjd })
	if i < len(rows) && float64(rows[i].MJD) == mjd {
		r := rows[i]
		return lookup{source: SourceFinals2000A, mjd: r.MJD, pmx: r.PMX, pmy: r.PMY, ut1MinusUTC: r.UT1MinusUTC, lod: r.LOD}, true
	}
	if i == 0 || i >= len(rows) {
		return lookup{}, false
	}
	a, b := rows[i-1], rows[i]
	frac := (mjd - float64(a.MJD)) / float64(b.MJD-a.MJD)
	return lookup{
		source:      SourceFinals2000A,
		pmx:         lerp(a.PMX, b.PMX, frac),
		pmy:         lerp(a.PMY, b.PMY, frac),
		ut1MinusUTC: lerp(a.UT1MinusUTC, b.UT1MinusUTC, frac),
		lod:         lerp(a.LOD, b.LOD, frac),
	}, true
}

func lerp(a, b, frac float64) float64 { return a + (b-a)*frac }

// GetPolarMotionAt returns (x, y) polar motion in arcseconds at instant.
func (m *Manager) GetPolarMotionAt(instant timekernel.Instant) (x, y float64, err error) {
	dt, err := instant.DateTime(timekernel.UTC, nil)
	if err != nil {
		return 0, 0, err
	}
	l, err := m.lookupAt(dt.ModifiedJulianDate())
	if err != nil {
		return 0, 0, err
	}
	return l.pmx, l.pmy, nil
}

// GetUT1MinusUTCAt returns UT1-UTC as a Duration at instant.
func (m *Manager) GetUT1MinusUTCAt(instant timekernel.Instant) (timekernel.Duration, error) {
	dt, err := instant.DateTime(timekernel.UTC, nil)
	if err != nil {
		return timekernel.Duration{}, err
	}
	l, err := m.lookupAt(dt.ModifiedJulianDate())
	if err != nil {
		return timekernel.Duration{}, err
	}
	return timekernel.Seconds(l.ut1MinusUTC), nil
}

// GetLODAt returns the excess length-of-day as a Duration at instant.
// Only Finals2000A rows carry LOD; a lookup served from Bulletin A returns
// a zero Duration.
func (m *Manager) GetLODAt(instant timekernel.Instant) (timekernel.Duration, error) {
	dt, err := instant.DateTime(timekernel.UTC, nil)
	if err != nil {
		return timekernel.Duration{}, err
	}
	l, err := m.lookupAt(dt.ModifiedJulianDate())
	if err != nil {
		return timekernel.Duration{}, err
	}
	return timekernel.Milliseconds(l.lod), nil
}
