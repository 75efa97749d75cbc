// Package eop manages Earth Orientation Parameters: IERS Bulletin A and
// Finals 2000A data, served through a cascading observation -> prediction
// lookup, with a process-wide Manager that fetches and caches the
// underlying files under a cross-process file lock. Grounded in
// original_source/.../Coordinate/Frame/Providers/IERS/BulletinA.cpp (the
// regex-per-line parse loop and the Observation/Prediction record shapes)
// and .../Frame/Provider/IERS/Manager.cpp (the lock-fetch-validate-move
// sequence), ported to Go idiom using the teacher's pkg/errors-wrapped
// error style.
package eop

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
	"github.com/ostkgo/physics/timekernel"
)

// Observation is one measured polar-motion/UT1-UTC row of a Bulletin A
// file, keyed by its Modified Julian Date.
type Observation struct {
	MJD               int
	PMX, PMXError     float64
	PMY, PMYError     float64
	UT1MinusUTC       float64
	UT1MinusUTCError  float64
}

// Prediction is one forecast polar-motion/UT1-UTC row of a Bulletin A file.
type Prediction struct {
	MJD         int
	PMX, PMY    float64
	UT1MinusUTC float64
}

// BulletinA is the parsed content of an IERS Bulletin A ("ser7.dat") file.
type BulletinA struct {
	Observations []Observation // sorted ascending by MJD
	Predictions  []Prediction  // sorted ascending by MJD
}

// The row grammars carry a literal "I"/"P" flag column ahead of the polar
// motion and UT1-UTC fields (IERS marks each as an Interpolated observation
// or a Predicted value); the flag itself isn't captured.
var (
	observationPattern = regexp.MustCompile(
		`^\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+I\s+(-?[\d.]+)\s+([\d.]+)\s+(-?[\d.]+)\s+([\d.]+)\s+I\s+(-?[\d.]+)\s+([\d.]+)\s*$`)
	predictionPattern = regexp.MustCompile(
		`^\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)\s+P\s+(-?[\d.]+)\s+(-?[\d.]+)\s+P\s+(-?[\d.]+)\s*$`)
)

// ParseBulletinA reads a Bulletin A file, matching each line against the
// fixed observation/prediction row grammars. Lines that match neither
// pattern (headers, blank lines, narrative text) are skipped, mirroring the
// original's "quick and dirty" per-line regex scan.
func ParseBulletinA(r io.Reader) (*BulletinA, error) {
	bulletin := &BulletinA{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if m := observationPattern.FindStringSubmatch(line); m != nil {
			obs := Observation{
				MJD:              atoi(m[4]),
				PMX:              atof(m[5]),
				PMXError:         atof(m[6]),
				PMY:              atof(m[7]),
				PMYError:         atof(m[8]),
				UT1MinusUTC:      atof(m[9]),
				UT1MinusUTCError: atof(m[10]),
			}
			bulletin.Observations = append(bulletin.Observations, obs)
			continue
		}

		if m := predictionPattern.FindStringSubmatch(line); m != nil {
			pred := Prediction{
				MJD:         atoi(m[4]),
				PMX:         atof(m[5]),
				PMY:         atof(m[6]),
				UT1MinusUTC: atof(m[7]),
			}
			bulletin.Predictions = append(bulletin.Predictions, pred)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "bulletin A: scan failed")
	}

	sort.Slice(bulletin.Observations, func(i, j int) bool { return bulletin.Observations[i].MJD < bulletin.Observations[j].MJD })
	sort.Slice(bulletin.Predictions, func(i, j int) bool { return bulletin.Predictions[i].MJD < bulletin.Predictions[j].MJD })

	if len(bulletin.Observations) == 0 && len(bulletin.Predictions) == 0 {
		return nil, errors.Wrap(ostkerr.DataUnavailable, "bulletin A: no observation or prediction rows found")
	}
	return bulletin, nil
}

// ObservationInterval returns the span covered by bulletin's observations.
func (b *BulletinA) ObservationInterval(ut1 timekernel.UT1Provider) (timekernel.Interval, error) {
	if len(b.Observations) == 0 {
		return timekernel.Interval{}, errors.Wrap(ostkerr.DataUnavailable, "bulletin A: no observations")
	}
	lower, err := instantFromMJD(b.Observations[0].MJD)
	if err != nil {
		return timekernel.Interval{}, err
	}
	upper, err := instantFromMJD(b.Observations[len(b.Observations)-1].MJD)
	if err != nil {
		return timekernel.Interval{}, err
	}
	return timekernel.NewInterval(lower, upper, timekernel.Closed)
}

func instantFromMJD(mjd int) (timekernel.Instant, error) {
	dt, err := timekernel.FromModifiedJulianDate(float64(mjd))
	if err != nil {
		return timekernel.Instant{}, err
	}
	return timekernel.NewInstant(timekernel.UTC, dt, nil)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
