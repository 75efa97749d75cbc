// Package spaceweather parses CSSI Space Weather data (daily Kp/Ap
// geomagnetic indices and F10.7 solar flux, observed and predicted) and
// serves a process-wide cached Manager, mirroring the eop package's
// cascading-lookup/fetch-under-lock shape. Grounded in
// original_source/.../Environment/Atmospheric/Earth/Weather/CSSISpaceWeather.cpp
// (the "UPDATED"/"BEGIN OBSERVED"/"BEGIN DAILY_PREDICTED" CSV section
// scanner) and Weather/Manager.cpp (the refresh sequence eop.Manager already
// ports for IERS data).
package spaceweather

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
	"github.com/ostkgo/physics/timekernel"
)

// DailyIndices is one day's row of CSSI Kp/Ap/F10.7 data: either an
// observation or a daily prediction, the two record shapes the original
// keeps identical ("CSSISpaceWeather::Observation" is reused verbatim for
// both sections).
type DailyIndices struct {
	MJD int

	BSRN int
	ND   int

	Kp      [8]float64
	KpSum   float64
	Ap      [8]int
	ApAvg   int
	Cp      float64
	C9      int
	ISN     int

	F107Obs          float64
	F107Adj          float64
	F107DataType     float64
	F107ObsCenter81  float64
	F107ObsLast81    float64
	F107AdjCenter81  float64
	F107AdjLast81    float64
}

// CSSISpaceWeather is the parsed content of a CSSI space-weather CSV file.
type CSSISpaceWeather struct {
	ReleaseDate  timekernel.Date
	Observations []DailyIndices // sorted ascending by MJD
	Predictions  []DailyIndices // sorted ascending by MJD
}

var monthAbbrev = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// ParseCSSISpaceWeather reads a CSSI space-weather CSV file (the format
// published at celestrak.org), extracting the OBSERVED and DAILY_PREDICTED
// sections. MONTHLY_PREDICTED is not parsed: spec.md's domain stack has no
// long-horizon monthly-mean consumer, mirroring the original's own
// commented-out monthly handling.
func ParseCSSISpaceWeather(r io.Reader) (*CSSISpaceWeather, error) {
	sw := &CSSISpaceWeather{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var section string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Section markers ("BEGIN OBSERVED", "UPDATED,2026,JAN,15") use
		// whichever of space or comma the published file happens to use
		// for that line; only data rows are a fixed comma-separated grammar.
		marker := strings.Fields(strings.ReplaceAll(line, ",", " "))

		switch {
		case marker[0] == "UPDATED":
			if len(marker) < 4 {
				continue
			}
			year := atoiWeather(marker[1])
			month := monthAbbrev[strings.ToUpper(marker[2])]
			day := atoiWeather(marker[3])
			date, err := timekernel.NewDate(year, month, day)
			if err != nil {
				return nil, err
			}
			sw.ReleaseDate = date

		case marker[0] == "BEGIN" && len(marker) >= 2 && marker[1] == "OBSERVED":
			section = "OBSERVED"
		case marker[0] == "END" && len(marker) >= 2 && marker[1] == "OBSERVED":
			section = ""
		case marker[0] == "BEGIN" && len(marker) >= 2 && marker[1] == "DAILY_PREDICTED":
			section = "DAILY_PREDICTED"
		case marker[0] == "END" && len(marker) >= 2 && marker[1] == "DAILY_PREDICTED":
			section = ""
		case marker[0] == "BEGIN" && len(marker) >= 2 && marker[1] == "MONTHLY_PREDICTED":
			section = "SKIP"
		case marker[0] == "END" && len(marker) >= 2 && marker[1] == "MONTHLY_PREDICTED":
			section = ""

		case section == "OBSERVED" || section == "DAILY_PREDICTED":
			fields := strings.Split(line, ",")
			for i := range fields {
				fields[i] = strings.TrimSpace(fields[i])
			}
			row, err := parseRow(fields)
			if err != nil {
				return nil, err
			}
			if section == "OBSERVED" {
				sw.Observations = append(sw.Observations, row)
			} else {
				sw.Predictions = append(sw.Predictions, row)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "spaceweather: scan failed")
	}

	sort.Slice(sw.Observations, func(i, j int) bool { return sw.Observations[i].MJD < sw.Observations[j].MJD })
	sort.Slice(sw.Predictions, func(i, j int) bool { return sw.Predictions[i].MJD < sw.Predictions[j].MJD })

	if len(sw.Observations) == 0 && len(sw.Predictions) == 0 {
		return nil, errors.Wrap(ostkerr.DataUnavailable, "spaceweather: no observation or prediction rows found")
	}
	return sw, nil
}

func parseRow(f []string) (DailyIndices, error) {
	if len(f) < 33 {
		return DailyIndices{}, errors.Wrapf(ostkerr.InvalidInput, "spaceweather: row has %d fields, want >= 33", len(f))
	}
	year, month, day := atoiWeather(f[0]), atoiWeather(f[1]), atoiWeather(f[2])
	date, err := timekernel.NewDate(year, month, day)
	if err != nil {
		return DailyIndices{}, err
	}
	mjd := int(timekernel.NewDateTime(date, timekernel.ClockTime{}).ModifiedJulianDate())

	row := DailyIndices{MJD: mjd, BSRN: atoiWeather(f[3]), ND: atoiWeather(f[4])}
	for i := 0; i < 8; i++ {
		row.Kp[i] = atofWeather(f[5+i])
		row.Ap[i] = atoiWeather(f[14+i])
	}
	row.KpSum = atofWeather(f[13])
	row.ApAvg = atoiWeather(f[22])
	row.Cp = atofWeather(f[23])
	row.C9 = atoiWeather(f[24])
	row.ISN = atoiWeather(f[25])
	row.F107Obs = atofWeather(f[26])
	row.F107Adj = atofWeather(f[27])
	row.F107DataType = atofWeather(f[28])
	row.F107ObsCenter81 = atofWeather(f[29])
	row.F107ObsLast81 = atofWeather(f[30])
	row.F107AdjCenter81 = atofWeather(f[31])
	row.F107AdjLast81 = atofWeather(f[32])
	return row, nil
}

// ObservationInterval returns the span covered by sw's observations.
func (sw *CSSISpaceWeather) ObservationInterval() (timekernel.Interval, error) {
	if len(sw.Observations) == 0 {
		return timekernel.Interval{}, errors.Wrap(ostkerr.DataUnavailable, "spaceweather: no observations")
	}
	lower, err := instantFromMJD(sw.Observations[0].MJD)
	if err != nil {
		return timekernel.Interval{}, err
	}
	upper, err := instantFromMJD(sw.Observations[len(sw.Observations)-1].MJD)
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

func atoiWeather(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atofWeather(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
