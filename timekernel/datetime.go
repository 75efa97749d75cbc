package timekernel

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// unixEpochJD is the Julian Date of 1970-01-01 00:00:00.
const unixEpochJD = 2440587.5

// mjdOffset is JD - MJD.
const mjdOffset = 2400000.5

// DateTime pairs a Date with a ClockTime.
type DateTime struct {
	Date Date
	Time ClockTime
}

// NewDateTime constructs a DateTime from its parts.
func NewDateTime(date Date, t ClockTime) DateTime { return DateTime{Date: date, Time: t} }

// JulianDate returns the Julian Date of dt. Precision is bounded by
// float64's 52-bit mantissa relative to JD's ~2.4e6 magnitude — roughly
// microsecond-level, not nanosecond-level, for dates near the present era.
// Callers needing exact nanosecond round-trips should stay on Instant (an
// integer nanosecond count) rather than round-tripping through JD; see
// DESIGN.md's "Julian Date precision" entry.
func (dt DateTime) JulianDate() float64 {
	days := dt.Date.DaysSinceUnixEpoch()
	nsOfDay := dt.Time.NanosecondOfDay()
	return unixEpochJD + float64(days) + float64(nsOfDay)/float64(nsPerDay)
}

// ModifiedJulianDate returns the Modified Julian Date of dt (JD - 2400000.5).
func (dt DateTime) ModifiedJulianDate() float64 {
	return dt.JulianDate() - mjdOffset
}

// FromJulianDate constructs a DateTime from a Julian Date.
func FromJulianDate(jd float64) (DateTime, error) {
	shifted := jd - unixEpochJD
	days := math.Floor(shifted)
	frac := shifted - days
	nsOfDay := int64(math.Round(frac * float64(nsPerDay)))
	if nsOfDay >= nsPerDay {
		nsOfDay -= nsPerDay
		days++
	}
	date := DateFromDaysSinceUnixEpoch(int64(days))
	if date.Year < MinYear || date.Year > MaxYear {
		return DateTime{}, errors.Wrapf(ostkerr.InvalidInput, "datetime: JD %.6f outside representable year range", jd)
	}
	return DateTime{Date: date, Time: ClockTimeFromNanosecondOfDay(nsOfDay)}, nil
}

// FromModifiedJulianDate constructs a DateTime from a Modified Julian Date.
func FromModifiedJulianDate(mjd float64) (DateTime, error) {
	return FromJulianDate(mjd + mjdOffset)
}

// civilNs returns the signed nanosecond count from 1970-01-01T00:00:00 to dt,
// treating dt as a plain calendar reading with no scale-specific meaning.
// Used as the common arithmetic substrate for Instant's per-scale civil
// conversions.
func civilNs(dt DateTime) int64 {
	return dt.Date.DaysSinceUnixEpoch()*nsPerDay + dt.Time.NanosecondOfDay()
}

// civilFromNs is the inverse of civilNs.
func civilFromNs(ns int64) DateTime {
	days := ns / nsPerDay
	rem := ns % nsPerDay
	if rem < 0 {
		rem += nsPerDay
		days--
	}
	return DateTime{Date: DateFromDaysSinceUnixEpoch(days), Time: ClockTimeFromNanosecondOfDay(rem)}
}

// DateTimeFormat identifies a DateTime serialization.
type DateTimeFormat int

const (
	// DateTimeStandard renders "YYYY-MM-DD HH:MM:SS.mmm.uuu.nnn".
	DateTimeStandard DateTimeFormat = iota
	// DateTimeISO8601 renders "YYYY-MM-DDTHH:MM:SS.fffffffffZ".
	DateTimeISO8601
	// DateTimeSTK renders "D Mon YYYY HH:MM:SS.fffffffff".
	DateTimeSTK
)

var stkMonths = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
var stkMonthIndex = func() map[string]int {
	m := map[string]int{}
	for i, name := range stkMonths {
		if name != "" {
			m[name] = i
		}
	}
	return m
}()

// Format renders dt in the requested serialization.
func (dt DateTime) Format(format DateTimeFormat) (string, error) {
	d, t := dt.Date, dt.Time
	nine := fmt.Sprintf("%03d%03d%03d", t.Millisecond, t.Microsecond, t.Nanosecond)
	switch format {
	case DateTimeStandard:
		return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%03d.%03d.%03d",
			d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, t.Millisecond, t.Microsecond, t.Nanosecond), nil
	case DateTimeISO8601:
		return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%sZ",
			d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, nine), nil
	case DateTimeSTK:
		return fmt.Sprintf("%d %s %04d %02d:%02d:%02d.%s",
			d.Day, stkMonths[d.Month], d.Year, t.Hour, t.Minute, t.Second, nine), nil
	default:
		return "", errors.Wrap(ostkerr.InvalidInput, "datetime: unknown format")
	}
}

// String renders dt using DateTimeStandard.
func (dt DateTime) String() string {
	s, _ := dt.Format(DateTimeStandard)
	return s
}

var standardDateTimePattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2}) (\d{2}):(\d{2}):(\d{2})(?:\.(\d{3})\.(\d{3})\.(\d{3}))?$`)
var iso8601DateTimePattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?(Z|[+-]\d{4})?$`)
var stkDateTimePattern = regexp.MustCompile(
	`^(\d{1,2}) (\w{3}) (\d{4}) (\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?$`)

// ParseDateTime parses s in the requested serialization.
func ParseDateTime(s string, format DateTimeFormat) (DateTime, error) {
	switch format {
	case DateTimeStandard:
		m := standardDateTimePattern.FindStringSubmatch(s)
		if m == nil {
			return DateTime{}, errors.Wrapf(ostkerr.InvalidInput, "datetime: cannot parse Standard %q", s)
		}
		date, err := NewDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
		if err != nil {
			return DateTime{}, err
		}
		ms, us, ns := 0, 0, 0
		if m[7] != "" {
			ms, us, ns = atoi(m[7]), atoi(m[8]), atoi(m[9])
		}
		t, err := NewClockTime(atoi(m[4]), atoi(m[5]), atoi(m[6]), ms, us, ns)
		if err != nil {
			return DateTime{}, err
		}
		return DateTime{Date: date, Time: t}, nil

	case DateTimeISO8601:
		m := iso8601DateTimePattern.FindStringSubmatch(s)
		if m == nil {
			return DateTime{}, errors.Wrapf(ostkerr.InvalidInput, "datetime: cannot parse ISO8601 %q", s)
		}
		date, err := NewDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
		if err != nil {
			return DateTime{}, err
		}
		ms, us, ns := parseFracDigits(m[7])
		t, err := NewClockTime(atoi(m[4]), atoi(m[5]), atoi(m[6]), int(ms), int(us), int(ns))
		if err != nil {
			return DateTime{}, err
		}
		return DateTime{Date: date, Time: t}, nil

	case DateTimeSTK:
		m := stkDateTimePattern.FindStringSubmatch(s)
		if m == nil {
			return DateTime{}, errors.Wrapf(ostkerr.InvalidInput, "datetime: cannot parse STK %q", s)
		}
		month, ok := stkMonthIndex[m[2]]
		if !ok {
			return DateTime{}, errors.Wrapf(ostkerr.InvalidInput, "datetime: unknown month %q", m[2])
		}
		date, err := NewDate(atoi(m[3]), month, atoi(m[1]))
		if err != nil {
			return DateTime{}, err
		}
		ms, us, ns := parseFracDigits(m[7])
		t, err := NewClockTime(atoi(m[4]), atoi(m[5]), atoi(m[6]), int(ms), int(us), int(ns))
		if err != nil {
			return DateTime{}, err
		}
		return DateTime{Date: date, Time: t}, nil

	default:
		return DateTime{}, errors.Wrap(ostkerr.InvalidInput, "datetime: unknown format")
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
