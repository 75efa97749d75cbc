// Package timekernel implements the leap-second-aware time model: Duration,
// Date, Time, DateTime, Instant, Interval, and the Scale conversion graph
// between TAI/UTC/TT/UT1/GPST. Grounded in the teacher's timescale package
// (timescale_test.go's DeltaT/UTCToTT/TTToUT1 contract) and in
// other_examples/brandondube-tai's leap-second table shape and TAI.Format
// percent-specifier scanner, generalized to spec.md §4.B's Standard/ISO8601
// duration grammar and §3's DateTime/Instant data model.
package timekernel

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

const (
	nsPerMicrosecond int64 = 1_000
	nsPerMillisecond int64 = 1_000_000
	nsPerSecond      int64 = 1_000_000_000
	nsPerMinute            = 60 * nsPerSecond
	nsPerHour              = 60 * nsPerMinute
	nsPerDay               = 24 * nsPerHour
	nsPerWeek              = 7 * nsPerDay
)

// Duration is a signed count of nanoseconds. The zero value is undefined;
// arithmetic is closed over Duration, but any operation on an undefined
// Duration fails with ostkerr.Undefined.
type Duration struct {
	ns      int64
	defined bool
}

func newDuration(ns int64) Duration { return Duration{ns: ns, defined: true} }

// UndefinedDuration returns the undefined sentinel Duration.
func UndefinedDuration() Duration { return Duration{} }

// IsDefined reports whether d carries a value.
func (d Duration) IsDefined() bool { return d.defined }

func roundNs(ns float64) int64 { return int64(math.Round(ns)) }

// Nanoseconds constructs a Duration of n nanoseconds.
func Nanoseconds(n float64) Duration { return newDuration(roundNs(n)) }

// Microseconds constructs a Duration of n microseconds.
func Microseconds(n float64) Duration { return newDuration(roundNs(n * float64(nsPerMicrosecond))) }

// Milliseconds constructs a Duration of n milliseconds.
func Milliseconds(n float64) Duration { return newDuration(roundNs(n * float64(nsPerMillisecond))) }

// Seconds constructs a Duration of n seconds.
func Seconds(n float64) Duration { return newDuration(roundNs(n * float64(nsPerSecond))) }

// Minutes constructs a Duration of n minutes.
func Minutes(n float64) Duration { return newDuration(roundNs(n * float64(nsPerMinute))) }

// Hours constructs a Duration of n hours.
func Hours(n float64) Duration { return newDuration(roundNs(n * float64(nsPerHour))) }

// Days constructs a Duration of n days.
func Days(n float64) Duration { return newDuration(roundNs(n * float64(nsPerDay))) }

// Weeks constructs a Duration of n weeks.
func Weeks(n float64) Duration { return newDuration(roundNs(n * float64(nsPerWeek))) }

// InNanoseconds returns d in nanoseconds.
func (d Duration) InNanoseconds() (int64, error) {
	if !d.defined {
		return 0, errors.Wrap(ostkerr.Undefined, "duration: value undefined")
	}
	return d.ns, nil
}

// InSeconds returns d in (fractional) seconds.
func (d Duration) InSeconds() (float64, error) {
	if !d.defined {
		return 0, errors.Wrap(ostkerr.Undefined, "duration: value undefined")
	}
	return float64(d.ns) / float64(nsPerSecond), nil
}

// Add returns d + other. Both must be defined.
func (d Duration) Add(other Duration) (Duration, error) {
	if !d.defined || !other.defined {
		return Duration{}, errors.Wrap(ostkerr.Undefined, "duration: arithmetic on undefined value")
	}
	return newDuration(d.ns + other.ns), nil
}

// Sub returns d - other.
func (d Duration) Sub(other Duration) (Duration, error) {
	if !d.defined || !other.defined {
		return Duration{}, errors.Wrap(ostkerr.Undefined, "duration: arithmetic on undefined value")
	}
	return newDuration(d.ns - other.ns), nil
}

// Scale returns d multiplied by a real scalar, rounded to integer nanoseconds.
func (d Duration) Scale(scalar float64) (Duration, error) {
	if !d.defined {
		return Duration{}, errors.Wrap(ostkerr.Undefined, "duration: arithmetic on undefined value")
	}
	return newDuration(roundNs(float64(d.ns) * scalar)), nil
}

// DivideBy returns d divided by a real scalar, rounded to integer nanoseconds.
func (d Duration) DivideBy(scalar float64) (Duration, error) {
	if !d.defined {
		return Duration{}, errors.Wrap(ostkerr.Undefined, "duration: arithmetic on undefined value")
	}
	if scalar == 0 {
		return Duration{}, errors.Wrap(ostkerr.InvalidInput, "duration: division by zero")
	}
	return newDuration(roundNs(float64(d.ns) / scalar)), nil
}

// Negate returns -d.
func (d Duration) Negate() (Duration, error) {
	if !d.defined {
		return Duration{}, errors.Wrap(ostkerr.Undefined, "duration: arithmetic on undefined value")
	}
	return newDuration(-d.ns), nil
}

// Equal reports whether d and other represent the same nanosecond count.
// An undefined operand propagates as undefined (returned as an error).
func (d Duration) Equal(other Duration) (bool, error) {
	if !d.defined || !other.defined {
		return false, errors.Wrap(ostkerr.Undefined, "duration: equality of undefined value")
	}
	return d.ns == other.ns, nil
}

// Less reports whether d < other.
func (d Duration) Less(other Duration) (bool, error) {
	if !d.defined || !other.defined {
		return false, errors.Wrap(ostkerr.Undefined, "duration: ordering of undefined value")
	}
	return d.ns < other.ns, nil
}

// Format identifies which of the two duration serializations to use.
type DurationFormat int

const (
	// Standard renders "[-]DD HH:MM:SS.mmm.uuu.nnn", eliding leading
	// zero day/hour/minute groups and trailing zero sub-second groups.
	Standard DurationFormat = iota
	// ISO8601 renders "[-]P[nD]T[nH][nM][n[.fff[fff[fff]]]S]".
	ISO8601
)

func decompose(ns int64) (sign int64, days, hours, minutes, seconds, ms, us, nsRem int64) {
	sign = 1
	if ns < 0 {
		sign = -1
		ns = -ns
	}
	days = ns / nsPerDay
	ns %= nsPerDay
	hours = ns / nsPerHour
	ns %= nsPerHour
	minutes = ns / nsPerMinute
	ns %= nsPerMinute
	seconds = ns / nsPerSecond
	ns %= nsPerSecond
	ms = ns / nsPerMillisecond
	ns %= nsPerMillisecond
	us = ns / nsPerMicrosecond
	ns %= nsPerMicrosecond
	nsRem = ns
	return
}

// String formats d using the Standard serialization.
func (d Duration) String() string {
	s, err := d.Format(Standard)
	if err != nil {
		return "undefined"
	}
	return s
}

// Format renders d in the requested serialization. Fails with
// ostkerr.Undefined if d has no value.
func (d Duration) Format(format DurationFormat) (string, error) {
	if !d.defined {
		return "", errors.Wrap(ostkerr.Undefined, "duration: formatting undefined value")
	}
	sign, days, hours, minutes, seconds, ms, us, nsRem := decompose(d.ns)
	signStr := ""
	if sign < 0 {
		signStr = "-"
	}

	switch format {
	case Standard:
		groups := []int64{days, hours, minutes}
		start := 3
		for i, g := range groups {
			if g != 0 {
				start = i
				break
			}
		}
		var main string
		switch start {
		case 0:
			main = pad2(days) + " " + pad2(hours) + ":" + pad2(minutes) + ":" + pad2(seconds)
		case 1:
			main = pad2(hours) + ":" + pad2(minutes) + ":" + pad2(seconds)
		case 2:
			main = pad2(minutes) + ":" + pad2(seconds)
		default:
			main = pad2(seconds)
		}
		return signStr + main + subSecondSuffix(ms, us, nsRem), nil

	case ISO8601:
		var b strings.Builder
		b.WriteString(signStr)
		b.WriteString("P")
		if days != 0 {
			b.WriteString(strconv.FormatInt(days, 10))
			b.WriteString("D")
		}
		timePart := ""
		if hours != 0 {
			timePart += strconv.FormatInt(hours, 10) + "H"
		}
		if minutes != 0 {
			timePart += strconv.FormatInt(minutes, 10) + "M"
		}
		if seconds != 0 || ms != 0 || us != 0 || nsRem != 0 || (days == 0 && hours == 0 && minutes == 0) {
			timePart += strconv.FormatInt(seconds, 10) + isoFraction(ms, us, nsRem) + "S"
		}
		if timePart != "" {
			b.WriteString("T")
			b.WriteString(timePart)
		}
		return b.String(), nil

	default:
		return "", errors.Wrap(ostkerr.InvalidInput, "duration: unknown format")
	}
}

func pad2(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

func pad3(n int64) string {
	s := strconv.FormatInt(n, 10)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

func subSecondSuffix(ms, us, ns int64) string {
	switch {
	case ns != 0:
		return "." + pad3(ms) + "." + pad3(us) + "." + pad3(ns)
	case us != 0:
		return "." + pad3(ms) + "." + pad3(us)
	case ms != 0:
		return "." + pad3(ms)
	default:
		return ""
	}
}

func isoFraction(ms, us, ns int64) string {
	switch {
	case ns != 0:
		return "." + pad3(ms) + pad3(us) + pad3(ns)
	case us != 0:
		return "." + pad3(ms) + pad3(us)
	case ms != 0:
		return "." + pad3(ms)
	default:
		return ""
	}
}

var isoDurationPattern = regexp.MustCompile(`^(-)?P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:\.(\d+))?S)?)?$`)

// ParseDuration parses s in either the Standard or ISO8601 serialization,
// auto-detecting by a leading (optionally signed) 'P'.
func ParseDuration(s string) (Duration, error) {
	trimmed := strings.TrimSpace(s)
	probe := trimmed
	if strings.HasPrefix(probe, "-") {
		probe = probe[1:]
	}
	if strings.HasPrefix(probe, "P") {
		return parseISO8601Duration(trimmed)
	}
	return parseStandardDuration(trimmed)
}

func parseISO8601Duration(s string) (Duration, error) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return Duration{}, errors.Wrapf(ostkerr.InvalidInput, "duration: cannot parse ISO8601 %q", s)
	}
	sign := int64(1)
	if m[1] == "-" {
		sign = -1
	}
	days := parseIntOr0(m[2])
	hours := parseIntOr0(m[3])
	minutes := parseIntOr0(m[4])
	seconds := parseIntOr0(m[5])
	ms, us, nsRem := parseFracDigits(m[6])

	total := days*nsPerDay + hours*nsPerHour + minutes*nsPerMinute + seconds*nsPerSecond +
		ms*nsPerMillisecond + us*nsPerMicrosecond + nsRem
	return newDuration(sign * total), nil
}

func parseFracDigits(frac string) (ms, us, ns int64) {
	if frac == "" {
		return 0, 0, 0
	}
	padded := (frac + "000000000")[:9]
	ms, _ = strconv.ParseInt(padded[0:3], 10, 64)
	us, _ = strconv.ParseInt(padded[3:6], 10, 64)
	ns, _ = strconv.ParseInt(padded[6:9], 10, 64)
	return
}

func parseIntOr0(s string) int64 {
	if s == "" {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseStandardDuration(s string) (Duration, error) {
	sign := int64(1)
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	var daysPart string
	rest := s
	if idx := strings.Index(s, " "); idx >= 0 {
		daysPart = s[:idx]
		rest = s[idx+1:]
	}
	days := parseIntOr0(daysPart)

	timePart := rest
	subPart := ""
	if idx := strings.Index(rest, "."); idx >= 0 {
		timePart = rest[:idx]
		subPart = rest[idx+1:]
	}

	fields := strings.Split(timePart, ":")
	var hours, minutes, seconds int64
	var err error
	switch len(fields) {
	case 1:
		seconds, err = strconv.ParseInt(fields[0], 10, 64)
	case 2:
		minutes, err = strconv.ParseInt(fields[0], 10, 64)
		if err == nil {
			seconds, err = strconv.ParseInt(fields[1], 10, 64)
		}
	case 3:
		hours, err = strconv.ParseInt(fields[0], 10, 64)
		if err == nil {
			minutes, err = strconv.ParseInt(fields[1], 10, 64)
		}
		if err == nil {
			seconds, err = strconv.ParseInt(fields[2], 10, 64)
		}
	default:
		return Duration{}, errors.Wrapf(ostkerr.InvalidInput, "duration: cannot parse Standard %q", s)
	}
	if err != nil {
		return Duration{}, errors.Wrapf(ostkerr.InvalidInput, "duration: cannot parse Standard %q", s)
	}

	var ms, us, nsRem int64
	if subPart != "" {
		subFields := strings.Split(subPart, ".")
		if len(subFields) > 0 {
			ms = parseIntOr0(subFields[0])
		}
		if len(subFields) > 1 {
			us = parseIntOr0(subFields[1])
		}
		if len(subFields) > 2 {
			nsRem = parseIntOr0(subFields[2])
		}
	}

	total := days*nsPerDay + hours*nsPerHour + minutes*nsPerMinute + seconds*nsPerSecond +
		ms*nsPerMillisecond + us*nsPerMicrosecond + nsRem
	return newDuration(sign * total), nil
}
