package timekernel

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// ClockTime is a time-of-day: hour/minute/second/ms/us/ns, each in its
// standard range. Leap seconds are never expressed as Second=60 — they are
// carried entirely by the UTC<->TAI scale conversion, per spec.md §3.
type ClockTime struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Microsecond int
	Nanosecond  int
}

// NewClockTime validates and constructs a ClockTime.
func NewClockTime(hour, minute, second, ms, us, ns int) (ClockTime, error) {
	if hour < 0 || hour > 23 {
		return ClockTime{}, errors.Wrapf(ostkerr.InvalidInput, "time: hour %d outside [0, 23]", hour)
	}
	if minute < 0 || minute > 59 {
		return ClockTime{}, errors.Wrapf(ostkerr.InvalidInput, "time: minute %d outside [0, 59]", minute)
	}
	if second < 0 || second > 59 {
		return ClockTime{}, errors.Wrapf(ostkerr.InvalidInput, "time: second %d outside [0, 59]", second)
	}
	if ms < 0 || ms > 999 {
		return ClockTime{}, errors.Wrapf(ostkerr.InvalidInput, "time: millisecond %d outside [0, 999]", ms)
	}
	if us < 0 || us > 999 {
		return ClockTime{}, errors.Wrapf(ostkerr.InvalidInput, "time: microsecond %d outside [0, 999]", us)
	}
	if ns < 0 || ns > 999 {
		return ClockTime{}, errors.Wrapf(ostkerr.InvalidInput, "time: nanosecond %d outside [0, 999]", ns)
	}
	return ClockTime{Hour: hour, Minute: minute, Second: second, Millisecond: ms, Microsecond: us, Nanosecond: ns}, nil
}

// NanosecondOfDay returns the number of nanoseconds since midnight.
func (c ClockTime) NanosecondOfDay() int64 {
	return int64(c.Hour)*nsPerHour + int64(c.Minute)*nsPerMinute + int64(c.Second)*nsPerSecond +
		int64(c.Millisecond)*nsPerMillisecond + int64(c.Microsecond)*nsPerMicrosecond + int64(c.Nanosecond)
}

// ClockTimeFromNanosecondOfDay is the inverse of NanosecondOfDay. ns must be
// in [0, nsPerDay).
func ClockTimeFromNanosecondOfDay(ns int64) ClockTime {
	hour := ns / nsPerHour
	ns %= nsPerHour
	minute := ns / nsPerMinute
	ns %= nsPerMinute
	second := ns / nsPerSecond
	ns %= nsPerSecond
	ms := ns / nsPerMillisecond
	ns %= nsPerMillisecond
	us := ns / nsPerMicrosecond
	ns %= nsPerMicrosecond
	return ClockTime{
		Hour: int(hour), Minute: int(minute), Second: int(second),
		Millisecond: int(ms), Microsecond: int(us), Nanosecond: int(ns),
	}
}

// String renders the time as HH:MM:SS.mmmuuunnn.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d%03d%03d", c.Hour, c.Minute, c.Second, c.Millisecond, c.Microsecond, c.Nanosecond)
}
