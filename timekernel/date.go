package timekernel

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// MinYear and MaxYear bound the proleptic Gregorian calendar this kernel
// supports, per spec.md §3.
const (
	MinYear = 1400
	MaxYear = 9999
)

// Date is a day on the proleptic Gregorian calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsLeapYear applies the standard Gregorian leap-year rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// NewDate validates and constructs a Date. Year must be in [MinYear,
// MaxYear]; month in [1,12]; day valid for (year, month) including leap
// years.
func NewDate(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, errors.Wrapf(ostkerr.InvalidInput, "date: year %d outside [%d, %d]", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return Date{}, errors.Wrapf(ostkerr.InvalidInput, "date: month %d outside [1, 12]", month)
	}
	maxDay := daysInMonth(year, month)
	if day < 1 || day > maxDay {
		return Date{}, errors.Wrapf(ostkerr.InvalidInput, "date: day %d outside [1, %d] for %04d-%02d", day, maxDay, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// daysFromCivil implements Howard Hinnant's days-from-civil algorithm: the
// signed day count from 1970-01-01, valid over the proleptic Gregorian
// calendar for any year representable in an int64.
func daysFromCivil(y int64, m, d int) int64 {
	if m <= 2 {
		y--
	}
	var era int64
	if y >= 0 {
		era = y / 400
	} else {
		era = (y - 399) / 400
	}
	yoe := y - era*400
	var mp int64
	if m > 2 {
		mp = int64(m) - 3
	} else {
		mp = int64(m) + 9
	}
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(z int64) (y int64, m int, d int) {
	z += 719468
	var era int64
	if z >= 0 {
		era = z / 146097
	} else {
		era = (z - 146096) / 146097
	}
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	yy := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	dd := doy - (153*mp+2)/5 + 1
	var mm int64
	if mp < 10 {
		mm = mp + 3
	} else {
		mm = mp - 9
	}
	if mm <= 2 {
		yy++
	}
	return yy, int(mm), int(dd)
}

// DaysSinceUnixEpoch returns the signed day count from 1970-01-01 to d.
func (d Date) DaysSinceUnixEpoch() int64 {
	return daysFromCivil(int64(d.Year), d.Month, d.Day)
}

// DateFromDaysSinceUnixEpoch is the inverse of DaysSinceUnixEpoch.
func DateFromDaysSinceUnixEpoch(days int64) Date {
	y, m, d := civilFromDays(days)
	return Date{Year: int(y), Month: m, Day: d}
}
