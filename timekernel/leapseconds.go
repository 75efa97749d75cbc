package timekernel

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// leapEntry is one row of the IERS Bulletin C leap-second table: the TAI-UTC
// offset (seconds) that takes effect at 00:00:00 on the given UTC calendar
// date. Grounded in other_examples/brandondube-tai's `leaps []leap{unixUTC,
// cumulativeSkew}` table, re-expressed against calendar dates instead of raw
// Unix seconds so the table reads the way IERS Bulletin C publishes it.
type leapEntry struct {
	effectiveUTC Date
	offset       int64
}

// leapTable is the embedded dAT step function from 1972 onward. Per
// spec.md §9's open question, this table runs through 2017-01-01 (the
// latest announced leap second at time of writing) and is not silently
// extrapolated beyond that date's offset.
var leapTable = []leapEntry{
	{Date{1972, 1, 1}, 10},
	{Date{1972, 7, 1}, 11},
	{Date{1973, 1, 1}, 12},
	{Date{1974, 1, 1}, 13},
	{Date{1975, 1, 1}, 14},
	{Date{1976, 1, 1}, 15},
	{Date{1977, 1, 1}, 16},
	{Date{1978, 1, 1}, 17},
	{Date{1979, 1, 1}, 18},
	{Date{1980, 1, 1}, 19},
	{Date{1981, 7, 1}, 20},
	{Date{1982, 7, 1}, 21},
	{Date{1983, 7, 1}, 22},
	{Date{1985, 7, 1}, 23},
	{Date{1988, 1, 1}, 24},
	{Date{1990, 1, 1}, 25},
	{Date{1991, 1, 1}, 26},
	{Date{1992, 7, 1}, 27},
	{Date{1993, 7, 1}, 28},
	{Date{1994, 7, 1}, 29},
	{Date{1996, 1, 1}, 30},
	{Date{1997, 7, 1}, 31},
	{Date{1999, 1, 1}, 32},
	{Date{2006, 1, 1}, 33},
	{Date{2009, 1, 1}, 34},
	{Date{2012, 7, 1}, 35},
	{Date{2015, 7, 1}, 36},
	{Date{2017, 1, 1}, 37},
}

// utcThresholds[i] is the civil nanosecond count (see civilNs) at which
// leapTable[i]'s offset takes effect, as read on a UTC clock.
var utcThresholds []int64

// taiThresholds[i] is the same transition, as read on a TAI clock: the UTC
// effective instant plus the offset that becomes valid at that instant. Two
// tables are needed because the jump discontinuity places the ambiguous
// second at different positions in UTC vs TAI (spec.md §4.B).
var taiThresholds []int64

func init() {
	utcThresholds = make([]int64, len(leapTable))
	taiThresholds = make([]int64, len(leapTable))
	for i, e := range leapTable {
		utcNs := civilNs(DateTime{Date: e.effectiveUTC, Time: ClockTime{}})
		utcThresholds[i] = utcNs
		taiThresholds[i] = utcNs + e.offset*nsPerSecond
	}
}

// dATAtUTC looks up TAI-UTC at a civil instant expressed on the UTC clock.
// UTC→TAI uses the closed-at-new-offset convention: at the exact boundary
// instant, the new (post-leap) offset is already in effect.
func dATAtUTC(civil int64) (int64, error) {
	if civil < utcThresholds[0] {
		return 0, errors.Wrapf(ostkerr.RangeError, "leap seconds: instant precedes 1972-01-01 UTC table start")
	}
	idx := sort.Search(len(utcThresholds), func(i int) bool { return utcThresholds[i] > civil }) - 1
	if idx < 0 {
		idx = 0
	}
	return leapTable[idx].offset, nil
}

// dATAtTAI looks up TAI-UTC at a civil instant expressed on the TAI clock.
func dATAtTAI(civil int64) (int64, error) {
	if civil < taiThresholds[0] {
		return 0, errors.Wrapf(ostkerr.RangeError, "leap seconds: instant precedes the 1972-01-01 TAI table start")
	}
	idx := sort.Search(len(taiThresholds), func(i int) bool { return taiThresholds[i] > civil }) - 1
	if idx < 0 {
		idx = 0
	}
	return leapTable[idx].offset, nil
}
