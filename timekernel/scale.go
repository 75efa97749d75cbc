package timekernel

import (
	"fmt"
)

// Scale identifies a time scale an Instant can be read in. Grounded in the
// teacher's timescale_test.go contract (LeapSecondOffset/UTCToTT/TTToUT1)
// generalized to the full scale set spec.md §4.B names.
type Scale int

const (
	TAI Scale = iota
	UTC
	TT
	UT1
	GPST
	TCG
	TCB
	TDB
	GMST
	GST
	GLST
	BDT
	QZSST
	IRNSST
)

var scaleNames = map[Scale]string{
	TAI: "TAI", UTC: "UTC", TT: "TT", UT1: "UT1", GPST: "GPST",
	TCG: "TCG", TCB: "TCB", TDB: "TDB", GMST: "GMST", GST: "GST",
	GLST: "GLST", BDT: "BDT", QZSST: "QZSST", IRNSST: "IRNSST",
}

func (s Scale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

// wired reports whether Scale has a conversion implemented. The remaining
// scales are declared for API completeness but are not reachable from the
// TT hub yet; converting to or from one fails with ostkerr.NotImplemented.
func (s Scale) wired() bool {
	switch s {
	case TAI, UTC, TT, UT1, GPST:
		return true
	default:
		return false
	}
}

// fixedOffsetFromTT is the constant number of nanoseconds that scale s reads
// behind TT, for the scales related to TT by a fixed bias (TAI: 32.184s,
// GPST: 51.184s = 32.184+19s). TT itself is zero.
var fixedOffsetFromTT = map[Scale]int64{
	TT:   0,
	TAI:  32_184_000_000,
	GPST: 32_184_000_000 + 19*nsPerSecond,
}

// UT1Provider supplies UT1-UTC (DUT1) at a given civil UTC reading, sourced
// from Earth orientation data. Declared here rather than imported from the
// eop package to avoid a cyclic dependency: eop depends on timekernel for
// Instant, not the reverse.
type UT1Provider interface {
	DUT1AtUTC(utc DateTime) (Duration, error)
}
