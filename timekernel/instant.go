package timekernel

import (
	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// Epoch is 2000-01-01T12:00:00 TT, the reference moment Instant counts
// nanoseconds from. Matches spec.md §4.B's choice of the J2000.0 epoch.
var Epoch = DateTime{Date: Date{2000, 1, 1}, Time: ClockTime{Hour: 12}}

var epochCivilNs = civilNs(Epoch)

// Instant is a signed nanosecond count from Epoch, measured on a uniform
// time scale (TAI, equivalently TT or GPST up to a constant bias — all three
// tick at the same rate, so their elapsed counts from Epoch coincide). This
// is the re-architecture spec.md §9 sanctions in place of the original
// sign-magnitude-plus-bool Count representation: a plain signed int64 of
// nanoseconds is simpler to reason about and still exact over the ±292-year
// span an int64 of nanoseconds can hold.
//
// Instant also remembers the Scale it was constructed against purely so
// String/DateTime default to that scale's civil reading; it plays no part in
// comparisons, which are always over the canonical uniform count.
type Instant struct {
	uniformNs int64
	scale     Scale
	defined   bool
}

// UndefinedInstant returns the undefined sentinel Instant.
func UndefinedInstant() Instant { return Instant{} }

// IsDefined reports whether i carries a value.
func (i Instant) IsDefined() bool { return i.defined }

// NewInstant constructs an Instant from a civil DateTime interpreted as a
// reading on scale's clock. ut1 is consulted only when scale is UT1 or when
// a subsequent DateTime() call requests UT1; it may be nil otherwise.
func NewInstant(scale Scale, dt DateTime, ut1 UT1Provider) (Instant, error) {
	if !scale.wired() {
		return Instant{}, errors.Wrapf(ostkerr.NotImplemented, "instant: scale %s has no conversion", scale)
	}
	civil := civilNs(dt)

	switch scale {
	case TT, TAI, GPST:
		uniform := civil - epochCivilNs + fixedOffsetFromTT[scale]
		return Instant{uniformNs: uniform, scale: scale, defined: true}, nil

	case UTC:
		dat, err := dATAtUTC(civil)
		if err != nil {
			return Instant{}, err
		}
		uniform := civil - epochCivilNs + fixedOffsetFromTT[TAI] + dat*nsPerSecond
		return Instant{uniformNs: uniform, scale: scale, defined: true}, nil

	case UT1:
		if ut1 == nil {
			return Instant{}, errors.Wrap(ostkerr.InvalidInput, "instant: UT1 construction requires a UT1Provider")
		}
		dut1, err := ut1.DUT1AtUTC(dt)
		if err != nil {
			return Instant{}, err
		}
		dut1Ns, err := dut1.InNanoseconds()
		if err != nil {
			return Instant{}, err
		}
		dat, err := dATAtUTC(civil)
		if err != nil {
			return Instant{}, err
		}
		uniform := civil - dut1Ns - epochCivilNs + fixedOffsetFromTT[TAI] + dat*nsPerSecond
		return Instant{uniformNs: uniform, scale: scale, defined: true}, nil

	default:
		return Instant{}, errors.Wrapf(ostkerr.NotImplemented, "instant: scale %s has no conversion", scale)
	}
}

// DateTime renders i as a civil DateTime on the requested scale.
func (i Instant) DateTime(scale Scale, ut1 UT1Provider) (DateTime, error) {
	if !i.defined {
		return DateTime{}, errors.Wrap(ostkerr.Undefined, "instant: value undefined")
	}
	if !scale.wired() {
		return DateTime{}, errors.Wrapf(ostkerr.NotImplemented, "instant: scale %s has no conversion", scale)
	}

	switch scale {
	case TT, TAI, GPST:
		civil := i.uniformNs + epochCivilNs - fixedOffsetFromTT[scale]
		return civilFromNs(civil), nil

	case UTC:
		taiCivil := i.uniformNs + epochCivilNs - fixedOffsetFromTT[TAI]
		dat, err := dATAtTAI(taiCivil)
		if err != nil {
			return DateTime{}, err
		}
		return civilFromNs(taiCivil - dat*nsPerSecond), nil

	case UT1:
		if ut1 == nil {
			return DateTime{}, errors.Wrap(ostkerr.InvalidInput, "instant: UT1 rendering requires a UT1Provider")
		}
		utcDT, err := i.DateTime(UTC, nil)
		if err != nil {
			return DateTime{}, err
		}
		dut1, err := ut1.DUT1AtUTC(utcDT)
		if err != nil {
			return DateTime{}, err
		}
		dut1Ns, err := dut1.InNanoseconds()
		if err != nil {
			return DateTime{}, err
		}
		return civilFromNs(civilNs(utcDT) + dut1Ns), nil

	default:
		return DateTime{}, errors.Wrapf(ostkerr.NotImplemented, "instant: scale %s has no conversion", scale)
	}
}

// InScale reinterprets i as an Instant tagged with scale (the underlying
// moment is unchanged; only the default display scale changes).
func (i Instant) InScale(scale Scale) Instant {
	j := i
	j.scale = scale
	return j
}

// Scale returns the scale i was constructed or last retagged with.
func (i Instant) Scale() Scale { return i.scale }

// String renders i as a DateTime on its own scale, in Standard format.
func (i Instant) String() string {
	if !i.defined {
		return "undefined"
	}
	dt, err := i.DateTime(i.scale, nil)
	if err != nil {
		return "undefined"
	}
	s, _ := dt.Format(DateTimeStandard)
	return s
}

// Add returns i shifted by d.
func (i Instant) Add(d Duration) (Instant, error) {
	if !i.defined || !d.defined {
		return Instant{}, errors.Wrap(ostkerr.Undefined, "instant: arithmetic on undefined value")
	}
	return Instant{uniformNs: i.uniformNs + d.ns, scale: i.scale, defined: true}, nil
}

// Sub returns i - other as a Duration. Sub always takes another Instant;
// SubDuration shifts i back by a Duration.
func (i Instant) Sub(other Instant) (Duration, error) {
	if !i.defined || !other.defined {
		return Duration{}, errors.Wrap(ostkerr.Undefined, "instant: arithmetic on undefined value")
	}
	return newDuration(i.uniformNs - other.uniformNs), nil
}

// SubDuration returns i shifted back by d.
func (i Instant) SubDuration(d Duration) (Instant, error) {
	if !i.defined || !d.defined {
		return Instant{}, errors.Wrap(ostkerr.Undefined, "instant: arithmetic on undefined value")
	}
	return Instant{uniformNs: i.uniformNs - d.ns, scale: i.scale, defined: true}, nil
}

// Equal compares two Instants over the absolute moment they denote,
// independent of the scale either is tagged with.
func (i Instant) Equal(other Instant) (bool, error) {
	if !i.defined || !other.defined {
		return false, errors.Wrap(ostkerr.Undefined, "instant: equality of undefined value")
	}
	return i.uniformNs == other.uniformNs, nil
}

// Less reports whether i denotes an earlier moment than other.
func (i Instant) Less(other Instant) (bool, error) {
	if !i.defined || !other.defined {
		return false, errors.Wrap(ostkerr.Undefined, "instant: ordering of undefined value")
	}
	return i.uniformNs < other.uniformNs, nil
}
