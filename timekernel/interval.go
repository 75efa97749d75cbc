package timekernel

import (
	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// IntervalType selects which endpoints an Interval includes.
type IntervalType int

const (
	// Closed includes both endpoints.
	Closed IntervalType = iota
	// Open excludes both endpoints.
	Open
	// HalfOpenLeft excludes the lower bound, includes the upper.
	HalfOpenLeft
	// HalfOpenRight includes the lower bound, excludes the upper.
	HalfOpenRight
)

// Interval is a span of Instants between a lower and upper bound.
type Interval struct {
	lower, upper Instant
	kind         IntervalType
	defined      bool
}

// NewInterval constructs an Interval. lower must not be after upper.
func NewInterval(lower, upper Instant, kind IntervalType) (Interval, error) {
	if !lower.defined || !upper.defined {
		return Interval{}, errors.Wrap(ostkerr.Undefined, "interval: endpoint undefined")
	}
	lessOrEqual, err := lower.Less(upper)
	if err != nil {
		return Interval{}, err
	}
	eq, err := lower.Equal(upper)
	if err != nil {
		return Interval{}, err
	}
	if !lessOrEqual && !eq {
		return Interval{}, errors.Wrap(ostkerr.InvalidInput, "interval: lower bound after upper bound")
	}
	return Interval{lower: lower, upper: upper, kind: kind, defined: true}, nil
}

// IsDefined reports whether v carries a value.
func (v Interval) IsDefined() bool { return v.defined }

// Lower returns the interval's lower bound.
func (v Interval) Lower() Instant { return v.lower }

// Upper returns the interval's upper bound.
func (v Interval) Upper() Instant { return v.upper }

// Duration returns the span between the bounds, independent of kind.
func (v Interval) Duration() (Duration, error) {
	if !v.defined {
		return Duration{}, errors.Wrap(ostkerr.Undefined, "interval: value undefined")
	}
	return v.upper.Sub(v.lower)
}

// Contains reports whether instant falls within v, honoring its IntervalType.
func (v Interval) Contains(instant Instant) (bool, error) {
	if !v.defined || !instant.defined {
		return false, errors.Wrap(ostkerr.Undefined, "interval: membership test on undefined value")
	}
	afterLower, err := v.lower.Less(instant)
	if err != nil {
		return false, err
	}
	eqLower, err := v.lower.Equal(instant)
	if err != nil {
		return false, err
	}
	beforeUpper, err := instant.Less(v.upper)
	if err != nil {
		return false, err
	}
	eqUpper, err := instant.Equal(v.upper)
	if err != nil {
		return false, err
	}

	lowerOK := afterLower || (eqLower && (v.kind == Closed || v.kind == HalfOpenRight))
	upperOK := beforeUpper || (eqUpper && (v.kind == Closed || v.kind == HalfOpenLeft))
	return lowerOK && upperOK, nil
}

// GenerateGrid returns the Instants lower, lower+step, lower+2*step, ... up
// to (and, for Closed/HalfOpenLeft, including) upper.
func (v Interval) GenerateGrid(step Duration) ([]Instant, error) {
	if !v.defined {
		return nil, errors.Wrap(ostkerr.Undefined, "interval: value undefined")
	}
	stepNs, err := step.InNanoseconds()
	if err != nil {
		return nil, err
	}
	if stepNs <= 0 {
		return nil, errors.Wrap(ostkerr.InvalidInput, "interval: grid step must be positive")
	}

	var grid []Instant
	cursor := v.lower
	for {
		contains, err := v.Contains(cursor)
		if err != nil {
			return nil, err
		}
		beforeUpper, err := cursor.Less(v.upper)
		if err != nil {
			return nil, err
		}
		eqUpper, err := cursor.Equal(v.upper)
		if err != nil {
			return nil, err
		}
		if !contains && !(eqUpper && (v.kind == Open || v.kind == HalfOpenRight)) && !beforeUpper {
			break
		}
		if contains {
			grid = append(grid, cursor)
		}
		if !beforeUpper {
			break
		}
		cursor, err = cursor.Add(step)
		if err != nil {
			return nil, err
		}
	}
	return grid, nil
}
