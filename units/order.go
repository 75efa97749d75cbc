package units

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// Order is a rational exponent (Num/Den) applied to a base dimension inside
// a Derived unit. Construction does not reduce the fraction — (2,4) and
// (1,2) are distinct values for equality purposes, per spec.
type Order struct {
	Num int64
	Den int64
}

// NewOrder builds an Order, rejecting a zero denominator.
func NewOrder(num, den int64) (Order, error) {
	if den == 0 {
		return Order{}, errors.Wrap(ostkerr.InvalidInput, "order: zero denominator")
	}
	return Order{Num: num, Den: den}, nil
}

// Integer builds a whole-number Order (den = 1).
func Integer(n int64) Order { return Order{Num: n, Den: 1} }

// IsZero reports whether the exponent is zero.
func (o Order) IsZero() bool { return o.Num == 0 }

// IsUnity reports whether the exponent equals exactly 1 (e.g. 3/3 is not unity).
func (o Order) IsUnity() bool { return o.Num == 1 && o.Den == 1 }

// Equal compares the literal (Num, Den) pair — no reduction is applied.
func (o Order) Equal(other Order) bool { return o.Num == other.Num && o.Den == other.Den }

// Value returns the exponent as a float64, for use in SI-ratio computation.
func (o Order) Value() float64 { return float64(o.Num) / float64(o.Den) }

// Reduce returns the gcd-reduced form of o. Equality does not call this
// implicitly; callers that want dimensional comparison up to reduction must
// call it themselves.
func (o Order) Reduce() Order {
	if o.Num == 0 {
		return Order{Num: 0, Den: 1}
	}
	g := gcd(abs64(o.Num), abs64(o.Den))
	if g == 0 {
		return o
	}
	num, den := o.Num/g, o.Den/g
	if den < 0 {
		num, den = -num, -den
	}
	return Order{Num: num, Den: den}
}

// String formats the order as "n" for integers, "-n" for unit fractions
// (1/n forms are written with the sign folded onto the single digit the way
// -1/n collapses to "-n"), and "n/d" otherwise.
func (o Order) String() string {
	if o.Den == 1 {
		return fmt.Sprintf("%d", o.Num)
	}
	if o.Num == 1 {
		return fmt.Sprintf("-%d", o.Den)
	}
	return fmt.Sprintf("%d/%d", o.Num, o.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
