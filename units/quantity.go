package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// Quantity is a real value tagged with a Unit. The zero value is undefined
// (spec.md §3's "Undefined" sentinel): any arithmetic, ordering, or
// conversion on it fails with ostkerr.Undefined.
type Quantity struct {
	Value   float64
	Unit    Unit
	Defined bool
}

// NewQuantity constructs a defined Quantity.
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit, Defined: true}
}

// Undefined returns the undefined sentinel Quantity.
func Undefined() Quantity { return Quantity{} }

// IsDefined reports whether q carries a value.
func (q Quantity) IsDefined() bool { return q.Defined && q.Unit != nil }

// Equal compares q to other for equality, converting other into q's unit
// first. An undefined operand makes the comparison itself undefined
// (returned as an error, never silently false), per spec.md §4.A.
func (q Quantity) Equal(other Quantity) (bool, error) {
	if !q.IsDefined() || !other.IsDefined() {
		return false, errors.Wrap(ostkerr.Undefined, "quantity: equality of undefined value")
	}
	if !q.Unit.Dimension().Compatible(other.Unit.Dimension()) {
		return false, errors.Wrap(ostkerr.InvalidInput, "quantity: incompatible units")
	}
	return q.Value*q.Unit.SI() == other.Value*other.Unit.SI(), nil
}

// Less reports whether q < other, in SI terms. Fails on undefined operands
// or incompatible units — ordering is never silently approximate.
func (q Quantity) Less(other Quantity) (bool, error) {
	if !q.IsDefined() || !other.IsDefined() {
		return false, errors.Wrap(ostkerr.Undefined, "quantity: ordering of undefined value")
	}
	if !q.Unit.Dimension().Compatible(other.Unit.Dimension()) {
		return false, errors.Wrap(ostkerr.InvalidInput, "quantity: incompatible units")
	}
	return q.Value*q.Unit.SI() < other.Value*other.Unit.SI(), nil
}

// Add returns q + other, expressed in q's unit. Units must be compatible.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if !q.IsDefined() || !other.IsDefined() {
		return Quantity{}, errors.Wrap(ostkerr.Undefined, "quantity: arithmetic on undefined value")
	}
	if !q.Unit.Dimension().Compatible(other.Unit.Dimension()) {
		return Quantity{}, errors.Wrap(ostkerr.InvalidInput, "quantity: incompatible units")
	}
	otherInQUnit := other.Value * other.Unit.SI() / q.Unit.SI()
	return NewQuantity(q.Value+otherInQUnit, q.Unit), nil
}

// Sub returns q - other, expressed in q's unit.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	neg := other
	neg.Value = -other.Value
	return q.Add(neg)
}

// Scale returns q multiplied by a dimensionless scalar.
func (q Quantity) Scale(scalar float64) (Quantity, error) {
	if !q.IsDefined() {
		return Quantity{}, errors.Wrap(ostkerr.Undefined, "quantity: scaling undefined value")
	}
	return NewQuantity(q.Value*scalar, q.Unit), nil
}

// DivideScalar returns q divided by a dimensionless scalar.
func (q Quantity) DivideScalar(scalar float64) (Quantity, error) {
	if !q.IsDefined() {
		return Quantity{}, errors.Wrap(ostkerr.Undefined, "quantity: dividing undefined value")
	}
	return NewQuantity(q.Value/scalar, q.Unit), nil
}

// In converts q to targetUnit, requiring dimensional compatibility.
func (q Quantity) In(targetUnit Unit) (float64, error) {
	if !q.IsDefined() {
		return 0, errors.Wrap(ostkerr.Undefined, "quantity: converting undefined value")
	}
	if !q.Unit.Dimension().Compatible(targetUnit.Dimension()) {
		return 0, errors.Wrap(ostkerr.InvalidInput, "quantity: incompatible units")
	}
	return q.Value * q.Unit.SI() / targetUnit.SI(), nil
}

// String formats q as "{value} [{symbol}]".
func (q Quantity) String() string {
	if !q.IsDefined() {
		return "undefined"
	}
	return fmt.Sprintf("%v [%s]", q.Value, q.Unit.Symbol())
}

var quantityPattern = regexp.MustCompile(`^\s*(-?[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?)\s*\[\s*([^\]\s]+)\s*\]\s*$`)

// symbolTable maps a recognized unit symbol to its Unit, for Parse. Only
// simple (non-compound) unit symbols are recognized, matching spec.md's
// "1.0 [m]" example grammar.
var symbolTable = func() map[string]Unit {
	t := map[string]Unit{}
	for u, s := range lengthSymbol {
		t[s] = u
	}
	for u, s := range massSymbol {
		t[s] = u
	}
	for u, s := range timeSymbol {
		t[s] = u
	}
	for u, s := range currentSymbol {
		t[s] = u
	}
	for u, s := range angleSymbol {
		t[s] = u
	}
	return t
}()

// ParseQuantity parses a string of the form "1.0 [m]" using the unit symbol
// table built from the base unit families.
func ParseQuantity(s string) (Quantity, error) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, errors.Wrapf(ostkerr.InvalidInput, "quantity: cannot parse %q", s)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, errors.Wrapf(ostkerr.InvalidInput, "quantity: bad numeric value in %q", s)
	}
	unit, ok := symbolTable[strings.TrimSpace(m[2])]
	if !ok {
		return Quantity{}, errors.Wrapf(ostkerr.InvalidInput, "quantity: unknown unit symbol %q", m[2])
	}
	return NewQuantity(value, unit), nil
}
