package units

import (
	"fmt"
	"math"
	"strings"
)

// Unit is implemented by every unit family (Length, Mass, TimeUnit,
// ElectricCurrent, Angle) and by Derived itself, so Quantity can be generic
// over "a unit tag with an SI ratio and a dimension".
type Unit interface {
	SI() float64
	Symbol() string
	Dimension() Derived
}

// Derived is a tuple (length_unit, length_order, mass_unit, mass_order,
// time_unit, time_order, current_unit, current_order, angle_unit,
// angle_order) — spec.md §3's Derived::Unit.
type Derived struct {
	LengthUnit  Length
	LengthOrder Order

	MassUnit  Mass
	MassOrder Order

	TimeUnit  TimeUnit
	TimeOrder Order

	CurrentUnit  ElectricCurrent
	CurrentOrder Order

	AngleUnit  Angle
	AngleOrder Order
}

// dimensionless is the neutral zero-order fill for unused base dimensions.
var dimensionless = Integer(0)

// NewDerived fills any zero-value (unset) orders with dimensionless (0) so
// callers can build a Derived by naming only the dimensions they use.
func NewDerived(lu Length, lo Order, mu Mass, mo Order, tu TimeUnit, to Order, cu ElectricCurrent, co Order, au Angle, ao Order) Derived {
	fill := func(o Order) Order {
		if o == (Order{}) {
			return dimensionless
		}
		return o
	}
	return Derived{
		LengthUnit: lu, LengthOrder: fill(lo),
		MassUnit: mu, MassOrder: fill(mo),
		TimeUnit: tu, TimeOrder: fill(to),
		CurrentUnit: cu, CurrentOrder: fill(co),
		AngleUnit: au, AngleOrder: fill(ao),
	}
}

// MeterPerSecond is the SI velocity derived unit, m^1 s^-1.
func MeterPerSecond() Derived {
	return Derived{
		LengthUnit: Meter, LengthOrder: Integer(1),
		MassUnit: Kilogram, MassOrder: dimensionless,
		TimeUnit: Second, TimeOrder: Order{Num: -1, Den: 1},
		CurrentUnit: Ampere, CurrentOrder: dimensionless,
		AngleUnit: Radian, AngleOrder: dimensionless,
	}
}

// MeterPerSecondSquared is the SI acceleration derived unit, m^1 s^-2.
func MeterPerSecondSquared() Derived {
	d := MeterPerSecond()
	d.TimeOrder = Order{Num: -2, Den: 1}
	return d
}

// KilogramPerCubicMeter is the SI mass-density derived unit, kg^1 m^-3.
func KilogramPerCubicMeter() Derived {
	return Derived{
		LengthUnit: Meter, LengthOrder: Order{Num: -3, Den: 1},
		MassUnit: Kilogram, MassOrder: Integer(1),
		TimeUnit: Second, TimeOrder: dimensionless,
		CurrentUnit: Ampere, CurrentOrder: dimensionless,
		AngleUnit: Radian, AngleOrder: dimensionless,
	}
}

// Tesla is the SI magnetic flux density derived unit, kg^1 s^-2 A^-1.
func Tesla() Derived {
	return Derived{
		LengthUnit: Meter, LengthOrder: dimensionless,
		MassUnit: Kilogram, MassOrder: Integer(1),
		TimeUnit: Second, TimeOrder: Order{Num: -2, Den: 1},
		CurrentUnit: Ampere, CurrentOrder: Order{Num: -1, Den: 1},
		AngleUnit: Radian, AngleOrder: dimensionless,
	}
}

// Dimension returns d itself — Derived is its own dimension tag.
func (d Derived) Dimension() Derived { return d }

// SI returns the product, over the five base dimensions, of
// (unit→SI ratio)^order — the conversion factor from one unit of d to SI.
func (d Derived) SI() float64 {
	ratio := 1.0
	if !d.LengthOrder.IsZero() {
		ratio *= math.Pow(d.LengthUnit.SI(), d.LengthOrder.Value())
	}
	if !d.MassOrder.IsZero() {
		ratio *= math.Pow(d.MassUnit.SI(), d.MassOrder.Value())
	}
	if !d.TimeOrder.IsZero() {
		ratio *= math.Pow(d.TimeUnit.SI(), d.TimeOrder.Value())
	}
	if !d.CurrentOrder.IsZero() {
		ratio *= math.Pow(d.CurrentUnit.SI(), d.CurrentOrder.Value())
	}
	if !d.AngleOrder.IsZero() {
		ratio *= math.Pow(d.AngleUnit.SI(), d.AngleOrder.Value())
	}
	return ratio
}

// Compatible reports whether d and other share the same five reduced
// exponents — a prerequisite for conversion between them (the units
// themselves, e.g. Foot vs Meter, may differ).
func (d Derived) Compatible(other Derived) bool {
	return d.LengthOrder.Reduce().Equal(other.LengthOrder.Reduce()) &&
		d.MassOrder.Reduce().Equal(other.MassOrder.Reduce()) &&
		d.TimeOrder.Reduce().Equal(other.TimeOrder.Reduce()) &&
		d.CurrentOrder.Reduce().Equal(other.CurrentOrder.Reduce()) &&
		d.AngleOrder.Reduce().Equal(other.AngleOrder.Reduce())
}

// Symbol renders d as a product of "<symbol>^<order>" terms, omitting any
// dimension whose order is zero, e.g. "m/s" style units render as "m.s^-1".
func (d Derived) Symbol() string {
	var parts []string
	add := func(sym string, o Order) {
		if o.IsZero() {
			return
		}
		if o.IsUnity() {
			parts = append(parts, sym)
			return
		}
		parts = append(parts, fmt.Sprintf("%s^%s", sym, o.String()))
	}
	add(d.LengthUnit.Symbol(), d.LengthOrder)
	add(d.MassUnit.Symbol(), d.MassOrder)
	add(d.TimeUnit.Symbol(), d.TimeOrder)
	add(d.CurrentUnit.Symbol(), d.CurrentOrder)
	add(d.AngleUnit.Symbol(), d.AngleOrder)
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, ".")
}
