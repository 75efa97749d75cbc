package celestial

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ostkgo/physics/frame"
	"github.com/ostkgo/physics/ostkerr"
	"github.com/ostkgo/physics/timekernel"
	"github.com/ostkgo/physics/units"
)

// FieldVector is a direction tagged with the frame it is expressed in and
// its physical unit — spec.md §4.E's facade contract requires every field
// result returned by Celestial to carry both, rather than a bare r3.Vector
// whose frame is left to convention.
type FieldVector struct {
	r3.Vector
	Frame frame.Handle
	Unit  units.Derived
}

// FieldScalar is a scalar result tagged with its physical unit.
type FieldScalar struct {
	Value float64
	Unit  units.Derived
}

// Celestial is a named celestial body with a reference ellipsoid radius, a
// pluggable set of field models (gravitational, magnetic, atmospheric),
// and the body-fixed frame those models are expressed in. Corresponds to
// SPEC_FULL.md §4.E's Celestial-fields component.
type Celestial struct {
	Name             string
	EquatorialRadius float64
	Flattening       float64

	Gravity    GravitationalModel
	Magnetic   MagneticModel    // nil if the body has no modeled field
	Atmosphere AtmosphericModel // nil if the body has no modeled atmosphere

	registry  *frame.Registry
	bodyFrame frame.Handle
}

// Earth returns the Celestial describing Earth, wired with the WGS84 zonal
// gravity model and the three-band exponential atmosphere.
func Earth() *Celestial {
	atmosphere := NewEarthExponentialAtmosphere()
	return &Celestial{
		Name:             "Earth",
		EquatorialRadius: EarthEquatorialRadius,
		Flattening:       1.0 / 298.257223563,
		Gravity:          NewEarthWGS84(),
		Atmosphere:       atmosphere,
	}
}

// BindFrame attaches c to a frame.Registry and names the frame c's field
// models are expressed in (the body-fixed frame, e.g. Earth's ITRF).
// Per spec.md §4.E, every field query resolves its input position into
// this frame before invoking a model; an unbound Celestial fails those
// queries with ostkerr.InvalidState rather than silently assuming the
// caller's frame already matches.
func (c *Celestial) BindFrame(reg *frame.Registry, bodyFrame frame.Handle) {
	c.registry = reg
	c.bodyFrame = bodyFrame
}

// BodyFrame returns the frame.Handle c is bound to, or frame.NoParent if
// BindFrame has not been called.
func (c *Celestial) BodyFrame() frame.Handle {
	if c.registry == nil {
		return frame.NoParent
	}
	return c.bodyFrame
}

// toBodyFrame resolves position, expressed in positionFrame at instant,
// into c's body-fixed frame.
func (c *Celestial) toBodyFrame(instant timekernel.Instant, position r3.Vector, positionFrame frame.Handle) (r3.Vector, error) {
	if c.registry == nil {
		return r3.Vector{}, errors.Wrapf(ostkerr.InvalidState, "celestial: %s is not bound to a frame registry", c.Name)
	}
	tr, err := c.registry.GetTransform(positionFrame, c.bodyFrame, instant)
	if err != nil {
		return r3.Vector{}, errors.Wrapf(err, "celestial: resolving position into %s's body frame", c.Name)
	}
	return tr.ApplyToPosition(position), nil
}

// GravitationalAccelerationAt returns the gravitational acceleration at
// position (expressed in positionFrame at instant), transformed into c's
// body-fixed frame before the model is invoked.
func (c *Celestial) GravitationalAccelerationAt(instant timekernel.Instant, position r3.Vector, positionFrame frame.Handle) (FieldVector, error) {
	if c.Gravity == nil {
		return FieldVector{}, errors.Wrapf(ostkerr.DataUnavailable, "celestial: %s has no gravitational model", c.Name)
	}
	bodyPosition, err := c.toBodyFrame(instant, position, positionFrame)
	if err != nil {
		return FieldVector{}, err
	}
	acc, err := c.Gravity.AccelerationAt(bodyPosition)
	if err != nil {
		return FieldVector{}, err
	}
	return FieldVector{Vector: acc, Frame: c.bodyFrame, Unit: units.MeterPerSecondSquared()}, nil
}

// MagneticFieldAt returns the magnetic field at position (expressed in
// positionFrame at instant), transformed into c's body-fixed frame before
// the model is invoked.
func (c *Celestial) MagneticFieldAt(instant timekernel.Instant, position r3.Vector, positionFrame frame.Handle) (FieldVector, error) {
	if c.Magnetic == nil {
		return FieldVector{}, errors.Wrapf(ostkerr.DataUnavailable, "celestial: %s has no magnetic model", c.Name)
	}
	bodyPosition, err := c.toBodyFrame(instant, position, positionFrame)
	if err != nil {
		return FieldVector{}, err
	}
	field, err := c.Magnetic.FieldAt(bodyPosition)
	if err != nil {
		return FieldVector{}, err
	}
	return FieldVector{Vector: field, Frame: c.bodyFrame, Unit: units.Tesla()}, nil
}

// AtmosphericDensityAt returns the atmospheric density at position
// (expressed in positionFrame at instant): position is transformed into
// c's body-fixed frame, reduced to an altitude above the reference
// ellipsoid via GeodeticRadiusAt, and passed to the atmosphere model.
func (c *Celestial) AtmosphericDensityAt(instant timekernel.Instant, position r3.Vector, positionFrame frame.Handle) (FieldScalar, error) {
	bodyPosition, err := c.toBodyFrame(instant, position, positionFrame)
	if err != nil {
		return FieldScalar{}, err
	}
	density, err := c.AtmosphericDensityAtAltitude(c.altitudeAbove(bodyPosition))
	if err != nil {
		return FieldScalar{}, err
	}
	return FieldScalar{Value: density, Unit: units.KilogramPerCubicMeter()}, nil
}

// AtmosphericDensityAtAltitude evaluates c's atmosphere model directly at a
// known altitude above the reference ellipsoid, in meters, bypassing the
// frame registry entirely. Used by AtmosphericDensityAt once it has reduced
// a body-fixed position to an altitude, and available directly to callers
// who already have an altitude in hand.
func (c *Celestial) AtmosphericDensityAtAltitude(altitude float64) (float64, error) {
	if c.Atmosphere == nil {
		return 0, errors.Wrapf(ostkerr.DataUnavailable, "celestial: %s has no atmospheric model", c.Name)
	}
	return c.Atmosphere.DensityAt(altitude)
}

// AtmosphericDensityAtAltitudeQuantity is AtmosphericDensityAtAltitude taking
// and validating a unit-tagged altitude Quantity.
func (c *Celestial) AtmosphericDensityAtAltitudeQuantity(altitude units.Quantity) (float64, error) {
	if !altitude.IsDefined() {
		return 0, errors.Wrap(ostkerr.Undefined, "celestial: undefined altitude")
	}
	meters, err := altitude.In(units.Meter)
	if err != nil {
		return 0, errors.Wrap(err, "celestial: converting altitude to meters")
	}
	return c.AtmosphericDensityAtAltitude(meters)
}

// altitudeAbove returns the height of a body-frame position above the
// reference ellipsoid at its own geocentric latitude.
func (c *Celestial) altitudeAbove(bodyPosition r3.Vector) float64 {
	norm := bodyPosition.Norm()
	if norm == 0 {
		return -c.EquatorialRadius
	}
	geocentricLatitude := math.Asin(bodyPosition.Z / norm)
	return norm - c.GeodeticRadiusAt(geocentricLatitude)
}

// GeodeticRadiusAt approximates the local ellipsoid radius at a given
// geocentric latitude, radians, using the standard oblate-spheroid formula
// r(phi) = a*b / sqrt((b*cos(phi))^2 + (a*sin(phi))^2).
func (c *Celestial) GeodeticRadiusAt(geocentricLatitude float64) float64 {
	a := c.EquatorialRadius
	b := a * (1.0 - c.Flattening)
	cosLat := math.Cos(geocentricLatitude)
	sinLat := math.Sin(geocentricLatitude)
	den := (b*cosLat)*(b*cosLat) + (a*sinLat)*(a*sinLat)
	if den == 0 {
		return a
	}
	return a * b / math.Sqrt(den)
}

// EquatorialRadiusQuantity returns the body's equatorial radius as a
// unit-tagged Quantity, for callers crossing an API boundary where a bare
// float64 would silently accept the wrong unit.
func (c *Celestial) EquatorialRadiusQuantity() units.Quantity {
	return units.NewQuantity(c.EquatorialRadius, units.Meter)
}
