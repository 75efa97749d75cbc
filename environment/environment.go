// Package environment provides the top-level container binding an Instant
// to a named set of celestial objects, and exposes geometric intersection
// queries against them. Grounded in SPEC_FULL.md §4.F, generalizing the
// teacher's single-body ephemeris-lookup pattern into a named-object map.
package environment

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ostkgo/physics/celestial"
	"github.com/ostkgo/physics/eop"
	"github.com/ostkgo/physics/frame"
	"github.com/ostkgo/physics/geometry"
	"github.com/ostkgo/physics/ostkerr"
	"github.com/ostkgo/physics/timekernel"
)

// Environment holds an Instant, a frame.Registry rooted at GCRF, and a
// named set of Celestial objects bound to frames in that registry. Every
// object's field queries (SPEC_FULL.md §4.E) resolve through this shared
// registry, so two objects in the same Environment always agree on how
// GCRF relates to ITRF at a given Instant.
type Environment struct {
	mu      sync.RWMutex
	instant timekernel.Instant
	objects map[string]*celestial.Celestial

	registry *frame.Registry
	frames   frame.Frames
}

// zeroEOP is the no-op EOPProvider/UT1Provider New falls back to when the
// caller supplies none: zero polar motion and UT1=UTC. Good enough to
// stand the canonical frame tree up for objects that never need sub-arcsec
// Earth-orientation accuracy; callers who do should pass an *eop.Manager
// loaded from a real Bulletin A / Finals 2000A file instead.
type zeroEOP struct{}

func (zeroEOP) GetPolarMotionAt(timekernel.Instant) (float64, float64, error) { return 0, 0, nil }
func (zeroEOP) DUT1AtUTC(timekernel.DateTime) (timekernel.Duration, error) {
	return timekernel.Seconds(0), nil
}

// New constructs an Environment at the given Instant with the given named
// objects, bootstrapping a frame.Registry with the full canonical frame
// tree (frame.Bootstrap) and binding each object to ITRF — the body-fixed
// frame all of this repo's field models are evaluated in. eopSource is
// typically an *eop.Manager with Bulletin A / Finals 2000A data loaded; nil
// falls back to zero polar motion and UT1=UTC.
func New(instant timekernel.Instant, objects map[string]*celestial.Celestial, eopSource interface {
	frame.EOPProvider
	timekernel.UT1Provider
}) (*Environment, error) {
	if eopSource == nil {
		eopSource = zeroEOP{}
	}

	reg := frame.NewRegistry()
	frames, err := frame.Bootstrap(reg, frame.NutationStandard, eopSource, eopSource)
	if err != nil {
		return nil, errors.Wrap(err, "environment: bootstrapping frame registry")
	}

	clone := make(map[string]*celestial.Celestial, len(objects))
	for name, obj := range objects {
		obj.BindFrame(reg, frames.ITRF)
		clone[name] = obj
	}

	return &Environment{instant: instant, objects: clone, registry: reg, frames: frames}, nil
}

// Default constructs an Environment at the given Instant containing Earth
// under the name "Earth", with zero polar motion and UT1=UTC (see New).
func Default(instant timekernel.Instant) (*Environment, error) {
	return New(instant, map[string]*celestial.Celestial{"Earth": celestial.Earth()}, nil)
}

// DefaultWithEOP is Default, sourcing polar motion and UT1-UTC from m
// instead of the zero fallback.
func DefaultWithEOP(instant timekernel.Instant, m *eop.Manager) (*Environment, error) {
	return New(instant, map[string]*celestial.Celestial{"Earth": celestial.Earth()}, m)
}

// Registry returns the Environment's frame.Registry, rooted at GCRF, for
// callers that need to resolve a position between the canonical frames
// directly rather than through a Celestial object.
func (e *Environment) Registry() *frame.Registry {
	return e.registry
}

// Frames returns the handles of the canonical frame tree registered by New.
func (e *Environment) Frames() frame.Frames {
	return e.frames
}

// Instant returns the Environment's current Instant.
func (e *Environment) Instant() timekernel.Instant {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.instant
}

// SetInstant advances the Environment to a new Instant. Object state itself
// (gravity/magnetic/atmosphere models) is time-independent in this repo, so
// this only updates the stored Instant used to timestamp later queries;
// time-varying ephemerides belong to a future, separate provider, not this
// container. Frame relationships (e.g. ITRF<->GCRF) are re-evaluated at the
// new Instant automatically, since they are looked up through the shared
// registry rather than cached on the Environment.
func (e *Environment) SetInstant(instant timekernel.Instant) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.instant = instant
}

// ObjectNames returns the names of all objects registered in the
// Environment.
func (e *Environment) ObjectNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.objects))
	for name := range e.objects {
		names = append(names, name)
	}
	return names
}

// AccessObject looks up a named Celestial object.
func (e *Environment) AccessObject(name string) (*celestial.Celestial, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	obj, ok := e.objects[name]
	if !ok {
		return nil, errors.Wrapf(ostkerr.DataUnavailable, "environment: no object named %q", name)
	}
	return obj, nil
}

// AddObject registers or replaces a named Celestial object, binding it to
// the Environment's frame registry (ITRF) as New does.
func (e *Environment) AddObject(name string, obj *celestial.Celestial) {
	e.mu.Lock()
	defer e.mu.Unlock()
	obj.BindFrame(e.registry, e.frames.ITRF)
	e.objects[name] = obj
}

// Intersects reports whether any registered object's body-fixed-frame
// shape intersects line, and returns the name of the first object found to
// intersect (objects are visited in map order, so ties are unordered).
func (e *Environment) Intersects(line geometry.Line, shapeForObject func(name string, obj *celestial.Celestial) (geometry.Intersectable, bool)) (hitObject string, hit bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for name, obj := range e.objects {
		shape, ok := shapeForObject(name, obj)
		if !ok {
			continue
		}
		if intersects, _, _ := shape.IntersectsLine(line); intersects {
			return name, true
		}
	}
	return "", false
}

// IntersectsSphere is a convenience form of Intersects for objects modeled
// as a sphere of the given radius at their own body-fixed origin — the
// common case of a body's reference ellipsoid approximated as a sphere.
func (e *Environment) IntersectsSphere(line geometry.Line) (hitObject string, hit bool) {
	return e.Intersects(line, func(_ string, obj *celestial.Celestial) (geometry.Intersectable, bool) {
		if obj == nil {
			return nil, false
		}
		return geometry.Sphere{Center: [3]float64{0, 0, 0}, Radius: obj.EquatorialRadius}, true
	})
}
