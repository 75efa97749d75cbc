package environment

import (
	"testing"

	"github.com/ostkgo/physics/celestial"
	"github.com/ostkgo/physics/geometry"
	"github.com/ostkgo/physics/timekernel"
)

func mustInstant(t *testing.T, mjd float64) timekernel.Instant {
	t.Helper()
	dt, err := timekernel.FromModifiedJulianDate(mjd)
	if err != nil {
		t.Fatal(err)
	}
	instant, err := timekernel.NewInstant(timekernel.UTC, dt, nil)
	if err != nil {
		t.Fatal(err)
	}
	return instant
}

func mustDefault(t *testing.T, mjd float64) *Environment {
	t.Helper()
	env, err := Default(mustInstant(t, mjd))
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func TestDefault_HasEarth(t *testing.T) {
	env := mustDefault(t, 61038.0)
	obj, err := env.AccessObject("Earth")
	if err != nil {
		t.Fatal(err)
	}
	if obj.Name != "Earth" {
		t.Fatalf("got object named %q", obj.Name)
	}
	if obj.BodyFrame() != env.Frames().ITRF {
		t.Fatalf("expected Earth bound to the Environment's ITRF frame")
	}
}

func TestAccessObject_UnknownFails(t *testing.T) {
	env := mustDefault(t, 61038.0)
	if _, err := env.AccessObject("Mars"); err == nil {
		t.Fatal("expected error for unknown object")
	}
}

func TestSetInstant(t *testing.T) {
	env := mustDefault(t, 61038.0)
	next := mustInstant(t, 61039.0)
	env.SetInstant(next)
	if eq, err := env.Instant().Equal(next); err != nil || !eq {
		t.Fatalf("expected updated instant, eq=%v err=%v", eq, err)
	}
}

func TestAddObject(t *testing.T) {
	env := mustDefault(t, 61038.0)
	env.AddObject("TestBody", &celestial.Celestial{Name: "TestBody", EquatorialRadius: 1000})
	obj, err := env.AccessObject("TestBody")
	if err != nil {
		t.Fatal(err)
	}
	if obj.EquatorialRadius != 1000 {
		t.Fatalf("got radius %v, want 1000", obj.EquatorialRadius)
	}
	if obj.BodyFrame() != env.Frames().ITRF {
		t.Fatal("expected AddObject to bind the new object to the Environment's ITRF frame")
	}
}

func TestIntersectsSphere_Hit(t *testing.T) {
	env := mustDefault(t, 61038.0)
	line := geometry.Line{Endpoint: [3]float64{1, 0, 0}}
	name, hit := env.IntersectsSphere(line)
	if !hit || name != "Earth" {
		t.Fatalf("expected hit on Earth, got hit=%v name=%q", hit, name)
	}
}

func TestIntersectsSphere_MissWithEmptyEnvironment(t *testing.T) {
	env, err := New(mustInstant(t, 61038.0), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	line := geometry.Line{Endpoint: [3]float64{1, 0, 0}}
	_, hit := env.IntersectsSphere(line)
	if hit {
		t.Fatal("expected no hit with no objects")
	}
}

func TestObjectNames(t *testing.T) {
	env := mustDefault(t, 61038.0)
	names := env.ObjectNames()
	if len(names) != 1 || names[0] != "Earth" {
		t.Fatalf("got names %v, want [Earth]", names)
	}
}
