package frame

import (
	"github.com/ostkgo/physics/timekernel"
)

// TransformProvider computes the Transform from a frame to its registered
// parent at a given instant.
type TransformProvider interface {
	TransformAt(instant timekernel.Instant) (Transform, error)
}

// StaticProvider always returns the same Transform, for frames related by a
// fixed bias (e.g. the ICRS-to-J2000 frame bias in the teacher's
// coord/frames.go init()).
type StaticProvider struct {
	transform Transform
}

// NewStaticProvider wraps a fixed Transform.
func NewStaticProvider(t Transform) StaticProvider { return StaticProvider{transform: t} }

// TransformAt implements TransformProvider.
func (p StaticProvider) TransformAt(timekernel.Instant) (Transform, error) {
	return p.transform, nil
}

// FuncProvider adapts a plain function into a TransformProvider.
type FuncProvider struct {
	fn func(timekernel.Instant) (Transform, error)
}

// NewFuncProvider wraps fn as a TransformProvider.
func NewFuncProvider(fn func(timekernel.Instant) (Transform, error)) FuncProvider {
	return FuncProvider{fn: fn}
}

// TransformAt implements TransformProvider.
func (p FuncProvider) TransformAt(instant timekernel.Instant) (Transform, error) {
	return p.fn(instant)
}
