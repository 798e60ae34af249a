package compiler

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Custom SDF3 implementations for shapes and operators sdfx does not
// provide directly. Implementing sdf.SDF3 is the library's documented
// extension point: Evaluate returns the signed distance (negative inside),
// BoundingBox a conservative axis-aligned box.

// torusSDF3 is a torus in the XY plane around the Z axis.
type torusSDF3 struct {
	major, minor float64
}

func newTorus(major, minor float64) sdf.SDF3 {
	return &torusSDF3{major: major, minor: minor}
}

func (t *torusSDF3) Evaluate(p v3.Vec) float64 {
	q := math.Sqrt(p.X*p.X+p.Y*p.Y) - t.major
	return math.Sqrt(q*q+p.Z*p.Z) - t.minor
}

func (t *torusSDF3) BoundingBox() sdf.Box3 {
	r := t.major + t.minor
	return sdf.Box3{
		Min: v3.Vec{X: -r, Y: -r, Z: -t.minor},
		Max: v3.Vec{X: r, Y: r, Z: t.minor},
	}
}

// halfSpaceExtent bounds the nominally infinite half-space so marching
// cubes has a finite region to work with.
const halfSpaceExtent = 1000.0

// halfSpaceSDF3 is the solid region below the local Z=0 plane.
type halfSpaceSDF3 struct{}

func newHalfSpace() sdf.SDF3 {
	return halfSpaceSDF3{}
}

func (halfSpaceSDF3) Evaluate(p v3.Vec) float64 {
	return p.Z
}

func (halfSpaceSDF3) BoundingBox() sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{X: -halfSpaceExtent, Y: -halfSpaceExtent, Z: -halfSpaceExtent},
		Max: v3.Vec{X: halfSpaceExtent, Y: halfSpaceExtent, Z: 0},
	}
}

// morphSDF3 interpolates between two distance fields by a fixed factor.
type morphSDF3 struct {
	a, b sdf.SDF3
	t    float64
	bb   sdf.Box3
}

func newMorph(a, b sdf.SDF3, t float64) sdf.SDF3 {
	return &morphSDF3{a: a, b: b, t: t, bb: boxUnion(a.BoundingBox(), b.BoundingBox())}
}

func (m *morphSDF3) Evaluate(p v3.Vec) float64 {
	return (1-m.t)*m.a.Evaluate(p) + m.t*m.b.Evaluate(p)
}

func (m *morphSDF3) BoundingBox() sdf.Box3 {
	return m.bb
}

func boxUnion(a, b sdf.Box3) sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{
			X: math.Min(a.Min.X, b.Min.X),
			Y: math.Min(a.Min.Y, b.Min.Y),
			Z: math.Min(a.Min.Z, b.Min.Z),
		},
		Max: v3.Vec{
			X: math.Max(a.Max.X, b.Max.X),
			Y: math.Max(a.Max.Y, b.Max.Y),
			Z: math.Max(a.Max.Z, b.Max.Z),
		},
	}
}
