package scene

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimCube PrimitiveKind = iota
	PrimSphere
	PrimCylinder
	PrimCone
	PrimTorus
	PrimRoundedBox
	PrimCircle // 2D, extruded or lofted
	PrimRing   // 2D
	PrimPolygon // 2D
	PrimHalfSpace
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimCube:
		return "cube"
	case PrimSphere:
		return "sphere"
	case PrimCylinder:
		return "cylinder"
	case PrimCone:
		return "cone"
	case PrimTorus:
		return "torus"
	case PrimRoundedBox:
		return "rounded-box"
	case PrimCircle:
		return "circle"
	case PrimRing:
		return "ring"
	case PrimPolygon:
		return "polygon"
	case PrimHalfSpace:
		return "half-space"
	default:
		return "unknown"
	}
}

// Primitive is the interface for kind-specific primitive parameters.
// All shapes are defined in the node's local space, centered on the origin.
type Primitive interface {
	Kind() PrimitiveKind
	// Planar reports whether the primitive is a 2D cross-section that must
	// be extruded (or lofted) along local Z to become a solid.
	Planar() bool
	primitive()
}

// Cube is an axis-aligned box.
type Cube struct {
	Size v3.Vec
}

func (Cube) Kind() PrimitiveKind { return PrimCube }
func (Cube) Planar() bool        { return false }
func (Cube) primitive()          {}

// Sphere is a ball of the given radius.
type Sphere struct {
	Radius float64
}

func (Sphere) Kind() PrimitiveKind { return PrimSphere }
func (Sphere) Planar() bool        { return false }
func (Sphere) primitive()          {}

// Cylinder is a Z-aligned cylinder, optionally with rounded edges.
type Cylinder struct {
	Height float64
	Radius float64
	Round  float64
}

func (Cylinder) Kind() PrimitiveKind { return PrimCylinder }
func (Cylinder) Planar() bool        { return false }
func (Cylinder) primitive()          {}

// Cone is a Z-aligned truncated cone.
type Cone struct {
	Height     float64
	BaseRadius float64
	TopRadius  float64
	Round      float64
}

func (Cone) Kind() PrimitiveKind { return PrimCone }
func (Cone) Planar() bool        { return false }
func (Cone) primitive()          {}

// Torus lies in the local XY plane around the Z axis.
type Torus struct {
	MajorRadius float64 // center of tube to center of torus
	MinorRadius float64 // tube radius
}

func (Torus) Kind() PrimitiveKind { return PrimTorus }
func (Torus) Planar() bool        { return false }
func (Torus) primitive()          {}

// RoundedBox is a box with filleted edges.
type RoundedBox struct {
	Size  v3.Vec
	Round float64
}

func (RoundedBox) Kind() PrimitiveKind { return PrimRoundedBox }
func (RoundedBox) Planar() bool        { return false }
func (RoundedBox) primitive()          {}

// Circle is a 2D disc in the local XY plane. Depth is the symmetric
// extrusion height used when the circle is not consumed by a loft.
type Circle struct {
	Radius float64
	Depth  float64
}

func (Circle) Kind() PrimitiveKind { return PrimCircle }
func (Circle) Planar() bool        { return true }
func (Circle) primitive()          {}

// Ring is a 2D annulus in the local XY plane.
type Ring struct {
	OuterRadius float64
	InnerRadius float64
	Depth       float64
}

func (Ring) Kind() PrimitiveKind { return PrimRing }
func (Ring) Planar() bool        { return true }
func (Ring) primitive()          {}

// Polygon is a regular 2D polygon in the local XY plane.
type Polygon struct {
	Sides  int
	Radius float64 // circumradius
	Depth  float64
}

func (Polygon) Kind() PrimitiveKind { return PrimPolygon }
func (Polygon) Planar() bool        { return true }
func (Polygon) primitive()          {}

// HalfSpace is the solid region below the local Z=0 plane.
type HalfSpace struct{}

func (HalfSpace) Kind() PrimitiveKind { return PrimHalfSpace }
func (HalfSpace) Planar() bool        { return false }
func (HalfSpace) primitive()          {}
