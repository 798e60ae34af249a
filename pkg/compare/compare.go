// Package compare provides tolerant equality for the value types that flow
// through snapshots: scalars, vectors, 4x4 transforms and typed flat
// property maps. All functions are pure predicates.
package compare

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultTolerance is the absolute tolerance used across the system for
// floating-point comparisons.
const DefaultTolerance = 1e-6

// Scalars reports whether two floats are within tol of each other.
func Scalars(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Vecs compares two vectors element-wise with the same tolerance.
func Vecs(a, b v3.Vec, tol float64) bool {
	return Scalars(a.X, b.X, tol) && Scalars(a.Y, b.Y, tol) && Scalars(a.Z, b.Z, tol)
}

// probePoints span the affine action of a transform: the images of the
// origin and the three unit axis points determine it completely.
var probePoints = []v3.Vec{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
}

// Transforms compares two affine 4x4 transforms by the images of four
// probe points, element-wise with the given tolerance.
func Transforms(a, b sdf.M44, tol float64) bool {
	for _, p := range probePoints {
		if !Vecs(a.MulPosition(p), b.MulPosition(p), tol) {
			return false
		}
	}
	return true
}

// Props compares two flat property maps. The key sets must match exactly;
// each value is compared by its own type rule, and a type mismatch means
// not equal.
func Props(a, b map[string]any, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		if !valuesEqual(av, bv, tol) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any, tol float64) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && Scalars(av, bv, tol)
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}
