package compiler

import (
	"fmt"
	"log"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/resin/pkg/compare"
	"github.com/chazu/resin/pkg/scene"
)

// sourceShape reconstructs the shape of one source node in world space:
// primitive (lofted or extruded if planar), then shell, then array, then
// the remap through the node's world transform. Returns the shape (nil on
// any contained failure) and the child consumed by loft pairing, if any.
func sourceShape(p scene.Provider, n *scene.Node, d scene.SourceData) (sdf.SDF3, *scene.Node) {
	if d.Primitive == nil {
		return nil, nil
	}

	var s sdf.SDF3
	var lofted *scene.Node

	if _, isLoft := d.Mode.(scene.Loft); isLoft && d.Primitive.Planar() {
		if partner, height := loftPartner(p, n); partner != nil {
			loft, err := loftShape(d.Primitive, partner, height)
			if err != nil {
				log.Printf("compiler: loft on %s failed: %v", n.Name, err)
				// Failed pairing empties this node only; the partner and its
				// subtree combine normally.
				return nil, nil
			}
			s = loft
			lofted = partner
		}
	}

	if s == nil {
		built, err := solidShape(d.Primitive)
		if err != nil {
			log.Printf("compiler: primitive %s on %s failed: %v", d.Primitive.Kind(), n.Name, err)
			return nil, nil
		}
		s = built
	}

	if d.Shell != nil && math.Abs(d.Shell.Offset) > compare.DefaultTolerance {
		shelled, err := sdf.Shell3D(s, math.Abs(d.Shell.Offset))
		if err != nil {
			log.Printf("compiler: shell on %s failed: %v", n.Name, err)
			return nil, lofted
		}
		s = shelled
	}

	s = applyArray(s, d.Array)

	m := p.WorldTransform(n)
	if degenerate(m) {
		log.Printf("compiler: degenerate world transform on %s", n.Name)
		return nil, lofted
	}
	return sdf.Transform3D(s, m), lofted
}

// loftPartner finds the one child a lofting node sweeps to: the first
// visible planar source child that also requests loft, with an effective
// local Z offset. Returns nil if no child qualifies.
func loftPartner(p scene.Provider, n *scene.Node) (*scene.Node, float64) {
	for _, c := range p.Children(n) {
		if c == nil || !p.Visible(c) {
			continue
		}
		d, ok := c.Source()
		if !ok || d.Primitive == nil || !d.Primitive.Planar() {
			continue
		}
		if _, isLoft := d.Mode.(scene.Loft); !isLoft {
			continue
		}
		height := c.Local.MulPosition(v3.Vec{}).Z
		if math.Abs(height) <= compare.DefaultTolerance {
			// No height range to sweep; the parent falls back to its own
			// extruded shape and the child combines normally.
			return nil, 0
		}
		return c, math.Abs(height)
	}
	return nil, 0
}

// loftShape sweeps between the parent's and the partner's cross-sections
// over the given height.
func loftShape(parent scene.Primitive, partner *scene.Node, height float64) (sdf.SDF3, error) {
	s0, err := planeShape(parent)
	if err != nil {
		return nil, err
	}
	pd, _ := partner.Source()
	s1, err := planeShape(pd.Primitive)
	if err != nil {
		return nil, err
	}
	return sdf.Loft3D(s0, s1, height, 0)
}

// solidShape builds a primitive's solid in its local unit space. Planar
// primitives are extruded symmetrically about local Z by their depth.
func solidShape(prim scene.Primitive) (sdf.SDF3, error) {
	switch p := prim.(type) {
	case scene.Cube:
		if p.Size.X <= 0 || p.Size.Y <= 0 || p.Size.Z <= 0 {
			return nil, fmt.Errorf("cube: non-positive size %v", p.Size)
		}
		return sdf.Box3D(p.Size, 0)

	case scene.Sphere:
		if p.Radius <= 0 {
			return nil, fmt.Errorf("sphere: non-positive radius %g", p.Radius)
		}
		return sdf.Sphere3D(p.Radius)

	case scene.Cylinder:
		if p.Height <= 0 || p.Radius <= 0 {
			return nil, fmt.Errorf("cylinder: non-positive dimensions h=%g r=%g", p.Height, p.Radius)
		}
		return sdf.Cylinder3D(p.Height, p.Radius, clampRound(p.Round, p.Radius))

	case scene.Cone:
		if p.Height <= 0 || p.BaseRadius < 0 || p.TopRadius < 0 {
			return nil, fmt.Errorf("cone: bad dimensions h=%g r0=%g r1=%g", p.Height, p.BaseRadius, p.TopRadius)
		}
		if p.BaseRadius <= 0 && p.TopRadius <= 0 {
			return nil, fmt.Errorf("cone: both radii zero")
		}
		return sdf.Cone3D(p.Height, p.BaseRadius, p.TopRadius, clampRound(p.Round, p.Height/2))

	case scene.Torus:
		if p.MajorRadius <= 0 || p.MinorRadius <= 0 {
			return nil, fmt.Errorf("torus: non-positive radii R=%g r=%g", p.MajorRadius, p.MinorRadius)
		}
		return newTorus(p.MajorRadius, p.MinorRadius), nil

	case scene.RoundedBox:
		if p.Size.X <= 0 || p.Size.Y <= 0 || p.Size.Z <= 0 {
			return nil, fmt.Errorf("rounded box: non-positive size %v", p.Size)
		}
		round := clampRound(p.Round, minOf(p.Size.X, p.Size.Y, p.Size.Z)/2)
		return sdf.Box3D(p.Size, round)

	case scene.HalfSpace:
		return newHalfSpace(), nil

	case scene.Circle, scene.Ring, scene.Polygon:
		s2, err := planeShape(prim)
		if err != nil {
			return nil, err
		}
		depth := planarDepth(prim)
		if depth <= compare.DefaultTolerance {
			return nil, fmt.Errorf("%s: non-positive extrusion depth %g", prim.Kind(), depth)
		}
		return sdf.Extrude3D(s2, depth), nil

	default:
		return nil, fmt.Errorf("unsupported primitive kind %v", prim.Kind())
	}
}

// planeShape builds the 2D cross-section of a planar primitive.
func planeShape(prim scene.Primitive) (sdf.SDF2, error) {
	switch p := prim.(type) {
	case scene.Circle:
		if p.Radius <= 0 {
			return nil, fmt.Errorf("circle: non-positive radius %g", p.Radius)
		}
		return sdf.Circle2D(p.Radius)

	case scene.Ring:
		if p.OuterRadius <= 0 || p.InnerRadius <= 0 || p.InnerRadius >= p.OuterRadius {
			return nil, fmt.Errorf("ring: bad radii outer=%g inner=%g", p.OuterRadius, p.InnerRadius)
		}
		outer, err := sdf.Circle2D(p.OuterRadius)
		if err != nil {
			return nil, err
		}
		inner, err := sdf.Circle2D(p.InnerRadius)
		if err != nil {
			return nil, err
		}
		return sdf.Difference2D(outer, inner), nil

	case scene.Polygon:
		if p.Sides < 3 || p.Radius <= 0 {
			return nil, fmt.Errorf("polygon: bad parameters sides=%d r=%g", p.Sides, p.Radius)
		}
		vs := make([]v2.Vec, p.Sides)
		for i := range vs {
			a := 2 * math.Pi * float64(i) / float64(p.Sides)
			vs[i] = v2.Vec{X: p.Radius * math.Cos(a), Y: p.Radius * math.Sin(a)}
		}
		return sdf.Polygon2D(vs)

	default:
		return nil, fmt.Errorf("primitive kind %v is not planar", prim.Kind())
	}
}

func planarDepth(prim scene.Primitive) float64 {
	switch p := prim.(type) {
	case scene.Circle:
		return p.Depth
	case scene.Ring:
		return p.Depth
	case scene.Polygon:
		return p.Depth
	}
	return 0
}

// applyArray replicates a shape per its array modifier. Malformed
// configurations degrade to no replication rather than failing the node.
func applyArray(s sdf.SDF3, a scene.Array) sdf.SDF3 {
	switch ar := a.(type) {
	case scene.LinearArray:
		// Strict activation chain: Y requires X, Z requires Y.
		if !ar.X.Active {
			return s
		}
		axes := []struct {
			axis scene.LinearAxis
			dir  v3.Vec
		}{
			{ar.X, v3.Vec{X: 1}},
			{ar.Y, v3.Vec{Y: 1}},
			{ar.Z, v3.Vec{Z: 1}},
		}
		out := s
		for _, ax := range axes {
			if !ax.axis.Active {
				// Inactive axis breaks the chain for all higher axes.
				break
			}
			if ax.axis.Count <= 1 {
				// Degrade this axis to a no-op.
				continue
			}
			out = replicate(out, ax.axis.Count, v3.Vec{
				X: ax.dir.X * ax.axis.Delta,
				Y: ax.dir.Y * ax.axis.Delta,
				Z: ax.dir.Z * ax.axis.Delta,
			})
		}
		return out

	case scene.RadialArray:
		if ar.Count <= 1 {
			return s
		}
		offset := sdf.Translate3d(v3.Vec{X: ar.Center[0], Y: ar.Center[1]})
		return sdf.RotateCopy3D(sdf.Transform3D(s, offset), ar.Count)
	}
	return s
}

// replicate unions count copies of s stepped along delta.
func replicate(s sdf.SDF3, count int, step v3.Vec) sdf.SDF3 {
	copies := make([]sdf.SDF3, count)
	for i := 0; i < count; i++ {
		m := sdf.Translate3d(v3.Vec{
			X: step.X * float64(i),
			Y: step.Y * float64(i),
			Z: step.Z * float64(i),
		})
		copies[i] = sdf.Transform3D(s, m)
	}
	return sdf.Union3D(copies...)
}

// degenerate reports whether a transform collapses space (zero scale on
// some axis), making it non-invertible.
func degenerate(m sdf.M44) bool {
	o := m.MulPosition(v3.Vec{})
	bx := m.MulPosition(v3.Vec{X: 1}).Sub(o)
	by := m.MulPosition(v3.Vec{Y: 1}).Sub(o)
	bz := m.MulPosition(v3.Vec{Z: 1}).Sub(o)
	det := bx.X*(by.Y*bz.Z-by.Z*bz.Y) -
		bx.Y*(by.X*bz.Z-by.Z*bz.X) +
		bx.Z*(by.X*bz.Y-by.Y*bz.X)
	return math.Abs(det) < 1e-9
}

func clampRound(round, limit float64) float64 {
	if round < 0 {
		return 0
	}
	if limit > 0 && round > limit {
		return limit
	}
	return round
}

func minOf(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}
