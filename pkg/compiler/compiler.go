// Package compiler turns a hierarchy of primitive sources into one
// combined signed-distance expression. Compile is a pure function over the
// tree handed to it; per-node failures are contained by substituting an
// empty shape, so a compile always yields some valid (possibly partially
// empty) result.
package compiler

import (
	"log"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/resin/pkg/compare"
	"github.com/chazu/resin/pkg/scene"
)

// Compile builds the combined CSG expression for the hierarchy rooted at
// root, using the captured settings for blend policy. A nil result is the
// empty shape.
func Compile(p scene.Provider, root *scene.Node, settings scene.Settings) sdf.SDF3 {
	if p == nil || root == nil {
		return nil
	}
	return compileNode(p, root, settings)
}

// compileNode builds the subtree expression for n: its own shape first,
// then each visible child folded into the accumulator by the child's
// interaction mode. A panic anywhere below this node empties the node, not
// the compile.
func compileNode(p scene.Provider, n *scene.Node, settings scene.Settings) (out sdf.SDF3) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("compiler: node %s (%s) failed: %v", n.ID, n.Name, r)
			out = nil
		}
	}()

	var acc sdf.SDF3
	var lofted *scene.Node
	if d, ok := n.Source(); ok {
		acc, lofted = sourceShape(p, n, d)
	}

	blend := clamp01(parentBlend(n, settings))
	for _, c := range p.Children(n) {
		if c == nil || c == lofted || !p.Visible(c) {
			continue
		}
		cs := safeCompileChild(p, c, settings)
		if cs == nil {
			continue
		}
		acc = combine(acc, cs, childMode(c), blend)
	}
	return acc
}

// safeCompileChild contains combination-time panics to the child.
func safeCompileChild(p scene.Provider, c *scene.Node, settings scene.Settings) (out sdf.SDF3) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("compiler: skipping child %s (%s): %v", c.ID, c.Name, r)
			out = nil
		}
	}()
	return compileNode(p, c, settings)
}

// parentBlend picks the blend factor governing how children combine into
// n: a source node uses its own child blend, the bounds root and groups
// use the global setting.
func parentBlend(n *scene.Node, settings scene.Settings) float64 {
	if d, ok := n.Source(); ok {
		return d.ChildBlend
	}
	return settings.BlendFactor
}

// childMode returns the interaction mode a child combines with. Group
// subtrees fold in additively.
func childMode(c *scene.Node) scene.Mode {
	if d, ok := c.Source(); ok && d.Mode != nil {
		return d.Mode
	}
	return scene.Additive{}
}

// combine folds one compiled child shape into the accumulator.
func combine(acc, child sdf.SDF3, mode scene.Mode, blend float64) sdf.SDF3 {
	switch m := mode.(type) {
	case scene.Morph:
		if acc == nil {
			return child
		}
		return newMorph(acc, child, clamp01(m.Factor))

	case scene.Clearance:
		grown := sdf.Offset3D(child, m.Offset)
		if acc != nil {
			acc = difference(acc, grown, 0)
		}
		if m.KeepOriginal {
			acc = union(acc, child, blend)
		}
		return acc

	case scene.Negative:
		if acc == nil {
			// Nothing to subtract from.
			return nil
		}
		return difference(acc, child, blend)

	default:
		// Additive, and Loft nodes that were not consumed by their parent.
		return union(acc, child, blend)
	}
}

// union combines two shapes, smoothly when blend exceeds tolerance.
func union(acc, child sdf.SDF3, blend float64) sdf.SDF3 {
	if acc == nil {
		return child
	}
	u := sdf.Union3D(acc, child)
	if blend > compare.DefaultTolerance {
		u.(*sdf.UnionSDF3).SetMin(sdf.PolyMin(blend))
	}
	return u
}

// difference subtracts child from acc, smoothly when blend exceeds
// tolerance.
func difference(acc, child sdf.SDF3, blend float64) sdf.SDF3 {
	d := sdf.Difference3D(acc, child)
	if blend > compare.DefaultTolerance {
		d.(*sdf.DifferenceSDF3).SetMax(sdf.PolyMax(blend))
	}
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
