// Package builder orchestrates one rebuild attempt: compile the live
// hierarchy with captured settings, mesh it over bounds derived from the
// captured root transform, push the result into the sink, and advance the
// change cache only on full success.
package builder

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/resin/pkg/cache"
	"github.com/chazu/resin/pkg/compiler"
	"github.com/chazu/resin/pkg/mesher"
	"github.com/chazu/resin/pkg/scene"
	"github.com/chazu/resin/pkg/sink"
	"github.com/chazu/resin/pkg/snapshot"
)

// Runner executes rebuild attempts for the scheduler.
type Runner struct {
	Provider scene.Provider
	Engine   mesher.Engine
	Sink     sink.ResultSink
	Cache    *cache.Cache
}

// New returns a Runner over the given collaborators.
func New(p scene.Provider, e mesher.Engine, s sink.ResultSink, c *cache.Cache) *Runner {
	return &Runner{Provider: p, Engine: e, Sink: s, Cache: c}
}

// Run performs one rebuild for a hierarchy. The tree is walked live; the
// settings and root transform used for blend policy and meshing bounds
// come from the captured snapshot. The cache is advanced only when every
// step succeeds, so a failing hierarchy is retried on the next detected
// change.
func (r *Runner) Run(key scene.HierarchyKey, root *scene.Node, snap *snapshot.Snapshot, useFine bool) error {
	if snap == nil || snap.Sources == nil {
		return fmt.Errorf("builder: %s: snapshot missing required state", key)
	}
	if root == nil {
		return fmt.Errorf("builder: %s: no live root", key)
	}

	expr := compiler.Compile(r.Provider, root, snap.Settings)

	min, max := meshBounds(snap.RootTransform, snap.Settings)

	cells := snap.Settings.CoarseCells
	if useFine {
		cells = snap.Settings.FineCells
	}

	h, ok := r.Sink.Find(snap.Settings.ResultID)
	if !ok {
		if !snap.Settings.AutoCreateResult {
			return fmt.Errorf("builder: %s: result target %q missing and auto-create disabled",
				key, snap.Settings.ResultID)
		}
		h = r.Sink.Create(snap.Settings.ResultID)
	}

	mesh, err := r.Engine.Evaluate(expr, min, max, cells)
	if err != nil {
		r.clear(h)
		return fmt.Errorf("builder: %s: evaluate: %w", key, err)
	}
	if mesh == nil || mesh.IsEmpty() {
		// No mesh produced. Clear stale geometry but leave the cache
		// alone so the hierarchy is retried.
		r.clear(h)
		return nil
	}

	if err := r.Sink.ApplyMesh(h, mesh); err != nil {
		r.clear(h)
		return fmt.Errorf("builder: %s: apply: %w", key, err)
	}

	r.Cache.Put(key, snap)
	return nil
}

func (r *Runner) clear(h sink.Handle) {
	if h != nil {
		// Best effort; the attempt already failed.
		_ = r.Sink.ClearGeometry(h)
	}
}

// meshBounds derives the meshing region from the captured root transform:
// its origin is the center, and the half-extent is the average world
// scale of the root's basis axes times the configured bounds scale.
func meshBounds(root sdf.M44, s scene.Settings) (v3.Vec, v3.Vec) {
	o := root.MulPosition(v3.Vec{})
	sx := root.MulPosition(v3.Vec{X: 1}).Sub(o).Length()
	sy := root.MulPosition(v3.Vec{Y: 1}).Sub(o).Length()
	sz := root.MulPosition(v3.Vec{Z: 1}).Sub(o).Length()

	scaleFactor := s.BoundsScale
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	half := (sx + sy + sz) / 3 * scaleFactor
	if half <= 0 {
		half = 1
	}

	min := v3.Vec{X: o.X - half, Y: o.Y - half, Z: o.Z - half}
	max := v3.Vec{X: o.X + half, Y: o.Y + half, Z: o.Z + half}
	return min, max
}
