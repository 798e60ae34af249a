// Package resin keeps a mesh artifact synchronized with a hierarchy of
// parametric implicit-surface sources. Hosts describe their scene through
// scene.Provider, signal edits through NotifyPossibleChange, and receive
// meshes through a sink.ResultSink; everything between — change detection,
// debouncing, throttling, CSG compilation and meshing — lives here.
package resin

import (
	"github.com/chazu/resin/pkg/builder"
	"github.com/chazu/resin/pkg/cache"
	"github.com/chazu/resin/pkg/mesher"
	"github.com/chazu/resin/pkg/scene"
	"github.com/chazu/resin/pkg/scheduler"
	"github.com/chazu/resin/pkg/sink"
)

// System wires the scheduler, build runner, change cache, meshing engine
// and result sink together for one host.
type System struct {
	provider scene.Provider
	sink     sink.ResultSink
	cache    *cache.Cache
	sched    *scheduler.Scheduler
}

// NewSystem creates a System. Nil collaborators get defaults: the
// in-memory Tree provider, the sdfx marching cubes engine, and an
// in-memory sink.
func NewSystem(provider scene.Provider, engine mesher.Engine, rs sink.ResultSink) *System {
	if provider == nil {
		provider = scene.Tree{}
	}
	if engine == nil {
		engine = mesher.NewMarchingCubes()
	}
	if rs == nil {
		rs = sink.NewMemory()
	}
	c := cache.New()
	r := builder.New(provider, engine, rs, c)
	return &System{
		provider: provider,
		sink:     rs,
		cache:    c,
		sched:    scheduler.New(provider, r, c),
	}
}

// Register starts tracking a hierarchy under the given key.
func (s *System) Register(key scene.HierarchyKey, root *scene.Node) error {
	return s.sched.Register(key, root)
}

// Unregister stops tracking a hierarchy and purges its state.
func (s *System) Unregister(key scene.HierarchyKey) {
	s.sched.Unregister(key)
}

// NotifyPossibleChange signals that something in the hierarchy may have
// changed. The reason is diagnostic only.
func (s *System) NotifyPossibleChange(key scene.HierarchyKey, reason string) {
	s.sched.NotifyPossibleChange(key, reason)
}

// ForceRebuild rebuilds the hierarchy immediately, bypassing debounce and
// throttle, at fine resolution if requested.
func (s *System) ForceRebuild(key scene.HierarchyKey, useFine bool) {
	s.sched.ForceRebuild(key, useFine)
}

// Sink returns the result sink meshes are applied to.
func (s *System) Sink() sink.ResultSink {
	return s.sink
}
