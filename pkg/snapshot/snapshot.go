// Package snapshot captures the rebuild-relevant state of a hierarchy:
// root settings, the root transform, and the transform plus tracked
// properties of every visible source node. Snapshots are immutable once
// built and are the unit of change detection.
package snapshot

import (
	"fmt"
	"time"

	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/resin/pkg/compare"
	"github.com/chazu/resin/pkg/scene"
)

// SourceState is the captured state of one source node.
type SourceState struct {
	Transform sdf.M44
	Props     map[string]any
}

// Snapshot is an immutable capture of everything that decides whether a
// hierarchy needs a rebuild.
type Snapshot struct {
	Key           scene.HierarchyKey
	Settings      scene.Settings
	RootTransform sdf.M44
	Sources       map[scene.NodeID]SourceState
	TakenAt       time.Time
}

// Build walks the hierarchy under root and records every visible source
// node. Hidden nodes and everything beneath them are excluded; the root
// itself is always included. Returns an error if root is not a valid
// bounds root.
func Build(p scene.Provider, root *scene.Node, key scene.HierarchyKey) (*Snapshot, error) {
	if root == nil {
		return nil, fmt.Errorf("snapshot: nil root for hierarchy %q", key)
	}
	rd, ok := root.Root()
	if !ok || root.Kind != scene.NodeBoundsRoot {
		return nil, fmt.Errorf("snapshot: node %s is not a bounds root", root.ID)
	}

	snap := &Snapshot{
		Key:           key,
		Settings:      rd.Settings,
		RootTransform: p.WorldTransform(root),
		Sources:       make(map[scene.NodeID]SourceState),
		TakenAt:       time.Now(),
	}

	// Iterative traversal with a visited guard against malformed or
	// duplicated parent links.
	visited := map[scene.NodeID]bool{root.ID: true}
	stack := append([]*scene.Node(nil), p.Children(root)...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil || visited[n.ID] {
			continue
		}
		visited[n.ID] = true
		if !p.Visible(n) {
			continue
		}
		if d, ok := n.Source(); ok {
			snap.Sources[n.ID] = SourceState{
				Transform: p.WorldTransform(n),
				Props:     d.TrackedProperties(),
			}
		}
		stack = append(stack, p.Children(n)...)
	}
	return snap, nil
}

// Equal reports whether two snapshots describe the same rebuild-relevant
// state, up to tol.
func Equal(a, b *Snapshot, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !settingsEqual(a.Settings, b.Settings, tol) {
		return false
	}
	if !compare.Transforms(a.RootTransform, b.RootTransform, tol) {
		return false
	}
	if len(a.Sources) != len(b.Sources) {
		return false
	}
	for id, as := range a.Sources {
		bs, ok := b.Sources[id]
		if !ok {
			return false
		}
		if !compare.Transforms(as.Transform, bs.Transform, tol) {
			return false
		}
		if !compare.Props(as.Props, bs.Props, tol) {
			return false
		}
	}
	return true
}

func settingsEqual(a, b scene.Settings, tol float64) bool {
	return compare.Scalars(a.BlendFactor, b.BlendFactor, tol) &&
		compare.Scalars(a.BoundsScale, b.BoundsScale, tol) &&
		a.CoarseCells == b.CoarseCells &&
		a.FineCells == b.FineCells &&
		a.Debounce == b.Debounce &&
		a.MinRebuildInterval == b.MinRebuildInterval &&
		a.ResultID == b.ResultID &&
		a.AutoCreateResult == b.AutoCreateResult
}
