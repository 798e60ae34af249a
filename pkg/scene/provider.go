package scene

import (
	"github.com/deadsy/sdfx/sdf"
)

// Provider is the read-only view of a host scene graph consumed by the
// snapshot builder and the hierarchy compiler. The core never mutates
// scene state through it.
type Provider interface {
	// Children returns the ordered children of a node.
	Children(n *Node) []*Node

	// WorldTransform returns the node's transform composed from the root
	// of its hierarchy down.
	WorldTransform(n *Node) sdf.M44

	// Visible reports whether the node itself is visible. Callers are
	// responsible for pruning subtrees under hidden nodes.
	Visible(n *Node) bool

	// FindRoot walks ancestors looking for a bounds root. Returns nil if
	// the node is not part of a registered hierarchy shape.
	FindRoot(n *Node) *Node
}

// Tree is a stateless Provider over nodes linked with AddChild. It serves
// hosts that keep their whole scene in this package's Node structs.
type Tree struct{}

// Children returns the node's owned child list.
func (Tree) Children(n *Node) []*Node {
	if n == nil {
		return nil
	}
	return n.Children
}

// WorldTransform composes local transforms from the topmost ancestor down
// to n.
func (Tree) WorldTransform(n *Node) sdf.M44 {
	if n == nil {
		return sdf.Identity3d()
	}
	// Collect the ancestor chain, then multiply root-first.
	var chain []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	w := sdf.Identity3d()
	for i := len(chain) - 1; i >= 0; i-- {
		w = w.Mul(chain[i].Local)
	}
	return w
}

// Visible reports the node's own visibility flag.
func (Tree) Visible(n *Node) bool {
	return n != nil && n.Visible
}

// FindRoot walks parent links until a bounds root is found.
func (Tree) FindRoot(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == NodeBoundsRoot {
			return cur
		}
	}
	return nil
}
