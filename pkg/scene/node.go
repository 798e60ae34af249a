package scene

import (
	"github.com/deadsy/sdfx/sdf"
	"github.com/google/uuid"
)

// NodeID is a stable identifier for a hierarchy node.
type NodeID string

// HierarchyKey identifies one registered hierarchy (one bounds root and its
// descendants) across the scheduler, cache and build runner.
type HierarchyKey string

// NewNodeID mints a fresh node identifier.
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// NodeKind enumerates the types of nodes in a hierarchy.
type NodeKind int

const (
	NodeBoundsRoot NodeKind = iota // root of one hierarchy, carries settings
	NodeSource                     // carries a primitive shape and modifiers
	NodeGroup                      // plain grouping node
)

func (k NodeKind) String() string {
	switch k {
	case NodeBoundsRoot:
		return "bounds-root"
	case NodeSource:
		return "source"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is one element of a hierarchy. Nodes mirror host-owned entities and
// are rebuilt fresh on every snapshot/compile pass; only ID carries identity
// across calls.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Name     string
	Local    sdf.M44 // transform relative to the parent
	Visible  bool
	Parent   *Node
	Children []*Node
	Data     NodeData
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// NewBoundsRoot creates a visible bounds root with the given settings and an
// identity local transform.
func NewBoundsRoot(name string, settings Settings) *Node {
	return &Node{
		ID:      NewNodeID(),
		Kind:    NodeBoundsRoot,
		Name:    name,
		Local:   sdf.Identity3d(),
		Visible: true,
		Data:    RootData{Settings: settings},
	}
}

// NewSource creates a visible source node for the given primitive with an
// additive interaction mode and an identity local transform.
func NewSource(name string, p Primitive) *Node {
	return &Node{
		ID:      NewNodeID(),
		Kind:    NodeSource,
		Name:    name,
		Local:   sdf.Identity3d(),
		Visible: true,
		Data:    SourceData{Primitive: p, Mode: Additive{}},
	}
}

// NewGroup creates a visible group node with an identity local transform.
func NewGroup(name string) *Node {
	return &Node{
		ID:      NewNodeID(),
		Kind:    NodeGroup,
		Name:    name,
		Local:   sdf.Identity3d(),
		Visible: true,
		Data:    GroupData{},
	}
}

// AddChild appends c to n's children and sets its parent link.
// It returns c for chaining.
func (n *Node) AddChild(c *Node) *Node {
	c.Parent = n
	n.Children = append(n.Children, c)
	return c
}

// Source returns the node's source payload, or false if the node is not a
// source node.
func (n *Node) Source() (SourceData, bool) {
	d, ok := n.Data.(SourceData)
	return d, ok
}

// Root returns the node's root payload, or false if the node is not a
// bounds root.
func (n *Node) Root() (RootData, bool) {
	d, ok := n.Data.(RootData)
	return d, ok
}
