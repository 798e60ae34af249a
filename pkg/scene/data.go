package scene

// SourceData is the payload of a source node.
type SourceData struct {
	Primitive  Primitive
	Mode       Mode
	ChildBlend float64 // blend factor governing how children combine into this node
	Shell      *Shell
	Array      Array
}

func (SourceData) nodeData() {}

// GroupData is the payload of a plain group node. Groups contribute no
// shape of their own; their children combine into an empty accumulator.
type GroupData struct {
	Description string
}

func (GroupData) nodeData() {}

// RootData is the payload of a bounds root.
type RootData struct {
	Settings Settings
}

func (RootData) nodeData() {}
