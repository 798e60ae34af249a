package scene

// Shell hollows a source shape into a skin of the given thickness around
// its surface. Near-zero offsets are treated as a no-op.
type Shell struct {
	Offset float64
}

// Array is the interface for replication modifiers on a source node.
type Array interface {
	array()
}

// LinearAxis configures replication along one axis of a linear array.
type LinearAxis struct {
	Active bool
	Count  int     // total number of copies along this axis
	Delta  float64 // spacing between copies
}

// LinearArray replicates a shape along up to three axes. Axis activation
// chains strictly: Y may only be active if X is, Z only if Y is. A
// malformed configuration degrades to no replication.
type LinearArray struct {
	X, Y, Z LinearAxis
}

func (LinearArray) array() {}

// RadialArray replicates a shape Count times around the local Z axis,
// offset from the axis by Center in the XY plane.
type RadialArray struct {
	Count  int
	Center [2]float64
}

func (RadialArray) array() {}
