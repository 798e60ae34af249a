package scene

// Mode is the interaction mode of a source node: how its shape combines
// into the parent's accumulated shape. A node carries exactly one mode, so
// two modes can never be simultaneously active.
type Mode interface {
	String() string
	mode()
}

// Additive unions the shape into the parent accumulator.
type Additive struct{}

func (Additive) String() string { return "additive" }
func (Additive) mode()          {}

// Negative subtracts the shape from the parent accumulator.
type Negative struct{}

func (Negative) String() string { return "negative" }
func (Negative) mode()          {}

// Clearance subtracts an outward-offset copy of the shape from the parent
// accumulator, carving breathing room around it. If KeepOriginal is set the
// un-offset shape is unioned back in after the subtraction.
type Clearance struct {
	Offset       float64
	KeepOriginal bool
}

func (Clearance) String() string { return "clearance" }
func (Clearance) mode()          {}

// Morph blends the parent accumulator toward the shape by Factor in [0,1].
type Morph struct {
	Factor float64
}

func (Morph) String() string { return "morph" }
func (Morph) mode()          {}

// Loft pairs a planar source with one planar child (also marked Loft) and
// sweeps between the two cross-sections. Resolved at the parent; a loft
// node that finds no qualifying partner degrades to an extruded additive.
type Loft struct{}

func (Loft) String() string { return "loft" }
func (Loft) mode()          {}
