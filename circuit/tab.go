package circuit

import "github.com/sarchlab/relaysim/ident"

// Position is a 2D schematic coordinate. Only ever consumed by the
// (out-of-scope) renderer; the solver never reads it.
type Position struct {
	X, Y float64
}

// Tab is a physical connection point on a component at a fixed offset
// relative to its center (spec §3.3). A Tab belongs to exactly one Pin;
// its electrical state is always read through that Pin.
type Tab struct {
	ID       ident.ID
	PinID    ident.ID
	Position Position
}
