package circuit

import "github.com/sarchlab/relaysim/ident"

// Junction is a named branching point on a Page, electrically identical
// to a Pin with a single Tab (spec §3.5). It is its own owner: no
// Component ID. A Wire may embed child wires under a Junction at
// authoring time; persist's loader flattens those into the page's Wires,
// so the VNET builder resolves them like any other wire (spec §4.1
// step 2).
type Junction struct {
	ID       ident.ID
	Position Position

	// TabID is the single virtual tab this junction exposes to wires.
	TabID ident.ID
	// Pin is the single-tab Pin backing TabID; ComponentID is
	// ident.Empty because junctions have no owning component.
	Pin *Pin

	// ChildWireIDs are wires embedded directly under this junction at
	// authoring time (spec §6.1's junctions[].child_wires). The VNET
	// builder treats them as ordinary page wires reachable from this
	// junction's tab.
	ChildWireIDs []ident.ID
}

// NewJunction creates a Junction and its backing single-tab Pin. id,
// pinID, and tabID must each come from the owning Document's
// ident.Registry so the junction's entities are registered like any
// other first-class entity.
func NewJunction(id, pinID, tabID ident.ID) *Junction {
	pin := NewPin(pinID, ident.Empty, tabID)
	return &Junction{
		ID:    id,
		TabID: tabID,
		Pin:   pin,
	}
}
