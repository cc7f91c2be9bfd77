package circuit

import (
	"sort"

	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// Pin is the logical equivalence class of Tabs of one component that are
// electrically a single node (spec §3.4). A Pin's state is the OR of its
// drives, set exclusively by its owning Component's logic — propagation
// never writes a VNET's computed state back into a Pin (the "passive
// input" asymmetry of spec §4.5/§9).
type Pin struct {
	ID          ident.ID
	ComponentID ident.ID
	TabIDs      []ident.ID

	drives map[ident.ID]signal.Signal
}

// NewPin creates a Pin owning the given tab IDs (at least one, per the
// "each Pin has ≥1 Tab" invariant).
func NewPin(id, componentID ident.ID, tabIDs ...ident.ID) *Pin {
	return &Pin{
		ID:          id,
		ComponentID: componentID,
		TabIDs:      append([]ident.ID(nil), tabIDs...),
		drives:      make(map[ident.ID]signal.Signal),
	}
}

// Drive sets the value a component's logic is asserting on one of this
// pin's tabs. Driving a tab that isn't owned by this pin is a
// programmer error (a malformed catalog component), so it panics rather
// than silently doing nothing, matching the teacher's "ref count is 0"
// invariant-violation panics in core/emu.go.
func (p *Pin) Drive(tabID ident.ID, val signal.Signal) {
	if !p.owns(tabID) {
		panic("circuit: pin " + string(p.ID) + " does not own tab " + string(tabID))
	}
	p.drives[tabID] = val
}

// Float clears any drive previously asserted on tabID, returning the pin
// to relying on its other tabs (or Float if none remain).
func (p *Pin) Float(tabID ident.ID) {
	if !p.owns(tabID) {
		panic("circuit: pin " + string(p.ID) + " does not own tab " + string(tabID))
	}
	delete(p.drives, tabID)
}

// FloatAll clears every drive this pin's owner previously asserted.
func (p *Pin) FloatAll() {
	p.drives = make(map[ident.ID]signal.Signal)
}

// State is the OR of every tab drive currently asserted on this pin.
func (p *Pin) State() signal.Signal {
	out := signal.Float
	for _, v := range p.drives {
		out = signal.Or(out, v)
	}
	return out
}

func (p *Pin) owns(tabID ident.ID) bool {
	for _, t := range p.TabIDs {
		if t == tabID {
			return true
		}
	}
	return false
}

// SortedTabIDs returns TabIDs in a deterministic order, used wherever
// iteration order must be reproducible (spec §4.8 determinism).
func (p *Pin) SortedTabIDs() []ident.ID {
	out := append([]ident.ID(nil), p.TabIDs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
