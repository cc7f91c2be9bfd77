package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// TypeInverter is the component_type discriminator for the inverter.
const TypeInverter = "inverter"

// Inverter is a SPEC_FULL supplement (§8.1): an Input/Output pin pair
// that drives Output HIGH exactly when Input's VNET reads Float, and
// Float when Input reads HIGH. It is grounded on DPDTRelay's own
// NC-contact behavior (a relay wired so NO ties to ground and NC ties
// to a local VCC is, electrically, the same inversion) but expressed
// directly rather than forcing every schematic to wire a bare relay
// plus a dedicated VCC for the common case of a single NOT gate.
type Inverter struct {
	base
}

// NewInverter builds an Inverter with pins Input (index 0), Output
// (index 1).
func NewInverter(id, inPinID, inTabID, outPinID, outTabID ident.ID) *Inverter {
	in := circuit.NewPin(inPinID, id, inTabID)
	out := circuit.NewPin(outPinID, id, outTabID)
	return &Inverter{base: newBase(id, TypeInverter, []*circuit.Pin{in, out}, "")}
}

func (n *Inverter) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	n.pin(1).Drive(n.pin(1).TabIDs[0], signal.High)
}

func (n *Inverter) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	in, ok := v.StateForTab(n.pin(0).TabIDs[0])
	if !ok {
		return
	}
	if in == signal.High {
		n.pin(1).Drive(n.pin(1).TabIDs[0], signal.Float)
	} else {
		n.pin(1).Drive(n.pin(1).TabIDs[0], signal.High)
	}
}

func (n *Inverter) SimStop() {
	n.pin(1).FloatAll()
}
