package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// TypeDiode is the component_type discriminator for the diode.
const TypeDiode = "diode"

// Diode couples Anode to Cathode through a bridge exactly when the
// Anode's VNET reads HIGH (spec §4.7.5). It never drives a pin itself;
// one-way conduction falls out of HIGH propagating through the bridge
// without the diode ever back-driving the anode side.
type Diode struct {
	base

	bridgeID   ident.ID
	haveBridge bool
}

// NewDiode builds a Diode with pins Anode (index 0) and Cathode (index 1).
func NewDiode(id, anodePinID, anodeTabID, cathodePinID, cathodeTabID ident.ID) *Diode {
	anode := circuit.NewPin(anodePinID, id, anodeTabID)
	cathode := circuit.NewPin(cathodePinID, id, cathodeTabID)
	return &Diode{base: newBase(id, TypeDiode, []*circuit.Pin{anode, cathode}, "")}
}

func (d *Diode) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	d.haveBridge = false
	d.bridgeID = ident.Empty
}

func (d *Diode) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	anodeState, ok := v.StateForTab(d.pin(0).TabIDs[0])
	if !ok {
		return
	}
	vA, okA := v.VnetForTab(d.pin(0).TabIDs[0])
	vC, okC := v.VnetForTab(d.pin(1).TabIDs[0])
	if !okA || !okC {
		return
	}

	if anodeState == signal.High {
		if !d.haveBridge {
			d.bridgeID = b.AddBridge(vA, vC)
			d.haveBridge = true
		}
		return
	}

	if d.haveBridge {
		b.RemoveBridge(d.bridgeID)
		d.haveBridge = false
		d.bridgeID = ident.Empty
	}
}

func (d *Diode) SimStop() {
	d.haveBridge = false
	d.bridgeID = ident.Empty
}
