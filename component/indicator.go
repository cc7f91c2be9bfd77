package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// TypeIndicator is the component_type discriminator for the indicator.
const TypeIndicator = "indicator"

// Indicator is a passive input: it reads its pin's VNET state directly
// rather than its own pin state, and never drives (spec §4.7.4, §9).
type Indicator struct {
	base

	active bool
}

// NewIndicator builds an Indicator with a single pin backed by tabID.
func NewIndicator(id, pinID, tabID ident.ID) *Indicator {
	pin := circuit.NewPin(pinID, id, tabID)
	return &Indicator{base: newBase(id, TypeIndicator, []*circuit.Pin{pin}, "")}
}

func (i *Indicator) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	i.active = false
}

func (i *Indicator) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	state, ok := v.StateForTab(i.pin(0).TabIDs[0])
	if !ok {
		i.active = false
		return
	}
	i.active = state == signal.High
}

func (i *Indicator) SimStop() {
	i.active = false
}

// Active reports whether the indicator currently shows lit, for the
// renderer (out of scope here) and for tests.
func (i *Indicator) Active() bool { return i.active }
