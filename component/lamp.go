package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// TypeLamp is the component_type discriminator for the lamp.
const TypeLamp = "lamp"

// Lamp is a SPEC_FULL supplement (§8.1): behaviorally identical to
// Indicator, with an added Color presentation property for the
// (out-of-scope) renderer. Kept as a distinct type rather than an
// Indicator alias so the catalog's component_type discriminator round
// trips through persistence unambiguously.
type Lamp struct {
	base

	Color  string
	active bool
}

// NewLamp builds a Lamp with a single pin backed by tabID.
func NewLamp(id, pinID, tabID ident.ID, color string) *Lamp {
	pin := circuit.NewPin(pinID, id, tabID)
	return &Lamp{base: newBase(id, TypeLamp, []*circuit.Pin{pin}, ""), Color: color}
}

func (l *Lamp) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	l.active = false
}

func (l *Lamp) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	state, ok := v.StateForTab(l.pin(0).TabIDs[0])
	if !ok {
		l.active = false
		return
	}
	l.active = state == signal.High
}

func (l *Lamp) SimStop() {
	l.active = false
}

// Active reports whether the lamp currently shows lit.
func (l *Lamp) Active() bool { return l.active }
