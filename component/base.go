// Package component implements the canonical component catalog of spec
// §4.7: VCC, Switch, Clock, Indicator, Diode, DPDTRelay, Link, Bus, and
// Memory, plus the Inverter/Lamp convenience variants SPEC_FULL adds.
// Each variant embeds base for the ID/Type/Pins/LinkName boilerplate,
// the way core.Core and api.driverImpl embed *sim.TickingComponent in
// the teacher repo for their shared lifecycle surface.
package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
)

// base implements the identity/pin/link surface of circuit.Component.
// Variants embed it and supply SimStart/SimulateLogic/SimStop
// themselves.
type base struct {
	id       ident.ID
	kind     string
	pins     []*circuit.Pin
	linkName string
}

func newBase(id ident.ID, kind string, pins []*circuit.Pin, linkName string) base {
	return base{id: id, kind: kind, pins: pins, linkName: linkName}
}

func (b *base) ID() ident.ID          { return b.id }
func (b *base) Type() string          { return b.kind }
func (b *base) Pins() []*circuit.Pin  { return b.pins }
func (b *base) LinkName() string      { return b.linkName }

// pin returns the pin at index i, panicking if the catalog entry was
// built with the wrong pin count — a malformed-factory programmer error,
// never reachable from a loaded document (persist validates pin counts
// per component type before construction).
func (b *base) pin(i int) *circuit.Pin {
	return b.pins[i]
}
