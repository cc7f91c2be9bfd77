package component

import (
	"fmt"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
)

// TypeBus is the component_type discriminator for the bus.
const TypeBus = "bus"

// Bus exposes NumberOfPins independent pins, each its own symbolic link
// "{BusName}_{StartPin+i}" (spec §4.7.8). It never drives; its only job
// is to report LinkMappings to the link resolver.
type Bus struct {
	base

	NumberOfPins int
	StartPin     int
	PinSpacing   float64
	BusName      string
}

// NewBus builds a Bus with one pin per tab in tabIDs (len(tabIDs) ==
// numberOfPins); changing NumberOfPins after construction requires a pin
// rebuild outside of simulation, per spec.
func NewBus(id ident.ID, pinIDs, tabIDs []ident.ID, startPin int, spacing float64, busName string) *Bus {
	pins := make([]*circuit.Pin, len(tabIDs))
	for i := range tabIDs {
		pins[i] = circuit.NewPin(pinIDs[i], id, tabIDs[i])
	}
	return &Bus{
		base:         newBase(id, TypeBus, pins, ""),
		NumberOfPins: len(tabIDs),
		StartPin:     startPin,
		PinSpacing:   spacing,
		BusName:      busName,
	}
}

// LinkMappings implements circuit.LinkMapper: pin i maps to link name
// "{BusName}_{StartPin+i}", LSB-first (spec §9's resolved ambiguity,
// shared with Memory's address/data bus naming).
func (bus *Bus) LinkMappings() map[string][]ident.ID {
	out := make(map[string][]ident.ID, len(bus.pins))
	for i, p := range bus.pins {
		name := fmt.Sprintf("%s_%d", bus.BusName, bus.StartPin+i)
		out[name] = append(out[name], p.TabIDs...)
	}
	return out
}

func (bus *Bus) SimStart(v circuit.VnetView, b circuit.BridgeView)       {}
func (bus *Bus) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {}
func (bus *Bus) SimStop()                                               {}
