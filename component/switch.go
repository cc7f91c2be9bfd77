package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
)

// TypeSwitch is the component_type discriminator for the switch.
const TypeSwitch = "switch"

// SwitchMode selects toggle-latching vs momentary pushbutton behavior.
type SwitchMode int

const (
	ModeToggle SwitchMode = iota
	ModePushbutton
)

// Switch couples its two pins with a bridge while on (spec §4.7.2). It
// never drives a pin itself.
type Switch struct {
	base

	Mode       SwitchMode
	Color      string
	DefaultOn  bool
	on         bool
	bridgeID   ident.ID
	haveBridge bool
}

// NewSwitch builds a Switch with pins A (index 0) and B (index 1).
func NewSwitch(id, pinAID, tabAID, pinBID, tabBID ident.ID, mode SwitchMode, color string, defaultOn bool) *Switch {
	a := circuit.NewPin(pinAID, id, tabAID)
	b := circuit.NewPin(pinBID, id, tabBID)
	return &Switch{
		base:      newBase(id, TypeSwitch, []*circuit.Pin{a, b}, ""),
		Mode:      mode,
		Color:     color,
		DefaultOn: defaultOn,
	}
}

func (s *Switch) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	s.on = s.DefaultOn
	s.haveBridge = false
	s.bridgeID = ident.Empty
	s.applyBridge(v, b)
}

func (s *Switch) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	s.applyBridge(v, b)
}

func (s *Switch) applyBridge(v circuit.VnetView, b circuit.BridgeView) {
	vA, okA := v.VnetForTab(s.pin(0).TabIDs[0])
	vB, okB := v.VnetForTab(s.pin(1).TabIDs[0])
	if !okA || !okB {
		return
	}

	if s.on {
		if !s.haveBridge {
			s.bridgeID = b.AddBridge(vA, vB)
			s.haveBridge = true
		}
		return
	}

	if s.haveBridge {
		b.RemoveBridge(s.bridgeID)
		s.haveBridge = false
		s.bridgeID = ident.Empty
	}
}

func (s *Switch) SimStop() {
	s.on = false
	s.haveBridge = false
	s.bridgeID = ident.Empty
}

// Interact implements circuit.Interactor. toggle flips on (toggle mode);
// press/release set on in pushbutton mode. Unknown actions or a mode
// mismatch (e.g. "press" on a toggle switch) are rejected, returning
// false per spec §7 INTERACTION_REJECTED.
func (s *Switch) Interact(a circuit.Action) bool {
	switch a.Kind {
	case "toggle":
		if s.Mode != ModeToggle {
			return false
		}
		s.on = !s.on
		return true
	case "press":
		if s.Mode != ModePushbutton {
			return false
		}
		if s.on {
			return false
		}
		s.on = true
		return true
	case "release":
		if s.Mode != ModePushbutton {
			return false
		}
		if !s.on {
			return false
		}
		s.on = false
		return true
	default:
		return false
	}
}

// MarkDirtyOnInteract flags both of the switch's VNETs dirty after a
// successful Interact call, per spec §4.7.2's "interactions must mark
// affected VNETs dirty." Called by the interact package after Interact
// returns true.
func (s *Switch) MarkDirtyOnInteract(v circuit.VnetView) {
	v.MarkTabDirty(s.pin(0).TabIDs[0])
	v.MarkTabDirty(s.pin(1).TabIDs[0])
}

// On reports the switch's current logical state, for tests and the CLI.
func (s *Switch) On() bool { return s.on }
