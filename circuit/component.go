package circuit

import (
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// VnetView is the read/dirty-mark surface a Component's logic uses to
// inspect the network it's wired into. It is implemented by
// vnet.Manager; it lives here (rather than importing the vnet package)
// so that circuit, component, and vnet can be layered without a cycle:
// circuit only needs to name the shape of the collaborator, not its
// implementation.
type VnetView interface {
	// StateForTab returns the current state of the VNET owning tabID,
	// and whether that tab resolved to a VNET at all (it always should,
	// post-build, but defensive callers such as Indicator check ok).
	StateForTab(tabID ident.ID) (state signal.Signal, ok bool)
	// VnetForTab returns the VNET identifier owning tabID.
	VnetForTab(tabID ident.ID) (vnetID ident.ID, ok bool)
	// MarkTabDirty flags the VNET owning tabID for re-evaluation.
	MarkTabDirty(tabID ident.ID)
	// MarkVnetDirty flags a VNET directly by its own identifier, used
	// when a component already holds a vnet id (e.g. from a prior
	// VnetForTab call) rather than a tab id.
	MarkVnetDirty(vnetID ident.ID)
}

// BridgeView is the bridge-registry surface exposed to Component logic,
// implemented by vnet.BridgeManager.
type BridgeView interface {
	AddBridge(a, b ident.ID) ident.ID
	RemoveBridge(id ident.ID)
	BridgesFor(vnetID ident.ID) []ident.ID
}

// Action is an external interaction requested against a Component, per
// spec §6.4. Components that accept interactions implement Interactor.
type Action struct {
	Kind  string // "toggle", "press", "release", "thumbwheel", "memory_write"
	Delta int    // thumbwheel increment direction
	Addr  uint32 // memory_write address
	Value uint32 // memory_write value
}

// Interactor is implemented by components that respond to external
// interaction calls (Switch, Clock, Memory, ...).
type Interactor interface {
	Interact(a Action) bool
}

// LinkMapper is implemented by components (Bus, Memory) that advertise
// more than one symbolic link name, one per pin, instead of a single
// component-wide LinkName.
type LinkMapper interface {
	LinkMappings() map[string][]ident.ID
}

// Component is the tagged-sum abstraction of spec §3.10 / §9: a typed
// node exposing pins and a deterministic logic operator plus lifecycle
// hooks. Concrete variants (VCC, Switch, Clock, Indicator, Diode,
// DPDTRelay, Link, Bus, Memory, ...) live in package component.
type Component interface {
	ID() ident.ID
	Type() string
	Pins() []*Pin
	LinkName() string

	// SimStart resets any internal dynamic state (relay armature,
	// clock phase, memory contents) to the component's configured
	// defaults at the start of a simulation run.
	SimStart(v VnetView, b BridgeView)

	// SimulateLogic is called once per iteration for every component
	// that owns a tab on a VNET that was dirty going into the iteration
	// or whose state changed in it. It may drive
	// pins, add/remove bridges, and mark VNETs dirty; it may not touch
	// any other component's pins or any page topology.
	SimulateLogic(v VnetView, b BridgeView)

	// SimStop cancels any pending timers and releases runtime-only
	// state (e.g. relay bridges) the component created during the run.
	SimStop()
}
