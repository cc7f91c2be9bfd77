package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// TypeDPDTRelay is the component_type discriminator for the DPDT relay.
const TypeDPDTRelay = "dpdt_relay"

// DefaultSwitchingDelaySeconds is the relay's armature travel time. The
// source material doesn't pin down a single canonical value (spec §9
// open question); this default sits in the "low tens of milliseconds"
// range it suggests, and is always overridable per-instance via
// SwitchingDelaySeconds.
const DefaultSwitchingDelaySeconds = 0.015

// RelayState is one of the four DPDT armature states (spec §4.7.6).
type RelayState int

const (
	Released RelayState = iota
	Energizing
	Energized
	DeEnergizing
)

func (s RelayState) String() string {
	switch s {
	case Released:
		return "RELEASED"
	case Energizing:
		return "ENERGIZING"
	case Energized:
		return "ENERGIZED"
	case DeEnergizing:
		return "DE-ENERGIZING"
	default:
		return "UNKNOWN"
	}
}

// pole pin indices within DPDTRelay.pins: Coil, then for each pole
// Common/NC/NO.
const (
	pinCoil = 0
	pinP1C  = 1
	pinP1NC = 2
	pinP1NO = 3
	pinP2C  = 4
	pinP2NC = 5
	pinP2NO = 6
)

// DPDTRelay is a double-pole double-throw electromechanical relay: a
// coil control pin and two poles, each with common/NC/NO terminals
// (spec §4.7.6). Energizing the coil switches both poles from common↔NC
// to common↔NO after a switching delay; de-energizing reverses it.
type DPDTRelay struct {
	base

	Rotation             float64
	FlipHorizontal       bool
	FlipVertical         bool
	SwitchingDelaySeconds float64

	state RelayState

	p1ncBridge, p1noBridge ident.ID
	p2ncBridge, p2noBridge ident.ID
	haveP1NC, haveP1NO     bool
	haveP2NC, haveP2NO     bool

	scheduler  circuit.Scheduler
	vnets      circuit.VnetView
	bridges    circuit.BridgeView
	pendingGen int // invalidates a stale pending-delay callback on abort
}

// NewDPDTRelay builds a DPDTRelay from its seven pins in the fixed order
// Coil, Pole1 Common, Pole1 NC, Pole1 NO, Pole2 Common, Pole2 NC, Pole2 NO.
func NewDPDTRelay(id ident.ID, pinIDs, tabIDs [7]ident.ID) *DPDTRelay {
	pins := make([]*circuit.Pin, 7)
	for i := range pins {
		pins[i] = circuit.NewPin(pinIDs[i], id, tabIDs[i])
	}
	return &DPDTRelay{
		base:                  newBase(id, TypeDPDTRelay, pins, ""),
		SwitchingDelaySeconds: DefaultSwitchingDelaySeconds,
	}
}

func (r *DPDTRelay) SetScheduler(s circuit.Scheduler) { r.scheduler = s }

func (r *DPDTRelay) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	r.vnets = v
	r.bridges = b
	r.state = Released
	r.haveP1NC, r.haveP1NO, r.haveP2NC, r.haveP2NO = false, false, false, false
	r.pendingGen++
	r.connectReleasedContacts(b)
}

func (r *DPDTRelay) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	coilState, ok := v.StateForTab(r.pin(pinCoil).TabIDs[0])
	if !ok {
		return
	}

	switch r.state {
	case Released:
		if coilState == signal.High {
			r.state = Energizing
			r.armDelay(r.pendingGen, r.completeEnergize)
		}
	case Energized:
		if coilState == signal.Float {
			r.state = DeEnergizing
			r.armDelay(r.pendingGen, r.completeDeEnergize)
		}
	case Energizing:
		if coilState == signal.Float {
			// Coil reversed mid-travel: abort, return to RELEASED.
			r.pendingGen++
			r.state = Released
		}
	case DeEnergizing:
		if coilState == signal.High {
			r.pendingGen++
			r.state = Energized
		}
	}
}

func (r *DPDTRelay) armDelay(gen int, fn func()) {
	if r.scheduler == nil {
		// No scheduler wired (e.g. a unit test driving the component
		// directly): apply the transition immediately so logic under
		// test still converges.
		fn()
		return
	}
	r.scheduler.ScheduleAfter(r.SwitchingDelaySeconds, func() {
		if gen != r.pendingGen {
			return // a reversal aborted this transition already
		}
		fn()
	})
}

func (r *DPDTRelay) completeEnergize() {
	r.state = Energized
	r.disconnect(&r.haveP1NC, r.p1ncBridge)
	r.disconnect(&r.haveP2NC, r.p2ncBridge)
	r.connect(pinP1C, pinP1NO, &r.haveP1NO, &r.p1noBridge)
	r.connect(pinP2C, pinP2NO, &r.haveP2NO, &r.p2noBridge)
	r.markBothPolesDirty()
	r.wake()
}

func (r *DPDTRelay) completeDeEnergize() {
	r.state = Released
	r.disconnect(&r.haveP1NO, r.p1noBridge)
	r.disconnect(&r.haveP2NO, r.p2noBridge)
	r.connect(pinP1C, pinP1NC, &r.haveP1NC, &r.p1ncBridge)
	r.connect(pinP2C, pinP2NC, &r.haveP2NC, &r.p2ncBridge)
	r.markBothPolesDirty()
	r.wake()
}

func (r *DPDTRelay) connectReleasedContacts(b circuit.BridgeView) {
	r.connect(pinP1C, pinP1NC, &r.haveP1NC, &r.p1ncBridge)
	r.connect(pinP2C, pinP2NC, &r.haveP2NC, &r.p2ncBridge)
}

func (r *DPDTRelay) connect(commonIdx, otherIdx int, have *bool, bridgeID *ident.ID) {
	if *have || r.vnets == nil || r.bridges == nil {
		return
	}
	vc, okc := r.vnets.VnetForTab(r.pin(commonIdx).TabIDs[0])
	vo, oko := r.vnets.VnetForTab(r.pin(otherIdx).TabIDs[0])
	if !okc || !oko {
		return
	}
	*bridgeID = r.bridges.AddBridge(vc, vo)
	*have = true
}

func (r *DPDTRelay) disconnect(have *bool, bridgeID ident.ID) {
	if !*have || r.bridges == nil {
		return
	}
	r.bridges.RemoveBridge(bridgeID)
	*have = false
}

func (r *DPDTRelay) markBothPolesDirty() {
	if r.vnets == nil {
		return
	}
	for _, idx := range []int{pinP1C, pinP1NC, pinP1NO, pinP2C, pinP2NC, pinP2NO} {
		r.vnets.MarkTabDirty(r.pin(idx).TabIDs[0])
	}
}

func (r *DPDTRelay) wake() {
	if r.scheduler != nil {
		r.scheduler.RequestRestart()
	}
}

func (r *DPDTRelay) SimStop() {
	r.pendingGen++
	r.disconnect(&r.haveP1NO, r.p1noBridge)
	r.disconnect(&r.haveP2NO, r.p2noBridge)
	r.connectReleasedContacts(r.bridges)
	r.state = Released
}

// State reports the relay's current armature state, for tests and
// diagnostics.
func (r *DPDTRelay) State() RelayState { return r.state }
