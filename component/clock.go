package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// TypeClock is the component_type discriminator for the clock.
const TypeClock = "clock"

// Frequency enumerates the clock's selectable periods (spec §4.7.3).
// Three of the six settings are conventionally-named frequencies (4Hz,
// 2Hz, 1Hz); the remaining three are named by period instead because
// they run slower than a hertz.
type Frequency int

const (
	Freq4Hz Frequency = iota
	Freq2Hz
	Freq1Hz
	Period2s
	Period4s
	Period8s
)

// PeriodSeconds returns the half-period (time between phase toggles) for
// f. The exact constants are not specified by the source beyond their
// labels, so they are derived directly from the label itself.
func (f Frequency) PeriodSeconds() float64 {
	switch f {
	case Freq4Hz:
		return 0.125
	case Freq2Hz:
		return 0.25
	case Freq1Hz:
		return 0.5
	case Period2s:
		return 1
	case Period4s:
		return 2
	case Period8s:
		return 4
	default:
		return 0.5
	}
}

// Clock toggles its phase on a fixed period and drives its output pin
// HIGH while phase is true (spec §4.7.3).
type Clock struct {
	base

	Frequency        Frequency
	EnableOnSimStart bool
	enabled          bool
	phase            bool
	nextTick         float64
	scheduler        circuit.Scheduler
	vnets            circuit.VnetView
}

// NewClock builds a Clock with a single output pin backed by tabID.
func NewClock(id, pinID, tabID ident.ID, freq Frequency, enableOnStart bool) *Clock {
	pin := circuit.NewPin(pinID, id, tabID)
	return &Clock{
		base:             newBase(id, TypeClock, []*circuit.Pin{pin}, ""),
		Frequency:        freq,
		EnableOnSimStart: enableOnStart,
	}
}

func (c *Clock) SetScheduler(s circuit.Scheduler) { c.scheduler = s }

func (c *Clock) SimStart(v circuit.VnetView, b circuit.BridgeView) {
	c.enabled = c.EnableOnSimStart
	c.phase = false
	c.vnets = v
	c.pin(0).Drive(c.pin(0).TabIDs[0], signal.Float)
	if c.enabled && c.scheduler != nil {
		c.armNextTick()
	}
}

func (c *Clock) SimulateLogic(v circuit.VnetView, b circuit.BridgeView) {
	// The phase flip itself happens inside the scheduled callback
	// (tick); SimulateLogic only re-asserts the pin so that a
	// component woken for an unrelated reason still sees a consistent
	// drive.
	if c.phase {
		c.pin(0).Drive(c.pin(0).TabIDs[0], signal.High)
	} else {
		c.pin(0).Drive(c.pin(0).TabIDs[0], signal.Float)
	}
}

func (c *Clock) armNextTick() {
	period := c.Frequency.PeriodSeconds()
	c.nextTick = c.scheduler.Now() + period
	c.scheduler.ScheduleAfter(period, c.tick)
}

func (c *Clock) tick() {
	if !c.enabled {
		return
	}
	c.phase = !c.phase
	if c.phase {
		c.pin(0).Drive(c.pin(0).TabIDs[0], signal.High)
	} else {
		c.pin(0).Drive(c.pin(0).TabIDs[0], signal.Float)
	}
	if c.vnets != nil {
		c.vnets.MarkTabDirty(c.pin(0).TabIDs[0])
	}
	c.armNextTick()
	if c.scheduler != nil {
		c.scheduler.RequestRestart()
	}
}

func (c *Clock) SimStop() {
	c.enabled = false
	c.pin(0).FloatAll()
}

// Interact implements circuit.Interactor: toggle flips enabled.
func (c *Clock) Interact(a circuit.Action) bool {
	if a.Kind != "toggle" {
		return false
	}
	c.enabled = !c.enabled
	if c.enabled && c.scheduler != nil {
		c.armNextTick()
	}
	return true
}

// OutputTabID exposes the clock's single tab, for tests and diagnostics.
func (c *Clock) OutputTabID() ident.ID { return c.pin(0).TabIDs[0] }

// Phase reports the clock's current phase, for tests.
func (c *Clock) Phase() bool { return c.phase }
