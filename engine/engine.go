package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/logging"
	"github.com/sarchlab/relaysim/relerr"
	"github.com/sarchlab/relaysim/vnet"
)

// pendingTimer is a scheduled relay/clock callback, akita-driven rather
// than backed by an OS timer (spec §3.7 switching delay, §3.6 clock
// period).
type pendingTimer struct {
	fireAt float64
	fn     func()
}

// Engine runs one Document to settling, oscillation, or timeout (spec
// §4.8). It embeds *sim.TickingComponent the same way
// core.Builder.Build wires a Core, so the akita event engine drives its
// Tick calls; it also implements circuit.Scheduler itself, so relay and
// clock components schedule their delayed callbacks through it instead
// of a raw OS timer.
type Engine struct {
	*sim.TickingComponent

	doc         *circuit.Document
	manager     *vnet.Manager
	coordinator *Coordinator
	evaluator   *vnet.Evaluator

	maxIterations  int
	timeoutSeconds float64

	restartCallback func()
	monitor         monitorRegistrar
	commandQueue    drainable

	state SimulationState
	stats Statistics
	err   error

	timers []pendingTimer
	now    float64
}

// monitorRegistrar is the subset of *monitoring.Monitor Engine needs;
// named as an interface so engine doesn't import monitoring directly —
// package monitor supplies the concrete registration.
type monitorRegistrar interface {
	RegisterComponent(c sim.Component)
}

// drainable is the subset of package interact's CommandQueue Engine
// needs: named as an interface, rather than importing interact
// directly, so the dependency runs interact -> engine, not both ways.
type drainable interface {
	Drain()
}

// SetCommandQueue registers a queue of pending external interaction
// commands (spec §6.4) to be applied at the start of every Tick, before
// the settle loop runs, serializing calls from any caller goroutine with
// the engine's own iteration loop (spec §5).
func (e *Engine) SetCommandQueue(q drainable) { e.commandQueue = q }

// New builds an Engine for doc, ready for Initialize then Run. freq is
// the akita tick frequency driving the settle loop; name is the akita
// component name (spec doesn't mandate one, but akita requires it for
// the event trace).
func New(name string, doc *circuit.Document, akitaEngine sim.Engine, freq sim.Freq, maxIterations int, timeoutSeconds float64) *Engine {
	manager, buildDiags, linkDiags := vnet.BuildManager(doc)
	for _, d := range buildDiags {
		logging.Bridge("topology warning", "message", d.Message)
	}
	if len(linkDiags.Unresolved) > 0 {
		logging.Bridge("unresolved link names", "names", linkDiags.Unresolved)
	}

	e := &Engine{
		doc:            doc,
		manager:        manager,
		coordinator:    NewCoordinator(doc, manager.TabToVnet()),
		evaluator:      vnet.NewEvaluator(manager),
		maxIterations:  maxIterations,
		timeoutSeconds: timeoutSeconds,
		state:          StateIdle,
	}
	e.TickingComponent = sim.NewTickingComponent(name, akitaEngine, freq, e)
	return e
}

// SetRestartCallback registers a function invoked whenever a scheduled
// relay/clock timer requires the engine to re-settle outside its normal
// tick cadence (spec §4.8's "engine must notice asynchronous change").
func (e *Engine) SetRestartCallback(fn func()) { e.restartCallback = fn }

// SetMonitor registers the engine with an akita
// monitoring.Monitor-compatible recipient. Only the Engine itself is
// registered; the circuit's components are not akita components and are
// not registered.
func (e *Engine) SetMonitor(m monitorRegistrar) {
	e.monitor = m
	if m == nil {
		return
	}
	m.RegisterComponent(e)
}

// Initialize resets every component to its configured default (spec
// §4.8 step 1: SimStart, then mark every VNET dirty and settle once
// before the first externally visible state).
func (e *Engine) Initialize() error {
	for _, comp := range e.coordinator.AllComponents() {
		if aware, ok := comp.(circuit.SchedulerAware); ok {
			aware.SetScheduler(e)
		}
		comp.SimStart(e.manager, e.manager.Bridges())
	}
	e.manager.MarkAllDirty()
	e.state = StateRunning
	_, err := e.settle()

	// Arm the first akita tick so the event engine's Run() loop has
	// something to process; later ticks are re-armed by akita itself
	// from Tick's madeProgress return and by RequestRestart for
	// asynchronous timer wakeups.
	e.TickingComponent.TickLater(0)

	return err
}

// Now implements circuit.Scheduler.
func (e *Engine) Now() float64 { return e.now }

// ScheduleAfter implements circuit.Scheduler, used by Clock and
// DPDTRelay to arm their delayed callbacks. It both records the timer
// and arms a real akita tick at fireAt, since under the sole product
// entry point (akitaEngine.Run() at a sub-microsecond tick frequency,
// cmd/relaysim/main.go) the very next default-cadence tick makes no
// progress and akita would otherwise never revisit this component
// until its fire time — the timer would be recorded but stranded.
func (e *Engine) ScheduleAfter(delaySeconds float64, fn func()) {
	fireAt := e.now + delaySeconds
	t := pendingTimer{fireAt: fireAt, fn: fn}
	i := sort.Search(len(e.timers), func(i int) bool { return e.timers[i].fireAt > t.fireAt })
	e.timers = append(e.timers, pendingTimer{})
	copy(e.timers[i+1:], e.timers[i:])
	e.timers[i] = t

	e.TickingComponent.TickLater(sim.VTimeInSec(fireAt))
}

// RequestRestart implements circuit.Scheduler: it asks akita for
// another Tick even if this one reports no progress, covering the case
// where a timer fires with nothing else active (spec §3.7, §3.6).
func (e *Engine) RequestRestart() {
	if e.restartCallback != nil {
		e.restartCallback()
	}
	e.TickingComponent.TickLater(sim.VTimeInSec(e.now))
}

// Tick implements sim.Ticker: fire any due timers, then run the
// dirty-VNET settle loop to convergence (spec §4.8 steps b-f).
func (e *Engine) Tick(now sim.VTimeInSec) (madeProgress bool) {
	e.now = float64(now)

	if e.commandQueue != nil {
		e.commandQueue.Drain()
	}

	firedAny := e.fireDueTimers()

	iterations, err := e.settle()
	if err != nil {
		e.err = err
	}

	e.stats.Steps++
	e.stats.TotalIterations += iterations
	if iterations > e.stats.MaxIterationsInAStep {
		e.stats.MaxIterationsInAStep = iterations
	}
	e.stats.SimulatedSeconds = e.now
	created, removed := e.manager.Bridges().Counts()
	e.stats.BridgesCreated, e.stats.BridgesRemoved = created, removed

	if e.timeoutSeconds > 0 && e.now > e.timeoutSeconds && (e.state == StateRunning || e.state == StateStable) {
		e.err = relerr.NewTimeoutError(e.now)
		e.state = StateTimedOut
	}

	return firedAny || iterations > 0
}

// fireDueTimers pops and runs every timer whose fire time has arrived,
// in ascending fireAt order.
func (e *Engine) fireDueTimers() bool {
	fired := false
	for len(e.timers) > 0 && e.timers[0].fireAt <= e.now {
		fn := e.timers[0].fn
		e.timers = e.timers[1:]
		fn()
		fired = true
	}
	return fired
}

// settle drains the dirty VNET set until empty or the iteration budget
// is exhausted, returning an OscillationError in the latter case (spec
// §4.8 steps b-f, §7 OSCILLATION_ERROR).
//
// A component is re-queued if it owns a tab on a VNET that went into
// this iteration dirty, not only one whose state actually changed: a
// bridge-only component (Switch/Diode/a relay's own contacts) can be
// the very thing an interaction marked dirty without either of its
// adjacent VNETs' states moving yet, since the bridge that would join
// them hasn't been added until that component's SimulateLogic runs.
// Queuing on changed alone strands exactly that component forever —
// nothing else will ever re-dirty its VNETs on its behalf.
func (e *Engine) settle() (int, error) {
	iterations := 0
	for !e.manager.Dirty().Empty() {
		iterations++
		if iterations > e.maxIterations {
			e.state = StateOscillating
			return iterations, relerr.NewOscillationError(iterations)
		}

		dirtyBefore := e.manager.Dirty().GetDirty()
		changed := e.evaluator.Evaluate()
		logging.Oscillation("iteration", "n", iterations, "changed", len(changed))

		toUpdate := make([]ident.ID, 0, len(dirtyBefore)+len(changed))
		toUpdate = append(toUpdate, dirtyBefore...)
		toUpdate = append(toUpdate, changed...)

		for _, comp := range e.coordinator.ComponentsFor(toUpdate) {
			func() {
				// A panic inside one component's logic is logged as a
				// ComponentLogicError and that component is skipped for
				// this iteration; the others still run.
				defer func() {
					if r := recover(); r != nil {
						err := relerr.NewComponentLogicError(string(comp.ID()), fmt.Errorf("%v", r))
						slog.Error("component logic error", "error", err)
					}
				}()
				comp.SimulateLogic(e.manager, e.manager.Bridges())
			}()
		}
	}

	if e.state == StateRunning {
		e.state = StateStable
	}
	return iterations, nil
}

// Stop cancels every component's pending state (spec §4.8's companion
// to SimStart) and marks the engine stopped.
func (e *Engine) Stop() {
	for _, comp := range e.coordinator.AllComponents() {
		comp.SimStop()
	}
	e.timers = nil
	e.state = StateStopped
}

// Shutdown stops the engine (see Stop); it does not detach it from the
// akita event engine. Safe to call from a deferred cleanup in
// cmd/relaysim.
func (e *Engine) Shutdown() {
	e.Stop()
}

// GetState reports the engine's current lifecycle state (spec §7).
func (e *Engine) GetState() SimulationState { return e.state }

// GetStatistics returns a snapshot of the run's accumulated statistics
// (spec §6.6).
func (e *Engine) GetStatistics() Statistics {
	s := e.stats
	s.FinalState = e.state
	return s
}

// Err returns the last error observed (oscillation or timeout), nil on
// a clean stable run.
func (e *Engine) Err() error { return e.err }

// Manager exposes the document-wide VnetView/BridgeView, used by
// package interact to route external Action calls and by package diag
// to render topology diagnostics.
func (e *Engine) Manager() *vnet.Manager { return e.manager }

// Coordinator exposes the component index, used by package interact to
// find the target of an Action by component id.
func (e *Engine) Coordinator() *Coordinator { return e.coordinator }

