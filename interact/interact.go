// Package interact implements the external interaction API of spec
// §6.4: toggle, press, release, thumbwheel, and memory_write calls
// against a running Engine, each routed through a CommandQueue so a
// call from any caller goroutine (e.g. a future monitor web handler)
// is applied at a safe point in the iteration loop instead of racing
// SimulateLogic — the same "serialize with the engine" discipline
// spec §5 requires of timer callbacks.
package interact

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/engine"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/logging"
	"github.com/sarchlab/relaysim/relerr"
)

var titleCaser = cases.Title(language.English)

type result struct {
	changed bool
	err     error
}

type command struct {
	run  func() (bool, error)
	done chan result
}

// CommandQueue is bound to one Engine and exposes the five interaction
// calls of spec §6.4. Register it with engine.Engine.SetCommandQueue so
// Engine.Tick drains it each iteration.
type CommandQueue struct {
	engine *engine.Engine

	mu   sync.Mutex
	cmds []command
}

// NewCommandQueue binds a CommandQueue to e.
func NewCommandQueue(e *engine.Engine) *CommandQueue {
	return &CommandQueue{engine: e}
}

// Drain implements the drainable interface engine.Engine expects; it
// runs every queued command in FIFO order.
func (q *CommandQueue) Drain() {
	q.mu.Lock()
	cmds := q.cmds
	q.cmds = nil
	q.mu.Unlock()

	for _, cmd := range cmds {
		changed, err := cmd.run()
		cmd.done <- result{changed: changed, err: err}
	}
}

func (q *CommandQueue) submit(run func() (bool, error)) (bool, error) {
	cmd := command{run: run, done: make(chan result, 1)}
	q.mu.Lock()
	q.cmds = append(q.cmds, cmd)
	q.mu.Unlock()
	r := <-cmd.done
	return r.changed, r.err
}

// Toggle implements spec §6.4's toggle(component_id).
func (q *CommandQueue) Toggle(componentID ident.ID) (bool, error) {
	return q.submit(func() (bool, error) {
		return q.apply(componentID, circuit.Action{Kind: "toggle"})
	})
}

// Press implements spec §6.4's press(component_id).
func (q *CommandQueue) Press(componentID ident.ID) (bool, error) {
	return q.submit(func() (bool, error) {
		return q.apply(componentID, circuit.Action{Kind: "press"})
	})
}

// Release implements spec §6.4's release(component_id).
func (q *CommandQueue) Release(componentID ident.ID) (bool, error) {
	return q.submit(func() (bool, error) {
		return q.apply(componentID, circuit.Action{Kind: "release"})
	})
}

// ThumbwheelInteract implements spec §6.4's
// thumbwheel_interact(component_id, action), stepping the target
// Thumbwheel's value by delta.
func (q *CommandQueue) ThumbwheelInteract(componentID ident.ID, delta int) (bool, error) {
	return q.submit(func() (bool, error) {
		return q.apply(componentID, circuit.Action{Kind: "thumbwheel", Delta: delta})
	})
}

// MemoryWrite implements spec §6.4's memory_write(component_id, address,
// value).
func (q *CommandQueue) MemoryWrite(componentID ident.ID, addr, value uint32) (bool, error) {
	return q.submit(func() (bool, error) {
		return q.apply(componentID, circuit.Action{Kind: "memory_write", Addr: addr, Value: value})
	})
}

// dirtyMarker is implemented by components (Switch) that need to
// control exactly which of their own tabs get marked dirty after a
// successful Interact; others fall back to apply's generic "mark every
// owned tab" pass.
type dirtyMarker interface {
	MarkDirtyOnInteract(v circuit.VnetView)
}

// apply runs on the Drain caller's goroutine — the engine's own
// iteration loop — so it may freely touch component state and the
// VnetView/BridgeView.
func (q *CommandQueue) apply(componentID ident.ID, a circuit.Action) (bool, error) {
	comp, ok := q.engine.Coordinator().ComponentByID(componentID)
	if !ok {
		return false, relerr.NewInteractionRejected(string(componentID), a.Kind)
	}
	target, ok := comp.(circuit.Interactor)
	if !ok {
		return false, relerr.NewInteractionRejected(string(componentID), a.Kind)
	}
	if !target.Interact(a) {
		return false, relerr.NewInteractionRejected(string(componentID), a.Kind)
	}

	manager := q.engine.Manager()
	if dm, ok := comp.(dirtyMarker); ok {
		dm.MarkDirtyOnInteract(manager)
	} else {
		for _, pin := range comp.Pins() {
			for _, tabID := range pin.TabIDs {
				manager.MarkTabDirty(tabID)
			}
		}
	}
	q.engine.RequestRestart()

	logging.Bridge("interaction applied", "component", string(componentID), "kind", titleCaser.String(a.Kind))
	return true, nil
}
