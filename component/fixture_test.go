package component

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/vnet"
)

// fakeScheduler is a controllable circuit.Scheduler double: ScheduleAfter
// queues its callback instead of running it, so a test can advance time
// deterministically by invoking Fire(); RequestRestart just counts calls,
// mirroring how Engine.RequestRestart is observed from the outside.
type fakeScheduler struct {
	now      float64
	pending  []func()
	restarts int
}

func (f *fakeScheduler) Now() float64 { return f.now }

func (f *fakeScheduler) ScheduleAfter(delaySeconds float64, fn func()) {
	f.pending = append(f.pending, fn)
}

func (f *fakeScheduler) RequestRestart() { f.restarts++ }

// Fire runs every callback queued by ScheduleAfter since the last Fire,
// simulating their delay having elapsed.
func (f *fakeScheduler) Fire() {
	due := f.pending
	f.pending = nil
	for _, fn := range due {
		fn()
	}
}

// onePageManager wires up a single-page document containing comp, builds its
// VNET partition, and returns the ready-to-use vnet.Manager.
func onePageManager(reg *ident.Registry, comps ...circuit.Component) *vnet.Manager {
	doc := circuit.NewDocument("1.0.0")
	doc.Registry = reg
	page := circuit.NewPage(reg.New(), "Page 1")
	for _, c := range comps {
		page.AddComponent(c)
	}
	doc.AddPage(page)
	manager, _, _ := vnet.BuildManager(doc)
	return manager
}

// settleVnets marks every VNET dirty and runs one evaluator pass, so the
// pin drives a test has just made show up in StateForTab, which reads
// the stored VNET state the evaluator publishes.
func settleVnets(manager *vnet.Manager) {
	manager.MarkAllDirty()
	vnet.NewEvaluator(manager).Evaluate()
}

func newPin(reg *ident.Registry, compID ident.ID) (*circuit.Pin, ident.ID) {
	pinID, tabID := reg.New(), reg.New()
	return circuit.NewPin(pinID, compID, tabID), tabID
}
