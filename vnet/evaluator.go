package vnet

import (
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// Evaluator computes the settled state of every currently-dirty VNET,
// merging VNETs that a bridge or a shared link name has joined into one
// electrical group for this iteration (spec §4.5, §4.8 step b-c).
type Evaluator struct {
	manager *Manager
}

// NewEvaluator returns an Evaluator bound to manager.
func NewEvaluator(manager *Manager) *Evaluator {
	return &Evaluator{manager: manager}
}

// Evaluate reads the currently dirty VNET set, then re-solves the
// *complete* bridge/link adjacency graph across every VNET in the
// document — not merely the dirty ones — exactly as spec §4.5 step 2 /
// §4.8 step b requires ("the solver re-solves globally to guarantee
// determinism independent of dirty propagation order"). A VNET whose
// only link sibling changed, without itself ever being independently
// marked dirty, still needs its group state recomputed and its owning
// components re-queued; seeding the union-find from the dirty set alone
// would silently strand it at a stale state. It computes each group's
// state as the OR of every member tab's live pin drive, writes changed
// states back into the affected VNETs, clears the dirty flag on every
// VNET that was actually dirty going in, and returns the ids of every
// VNET whose State actually changed (the set Engine re-queues components
// against per spec §4.6).
func (e *Evaluator) Evaluate() []ident.ID {
	dirty := e.manager.Dirty().GetDirty()
	if len(dirty) == 0 {
		return nil
	}
	dirtySet := make(map[ident.ID]struct{}, len(dirty))
	for _, id := range dirty {
		dirtySet[id] = struct{}{}
	}

	vnets := e.manager.Vnets()
	all := make([]ident.ID, 0, len(vnets))
	for id := range vnets {
		all = append(all, id)
	}
	all = sortedIDs(all)
	uf := newUnionFind(all)

	for _, b := range e.manager.Bridges().AllBridges() {
		uf.union(b.A, b.B)
	}

	linkGroups := make(map[string][]ident.ID)
	for _, id := range all {
		v, ok := e.manager.Vnets()[id]
		if !ok {
			continue
		}
		for _, name := range v.SortedLinkNames() {
			linkGroups[name] = append(linkGroups[name], id)
		}
	}
	for _, ids := range linkGroups {
		for i := 1; i < len(ids); i++ {
			uf.union(ids[0], ids[i])
		}
	}

	var changed []ident.ID
	for _, members := range uf.groups() {
		touchesDirty := false
		for _, id := range members {
			if _, ok := dirtySet[id]; ok {
				touchesDirty = true
				break
			}
		}
		if !touchesDirty {
			continue
		}

		state := e.groupState(members)
		for _, id := range members {
			v, ok := e.manager.Vnets()[id]
			if !ok {
				continue
			}
			if signal.Changed(v.State, state) {
				changed = append(changed, id)
			}
			v.State = state
			if _, ok := dirtySet[id]; ok {
				e.manager.Dirty().ClearDirty(id)
			}
		}
	}

	return sortedIDs(changed)
}

// groupState ORs the live drive of every tab belonging to every VNET in
// members.
func (e *Evaluator) groupState(members []ident.ID) signal.Signal {
	out := signal.Float
	for _, vid := range members {
		v, ok := e.manager.Vnets()[vid]
		if !ok {
			continue
		}
		for _, tabID := range v.SortedTabIDs() {
			pin := e.manager.PinForTab(tabID)
			if pin == nil {
				continue
			}
			out = signal.Or(out, pin.State())
		}
	}
	return out
}
