package vnet

import (
	"sync"

	"github.com/sarchlab/relaysim/ident"
)

// DirtyManager tracks which VNETs must be re-evaluated (spec §4.4). It
// is a coarse-grained mutex-guarded set, matching §5's "avoid per-VNET
// locks" locking discipline: relay timer callbacks and interaction calls
// both go through this single lock rather than a per-VNET one.
type DirtyManager struct {
	mu    sync.Mutex
	dirty map[ident.ID]struct{}
}

// NewDirtyManager returns an empty dirty set.
func NewDirtyManager() *DirtyManager {
	return &DirtyManager{dirty: make(map[ident.ID]struct{})}
}

// MarkDirty flags id dirty. Repeat marks are idempotent.
func (d *DirtyManager) MarkDirty(id ident.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty[id] = struct{}{}
}

// MarkAllDirty flags every id in ids dirty in one call, used by
// Engine.Initialize (spec §4.8 step 1: "mark every VNET dirty").
func (d *DirtyManager) MarkAllDirty(ids []ident.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range ids {
		d.dirty[id] = struct{}{}
	}
}

// ClearDirty un-flags id.
func (d *DirtyManager) ClearDirty(id ident.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.dirty, id)
}

// GetDirty returns the currently dirty VNET ids, sorted for determinism.
func (d *DirtyManager) GetDirty() []ident.ID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return sortedIDs(keys(d.dirty))
}

// Empty reports whether no VNET is currently dirty.
func (d *DirtyManager) Empty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.dirty) == 0
}
