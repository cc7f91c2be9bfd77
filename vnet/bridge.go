package vnet

import (
	"sort"
	"sync"

	"github.com/sarchlab/relaysim/ident"
)

// Bridge is a runtime-only undirected edge between two VNET identifiers,
// created and destroyed by component logic (spec §3.12).
type Bridge struct {
	ID   ident.ID
	A, B ident.ID
}

// BridgeManager maintains the dynamic bridge graph (spec §4.3). It never
// infers bridges; it is purely a registry with dirty-notification side
// effects, the same "coarse mutex, no per-VNET locks" discipline
// DirtyManager uses (spec §5).
type BridgeManager struct {
	mu       sync.Mutex
	registry *ident.Registry
	dirty    *DirtyManager
	bridges  map[ident.ID]*Bridge
	byPair   map[[2]ident.ID]ident.ID
	byVnet   map[ident.ID]map[ident.ID]struct{}

	created int
	removed int
}

// NewBridgeManager returns an empty bridge registry that marks VNETs
// dirty through dirty on every add/remove.
func NewBridgeManager(registry *ident.Registry, dirty *DirtyManager) *BridgeManager {
	return &BridgeManager{
		registry: registry,
		dirty:    dirty,
		bridges:  make(map[ident.ID]*Bridge),
		byPair:   make(map[[2]ident.ID]ident.ID),
		byVnet:   make(map[ident.ID]map[ident.ID]struct{}),
	}
}

func pairKey(a, b ident.ID) [2]ident.ID {
	if a <= b {
		return [2]ident.ID{a, b}
	}
	return [2]ident.ID{b, a}
}

// AddBridge creates a bridge between vnetA and vnetB and marks both
// VNETs dirty (spec §4.3). If the pair is already bridged it returns the
// existing bridge and marks nothing dirty.
func (bm *BridgeManager) AddBridge(vnetA, vnetB ident.ID) ident.ID {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	key := pairKey(vnetA, vnetB)
	if existing, ok := bm.byPair[key]; ok {
		return existing
	}

	id := bm.registry.New()
	b := &Bridge{ID: id, A: vnetA, B: vnetB}
	bm.bridges[id] = b
	bm.byPair[key] = id
	bm.index(vnetA, id)
	bm.index(vnetB, id)
	bm.created++

	bm.dirty.MarkDirty(vnetA)
	bm.dirty.MarkDirty(vnetB)
	return id
}

// RemoveBridge removes bridgeID, marking both endpoint VNETs dirty.
func (bm *BridgeManager) RemoveBridge(bridgeID ident.ID) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	b, ok := bm.bridges[bridgeID]
	if !ok {
		return
	}
	delete(bm.bridges, bridgeID)
	delete(bm.byPair, pairKey(b.A, b.B))
	bm.deindex(b.A, bridgeID)
	bm.deindex(b.B, bridgeID)
	bm.registry.Release(bridgeID)
	bm.removed++

	bm.dirty.MarkDirty(b.A)
	bm.dirty.MarkDirty(b.B)
}

// BridgesFor returns the bridge ids currently attaching vnetID.
func (bm *BridgeManager) BridgesFor(vnetID ident.ID) []ident.ID {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	set := bm.byVnet[vnetID]
	out := make([]ident.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return sortedIDs(out)
}

// AllBridges returns every bridge currently registered, sorted by
// identifier, used by the evaluator's union-find pass.
func (bm *BridgeManager) AllBridges() []*Bridge {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	out := make([]*Bridge, 0, len(bm.bridges))
	for _, b := range bm.bridges {
		out = append(out, b)
	}
	sortBridges(out)
	return out
}

func (bm *BridgeManager) index(vnetID, bridgeID ident.ID) {
	if bm.byVnet[vnetID] == nil {
		bm.byVnet[vnetID] = make(map[ident.ID]struct{})
	}
	bm.byVnet[vnetID][bridgeID] = struct{}{}
}

func (bm *BridgeManager) deindex(vnetID, bridgeID ident.ID) {
	if set, ok := bm.byVnet[vnetID]; ok {
		delete(set, bridgeID)
		if len(set) == 0 {
			delete(bm.byVnet, vnetID)
		}
	}
}

// Counts returns the cumulative number of bridges created and removed
// over this BridgeManager's lifetime, used by Statistics.
func (bm *BridgeManager) Counts() (created, removed int) {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.created, bm.removed
}

func sortBridges(bs []*Bridge) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].ID < bs[j].ID })
}
