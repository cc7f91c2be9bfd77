package vnet

import (
	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// Manager owns the document-wide VNET partition and implements
// circuit.VnetView, the read/dirty-mark surface every Component's logic
// sees (spec §4.5, §9). It is built once per simulation run by merging
// each page's Builder.Build result and running LinkResolver.Resolve
// across the whole document.
type Manager struct {
	doc *circuit.Document

	vnets     map[ident.ID]*VNET
	tabToVnet map[ident.ID]ident.ID
	tabToPin  map[ident.ID]*circuit.Pin

	dirty   *DirtyManager
	bridges *BridgeManager

	diagnostics     []Diagnostic
	linkDiagnostics Diagnostics
}

// BuildManager partitions every page of doc into VNETs, resolves link
// names across them, and returns a ready-to-run Manager along with the
// diagnostics collected along the way (spec §4.1, §4.2, §6.6).
func BuildManager(doc *circuit.Document) (*Manager, []Diagnostic, Diagnostics) {
	m := &Manager{
		doc:       doc,
		vnets:     make(map[ident.ID]*VNET),
		tabToVnet: make(map[ident.ID]ident.ID),
		tabToPin:  make(map[ident.ID]*circuit.Pin),
	}
	m.dirty = NewDirtyManager()
	m.bridges = NewBridgeManager(doc.Registry, m.dirty)

	builder := NewBuilder(doc.Registry)
	var diags []Diagnostic
	for _, page := range doc.Pages {
		result, pageDiags := builder.Build(page)
		diags = append(diags, pageDiags...)
		for id, v := range result.Vnets {
			m.vnets[id] = v
		}
		for tabID, vnetID := range result.TabToVnet {
			m.tabToVnet[tabID] = vnetID
		}
		for _, tabID := range page.Tabs() {
			if pin := page.PinForTab(tabID); pin != nil {
				m.tabToPin[tabID] = pin
			}
		}
		for _, j := range page.Junctions {
			m.tabToPin[j.TabID] = j.Pin
		}
	}

	linkDiag := (LinkResolver{}).Resolve(doc, m.vnets, m.tabToVnet)

	m.diagnostics = diags
	m.linkDiagnostics = linkDiag
	return m, diags, linkDiag
}

// Dirty returns the shared DirtyManager, used by Engine's main loop to
// read the dirty set each iteration.
func (m *Manager) Dirty() *DirtyManager { return m.dirty }

// Bridges returns the shared BridgeManager, passed to Component logic as
// circuit.BridgeView.
func (m *Manager) Bridges() *BridgeManager { return m.bridges }

// Vnets returns the full VNET set, keyed by identifier.
func (m *Manager) Vnets() map[ident.ID]*VNET { return m.vnets }

// TabToVnet exposes the tab→VNET index, used by engine.NewCoordinator
// to index components by the VNETs their tabs sit on.
func (m *Manager) TabToVnet() map[ident.ID]ident.ID { return m.tabToVnet }

// PinForTab returns the Pin backing tabID, used by the evaluator to read
// the live drive state contributed by each tab's owning component.
func (m *Manager) PinForTab(tabID ident.ID) *circuit.Pin { return m.tabToPin[tabID] }

// BuildDiagnostics returns the topology warnings collected while
// partitioning every page (spec §4.1, §7 TOPOLOGY_WARNING).
func (m *Manager) BuildDiagnostics() []Diagnostic { return m.diagnostics }

// LinkDiagnostics returns the link-resolution summary (spec §4.2, §6.6).
func (m *Manager) LinkDiagnostics() Diagnostics { return m.linkDiagnostics }

// StateForTab implements circuit.VnetView.
func (m *Manager) StateForTab(tabID ident.ID) (signal.Signal, bool) {
	vnetID, ok := m.tabToVnet[tabID]
	if !ok {
		return signal.Float, false
	}
	v, ok := m.vnets[vnetID]
	if !ok {
		return signal.Float, false
	}
	return v.State, true
}

// VnetForTab implements circuit.VnetView.
func (m *Manager) VnetForTab(tabID ident.ID) (ident.ID, bool) {
	vnetID, ok := m.tabToVnet[tabID]
	return vnetID, ok
}

// MarkTabDirty implements circuit.VnetView.
func (m *Manager) MarkTabDirty(tabID ident.ID) {
	if vnetID, ok := m.tabToVnet[tabID]; ok {
		m.dirty.MarkDirty(vnetID)
	}
}

// MarkVnetDirty implements circuit.VnetView.
func (m *Manager) MarkVnetDirty(vnetID ident.ID) {
	m.dirty.MarkDirty(vnetID)
}

// MarkAllDirty flags every known VNET dirty, used by Engine.Initialize
// (spec §4.8 step 1).
func (m *Manager) MarkAllDirty() {
	ids := make([]ident.ID, 0, len(m.vnets))
	for id := range m.vnets {
		ids = append(ids, id)
	}
	m.dirty.MarkAllDirty(ids)
}
