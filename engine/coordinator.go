// Package engine ties the circuit, component, and vnet layers into the
// running simulation: the per-iteration update coordinator and the
// akita-driven main loop (spec §4.6, §4.8).
package engine

import (
	"sort"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/logging"
)

// Coordinator maps changed VNET ids to the components that must re-run
// their logic, and returns them in deterministic (sorted-by-id) order
// (spec §4.6, determinism rule of §9).
type Coordinator struct {
	ownerOf map[ident.ID][]circuit.Component // vnet id -> components with a tab on it
	byID    map[ident.ID]circuit.Component
}

// NewCoordinator indexes every component in doc by the VNET ids its
// pins' tabs resolve to, via tabToVnet (built by vnet.BuildManager).
func NewCoordinator(doc *circuit.Document, tabToVnet map[ident.ID]ident.ID) *Coordinator {
	c := &Coordinator{
		ownerOf: make(map[ident.ID][]circuit.Component),
		byID:    make(map[ident.ID]circuit.Component),
	}

	seen := make(map[ident.ID]map[ident.ID]struct{}) // vnetID -> componentID set, dedups multi-tab components
	for _, comp := range doc.AllComponents() {
		c.byID[comp.ID()] = comp
		for _, pin := range comp.Pins() {
			for _, tabID := range pin.TabIDs {
				vnetID, ok := tabToVnet[tabID]
				if !ok {
					continue
				}
				if seen[vnetID] == nil {
					seen[vnetID] = make(map[ident.ID]struct{})
				}
				if _, dup := seen[vnetID][comp.ID()]; dup {
					continue
				}
				seen[vnetID][comp.ID()] = struct{}{}
				c.ownerOf[vnetID] = append(c.ownerOf[vnetID], comp)
			}
		}
	}

	for vnetID := range c.ownerOf {
		sortComponents(c.ownerOf[vnetID])
	}

	c.logOwnership()
	return c
}

// ComponentsFor returns the components owning a tab on any of changed,
// deduplicated and sorted by component id.
func (c *Coordinator) ComponentsFor(changed []ident.ID) []circuit.Component {
	dedup := make(map[ident.ID]circuit.Component)
	for _, vnetID := range changed {
		for _, comp := range c.ownerOf[vnetID] {
			dedup[comp.ID()] = comp
		}
	}

	out := make([]circuit.Component, 0, len(dedup))
	for _, comp := range dedup {
		out = append(out, comp)
	}
	sortComponents(out)
	return out
}

// ComponentByID looks up a single component by identifier, used by
// package interact to route an Action to its target.
func (c *Coordinator) ComponentByID(id ident.ID) (circuit.Component, bool) {
	comp, ok := c.byID[id]
	return comp, ok
}

// AllComponents returns every registered component in deterministic
// order, used by Engine.Initialize's first SimStart pass.
func (c *Coordinator) AllComponents() []circuit.Component {
	out := make([]circuit.Component, 0, len(c.byID))
	for _, comp := range c.byID {
		out = append(out, comp)
	}
	sortComponents(out)
	return out
}

func sortComponents(cs []circuit.Component) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID() < cs[j].ID() })
}

// logOwnership is a debugging aid kept terse on purpose; most runs
// never need it.
func (c *Coordinator) logOwnership() {
	logging.Bridge("coordinator built", "vnets", len(c.ownerOf), "components", len(c.byID))
}
