// Package vnet implements the virtual-network layer of spec §3.11–§4.5:
// the VNET builder, link resolver, bridge manager, dirty-flag manager,
// and evaluator. It is the one package in relaysim with a hand-rolled
// graph traversal and union-find instead of an imported graph library —
// see SPEC_FULL.md §9 for why katalvlaran/lvlath's weighted-MST-shaped
// core.Graph doesn't fit this plain-reachability problem.
package vnet

import (
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// VNET is the set of tabs proven electrically equivalent by wire
// connectivity on one page, possibly extended across pages by link
// names, and possibly merged at runtime by bridges (spec §3.11).
type VNET struct {
	ID        ident.ID
	HomePage  ident.ID
	TabIDs    map[ident.ID]struct{}
	LinkNames map[string]struct{}
	BridgeIDs map[ident.ID]struct{}
	State     signal.Signal
}

// NewVNET returns an empty VNET homed on page, ready to receive tabs.
func NewVNET(id, homePage ident.ID) *VNET {
	return &VNET{
		ID:        id,
		HomePage:  homePage,
		TabIDs:    make(map[ident.ID]struct{}),
		LinkNames: make(map[string]struct{}),
		BridgeIDs: make(map[ident.ID]struct{}),
	}
}

// AddTab adds tabID to the VNET's tab set.
func (n *VNET) AddTab(tabID ident.ID) {
	n.TabIDs[tabID] = struct{}{}
}

// SortedTabIDs returns the VNET's tabs in deterministic order.
func (n *VNET) SortedTabIDs() []ident.ID {
	return sortedIDs(keys(n.TabIDs))
}

// SortedLinkNames returns the VNET's link names in deterministic order.
func (n *VNET) SortedLinkNames() []string {
	out := make([]string, 0, len(n.LinkNames))
	for name := range n.LinkNames {
		out = append(out, name)
	}
	sortStrings(out)
	return out
}
