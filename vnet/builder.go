package vnet

import (
	"fmt"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
)

// Diagnostic is a non-fatal condition surfaced by the builder or
// resolver, collected rather than raised as an error (spec §4.1 failure
// semantics, §7 TOPOLOGY_WARNING).
type Diagnostic struct {
	Message string
}

// PageVNETs is the result of building one page's VNET partition: the
// VNETs themselves plus the tab→VNET index the evaluator and VnetView
// rely on.
type PageVNETs struct {
	Vnets     map[ident.ID]*VNET
	TabToVnet map[ident.ID]ident.ID
}

// Builder partitions a Page's tabs (and junction tabs) into VNETs by
// wire connectivity (spec §4.1).
type Builder struct {
	Registry *ident.Registry
}

// NewBuilder returns a Builder that mints VNET ids from registry.
func NewBuilder(registry *ident.Registry) *Builder {
	return &Builder{Registry: registry}
}

// Build computes the complete partition of page's tabs into VNETs.
// Malformed wires (an endpoint that resolves to neither a tab nor a
// junction) are skipped and reported as diagnostics; the builder never
// fails.
func (b *Builder) Build(page *circuit.Page) (*PageVNETs, []Diagnostic) {
	var diags []Diagnostic

	adj := make(map[ident.ID][]ident.ID)
	allTabs := make(map[ident.ID]struct{})

	addEdge := func(a, c ident.ID) {
		adj[a] = append(adj[a], c)
		adj[c] = append(adj[c], a)
	}

	for _, t := range page.Tabs() {
		allTabs[t] = struct{}{}
		if _, ok := adj[t]; !ok {
			adj[t] = nil
		}
	}
	for _, j := range page.Junctions {
		allTabs[j.TabID] = struct{}{}
		if _, ok := adj[j.TabID]; !ok {
			adj[j.TabID] = nil
		}
	}

	// Step 2a: every Pin's tabs are an implicit equivalence class.
	for _, c := range page.Components {
		for _, pin := range c.Pins() {
			tabs := pin.SortedTabIDs()
			for i := 1; i < len(tabs); i++ {
				addEdge(tabs[i-1], tabs[i])
			}
		}
	}

	// Step 2b: every Wire is an equivalence between its two endpoints,
	// resolved through junctions (which the persistence layer already
	// flattens embedded child wires into, so no separate recursive
	// walk over Junction.ChildWireIDs is needed here beyond the
	// uniform endpoint resolution below).
	for _, w := range page.Wires {
		if !w.Resolved() {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("wire %s has an unresolved endpoint; skipped", w.ID),
			})
			continue
		}
		startTab, ok1 := resolveEndpoint(page, w.StartID)
		endTab, ok2 := resolveEndpoint(page, w.EndID)
		if !ok1 || !ok2 {
			diags = append(diags, Diagnostic{
				Message: fmt.Sprintf("wire %s endpoint does not resolve to a tab or junction; skipped", w.ID),
			})
			continue
		}
		addEdge(startTab, endTab)
	}

	// Step 3-5: flood fill from each unvisited tab.
	visited := make(map[ident.ID]bool)
	vnets := make(map[ident.ID]*VNET)
	tabToVnet := make(map[ident.ID]ident.ID)

	orderedTabs := sortedIDs(keys(allTabs))
	for _, start := range orderedTabs {
		if visited[start] {
			continue
		}
		vnetID := b.Registry.New()
		v := NewVNET(vnetID, page.ID)
		vnets[vnetID] = v

		stack := []ident.ID{start}
		visited[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v.AddTab(cur)
			tabToVnet[cur] = vnetID
			for _, nb := range adj[cur] {
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}

	return &PageVNETs{Vnets: vnets, TabToVnet: tabToVnet}, diags
}

// resolveEndpoint maps a wire endpoint id, which may name either a Tab
// or a Junction, to the tab id the VNET builder should treat as the
// node.
func resolveEndpoint(page *circuit.Page, id ident.ID) (ident.ID, bool) {
	if j := page.JunctionByID(id); j != nil {
		return j.TabID, true
	}
	if page.PinForTab(id) != nil {
		return id, true
	}
	return ident.Empty, false
}
