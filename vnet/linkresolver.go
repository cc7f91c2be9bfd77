package vnet

import (
	"sort"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
)

// Diagnostics summarizes one link-resolution pass (spec §4.2, §6.6).
type Diagnostics struct {
	Resolved                int
	Unresolved              []string
	CrossPage               int
	SamePage                int
	SingleComponentWarnings []string
}

// LinkResolver merges VNETs across pages that share a symbolic link
// name, annotating each affected VNET's LinkNames set; it never
// modifies tabs (spec §4.2).
type LinkResolver struct{}

// Resolve scans every component in doc, harvests link-name→tabs
// associations (via LinkMapper where advertised, else LinkName()), and
// annotates the VNETs owning those tabs.
func (LinkResolver) Resolve(doc *circuit.Document, vnets map[ident.ID]*VNET, tabToVnet map[ident.ID]ident.ID) Diagnostics {
	linkTabs := make(map[string][]ident.ID)
	linkComponents := make(map[string]map[ident.ID]struct{})

	record := func(name string, tabs []ident.ID, componentID ident.ID) {
		if name == "" {
			return
		}
		linkTabs[name] = append(linkTabs[name], tabs...)
		if linkComponents[name] == nil {
			linkComponents[name] = make(map[ident.ID]struct{})
		}
		linkComponents[name][componentID] = struct{}{}
	}

	for _, page := range doc.Pages {
		for _, c := range page.Components {
			if lm, ok := c.(circuit.LinkMapper); ok {
				for name, tabs := range lm.LinkMappings() {
					record(name, tabs, c.ID())
				}
				continue
			}
			if name := c.LinkName(); name != "" {
				var tabs []ident.ID
				for _, p := range c.Pins() {
					tabs = append(tabs, p.TabIDs...)
				}
				record(name, tabs, c.ID())
			}
		}
	}

	names := make([]string, 0, len(linkTabs))
	for name := range linkTabs {
		names = append(names, name)
	}
	sort.Strings(names)

	var diag Diagnostics
	for _, name := range names {
		vnetSet := make(map[ident.ID]struct{})
		homePages := make(map[ident.ID]struct{})
		for _, tabID := range linkTabs[name] {
			vid, ok := tabToVnet[tabID]
			if !ok {
				continue
			}
			vnetSet[vid] = struct{}{}
			if v, ok := vnets[vid]; ok {
				homePages[v.HomePage] = struct{}{}
			}
		}

		if len(vnetSet) == 0 {
			diag.Unresolved = append(diag.Unresolved, name)
			continue
		}

		diag.Resolved++
		if len(homePages) > 1 {
			diag.CrossPage++
		} else {
			diag.SamePage++
		}
		if len(linkComponents[name]) <= 1 {
			diag.SingleComponentWarnings = append(diag.SingleComponentWarnings, name)
		}

		for vid := range vnetSet {
			vnets[vid].LinkNames[name] = struct{}{}
		}
	}

	return diag
}
