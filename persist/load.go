package persist

import (
	"encoding/json"
	"fmt"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/relerr"
)

// Load parses a document from raw JSON bytes (spec §6.1). Version
// compatibility is checked before anything is built; document-wide
// identifier uniqueness (P4) is enforced by registering each identifier
// as it is loaded, a component's ids just before that component is
// constructed. On any error Load returns no document, so a malformed
// document never installs partially, per spec §7's LOAD_ERROR clause.
func Load(data []byte) (*circuit.Document, error) {
	var schema docSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, relerr.NewLoadError("malformed JSON: " + err.Error())
	}
	if err := checkVersionCompatible(schema.Version); err != nil {
		return nil, err
	}

	doc := circuit.NewDocument(schema.Version)
	if schema.Metadata != nil {
		doc.Metadata = schema.Metadata
	}

	for _, ps := range schema.Pages {
		page, err := loadPage(doc.Registry, ps)
		if err != nil {
			return nil, err
		}
		doc.AddPage(page)
	}

	return doc, nil
}

func loadPage(reg *ident.Registry, ps pageSchema) (*circuit.Page, error) {
	if err := registerID(reg, ps.PageID, "page"); err != nil {
		return nil, err
	}
	page := circuit.NewPage(ident.ID(ps.PageID), ps.Name)

	for _, cs := range ps.Components {
		if err := registerComponentIDs(reg, cs); err != nil {
			return nil, err
		}
		comp, err := buildComponent(cs)
		if err != nil {
			return nil, err
		}
		page.AddComponent(comp)
	}

	// Junctions must be registered (and their synthetic pin/tab ids
	// minted) before wires, since a wire endpoint may reference a
	// junction_id that wires resolve through.
	for _, js := range ps.Junctions {
		j, err := loadJunction(reg, js)
		if err != nil {
			return nil, err
		}
		page.AddJunction(j)
	}

	for _, ws := range ps.Wires {
		wires, junctions, err := flattenWire(reg, ws)
		if err != nil {
			return nil, err
		}
		for _, w := range wires {
			page.AddWire(w)
		}
		for _, j := range junctions {
			page.AddJunction(j)
		}
	}

	return page, nil
}

func loadJunction(reg *ident.Registry, js junctionSchema) (*circuit.Junction, error) {
	if err := registerID(reg, js.JunctionID, "junction"); err != nil {
		return nil, err
	}
	pinID, tabID := reg.New(), reg.New()
	return circuit.NewJunction(ident.ID(js.JunctionID), pinID, tabID), nil
}

// flattenWire registers w and recursively unpacks any junctions and
// child wires authored inline under it (spec §6.1's embedded
// junctions[].child_wires), returning every wire and junction the
// subtree contains so the caller can add them all to the page.
func flattenWire(reg *ident.Registry, ws wireSchema) ([]*circuit.Wire, []*circuit.Junction, error) {
	if err := registerID(reg, ws.WireID, "wire"); err != nil {
		return nil, nil, err
	}

	w := &circuit.Wire{
		ID:      ident.ID(ws.WireID),
		StartID: ident.ID(ws.StartTabID),
		EndID:   ident.ID(ws.EndTabID),
	}
	for _, wp := range ws.Waypoints {
		if err := registerID(reg, wp.WaypointID, "waypoint"); err != nil {
			return nil, nil, err
		}
		w.Waypoints = append(w.Waypoints, circuit.Waypoint{ID: ident.ID(wp.WaypointID)})
	}

	wires := []*circuit.Wire{w}
	var junctions []*circuit.Junction

	for _, js := range ws.Junctions {
		j, err := loadJunction(reg, js)
		if err != nil {
			return nil, nil, err
		}
		for _, cw := range js.ChildWires {
			childWires, childJunctions, err := flattenWire(reg, cw)
			if err != nil {
				return nil, nil, err
			}
			j.ChildWireIDs = append(j.ChildWireIDs, childWires[0].ID)
			wires = append(wires, childWires...)
			junctions = append(junctions, childJunctions...)
		}
		junctions = append(junctions, j)
	}

	return wires, junctions, nil
}

func registerComponentIDs(reg *ident.Registry, cs componentSchema) error {
	if err := registerID(reg, cs.ComponentID, "component"); err != nil {
		return err
	}
	for _, p := range cs.Pins {
		if err := registerID(reg, p.PinID, "pin"); err != nil {
			return err
		}
		for _, t := range p.Tabs {
			if err := registerID(reg, t.TabID, "tab"); err != nil {
				return err
			}
		}
	}
	return nil
}

func registerID(reg *ident.Registry, raw, kind string) error {
	if err := reg.Register(ident.ID(raw)); err != nil {
		return relerr.NewLoadError(fmt.Sprintf("%s id %q: %v", kind, raw, err))
	}
	return nil
}
