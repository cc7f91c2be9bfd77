package persist

import (
	"encoding/json"
	"fmt"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/component"
)

// Save serializes doc to indented JSON, the inverse of Load. Wires and
// junctions are always emitted as the page's flat lists: any
// authoring-time nesting under junctions[].child_wires was already
// flattened by Load, and a flat list is equally valid input, so Save
// does not attempt to reconstruct the original nesting (schematic
// authoring structure, not simulation-relevant — see DESIGN.md).
func Save(doc *circuit.Document) ([]byte, error) {
	schema := docSchema{
		Version:  doc.Version,
		Metadata: doc.Metadata,
	}

	for _, page := range doc.Pages {
		schema.Pages = append(schema.Pages, savePage(page))
	}

	return json.MarshalIndent(schema, "", "  ")
}

func savePage(page *circuit.Page) pageSchema {
	ps := pageSchema{
		PageID: string(page.ID),
		Name:   page.Name,
	}
	for _, c := range page.Components {
		ps.Components = append(ps.Components, saveComponent(c))
	}
	for _, w := range page.Wires {
		ps.Wires = append(ps.Wires, saveWire(w))
	}
	for _, j := range page.Junctions {
		ps.Junctions = append(ps.Junctions, junctionSchema{JunctionID: string(j.ID)})
	}
	return ps
}

func saveWire(w *circuit.Wire) wireSchema {
	ws := wireSchema{
		WireID:     string(w.ID),
		StartTabID: string(w.StartID),
		EndTabID:   string(w.EndID),
	}
	for _, wp := range w.Waypoints {
		ws.Waypoints = append(ws.Waypoints, waypointSchema{WaypointID: string(wp.ID)})
	}
	return ws
}

func saveComponent(c circuit.Component) componentSchema {
	cs := componentSchema{
		ComponentID: string(c.ID()),
		Type:        c.Type(),
		LinkName:    c.LinkName(),
		Properties:  saveProperties(c),
	}
	for _, p := range c.Pins() {
		ps := pinSchema{PinID: string(p.ID)}
		for _, t := range p.TabIDs {
			ps.Tabs = append(ps.Tabs, tabSchema{TabID: string(t)})
		}
		cs.Pins = append(cs.Pins, ps)
	}
	return cs
}

// saveProperties extracts each catalog type's persisted configuration,
// the inverse of buildComponent's type switch. Runtime-only dynamic
// state (relay armature, switch on/off, clock phase, volatile memory
// contents) is not a property and is never written here — only the
// configuration a fresh SimStart would reproduce.
func saveProperties(c circuit.Component) map[string]any {
	switch v := c.(type) {
	case *component.Switch:
		mode := "toggle"
		if v.Mode == component.ModePushbutton {
			mode = "pushbutton"
		}
		return map[string]any{"mode": mode, "color": v.Color, "default_on": v.DefaultOn}

	case *component.Clock:
		return map[string]any{
			"frequency":           saveFrequency(v.Frequency),
			"enable_on_sim_start": v.EnableOnSimStart,
		}

	case *component.DPDTRelay:
		return map[string]any{
			"flip_horizontal":         v.FlipHorizontal,
			"flip_vertical":           v.FlipVertical,
			"switching_delay_seconds": v.SwitchingDelaySeconds,
		}

	case *component.Bus:
		return map[string]any{
			"bus_name":    v.BusName,
			"start_pin":   v.StartPin,
			"pin_spacing": v.PinSpacing,
		}

	case *component.Memory:
		cells := make(map[string]any)
		if !v.IsVolatile {
			for addr, val := range v.Cells() {
				cells[fmt.Sprintf("%d", addr)] = val
			}
		}
		return map[string]any{
			"address_bits":      v.AddressBits,
			"data_bits":         v.DataBits,
			"address_bus_name":  v.AddressBusName,
			"data_bus_name":     v.DataBusName,
			"is_volatile":       v.IsVolatile,
			"default_file_name": v.DefaultFileName,
			"cells":             cells,
		}

	case *component.Lamp:
		return map[string]any{"color": v.Color}

	case *component.Thumbwheel:
		return map[string]any{
			"bus_name":    v.BusName,
			"start_pin":   v.StartPin,
			"pin_spacing": v.PinSpacing,
		}

	default:
		return nil
	}
}

func saveFrequency(f component.Frequency) string {
	switch f {
	case component.Freq4Hz:
		return "4hz"
	case component.Freq2Hz:
		return "2hz"
	case component.Freq1Hz:
		return "1hz"
	case component.Period2s:
		return "2s"
	case component.Period4s:
		return "4s"
	case component.Period8s:
		return "8s"
	default:
		return "1hz"
	}
}
