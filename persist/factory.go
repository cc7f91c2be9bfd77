package persist

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/component"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/relerr"
)

// buildComponent constructs the catalog variant named by cs.Type,
// reading its fixed-order pin/tab identifiers and its loosely-typed
// properties map. Unknown types and malformed/missing properties yield
// a relerr.LoadError, matching spec §7's LOAD_ERROR "missing required
// fields" clause.
func buildComponent(cs componentSchema) (circuit.Component, error) {
	id := ident.ID(cs.ComponentID)
	pinIDs, tabIDs, err := pinTabIDs(cs)
	if err != nil {
		return nil, err
	}
	props := cs.Properties

	switch cs.Type {
	case component.TypeVCC:
		if err := requirePins(cs, 1); err != nil {
			return nil, err
		}
		return component.NewVCC(id, pinIDs[0], tabIDs[0]), nil

	case component.TypeSwitch:
		if err := requirePins(cs, 2); err != nil {
			return nil, err
		}
		mode := component.ModeToggle
		if propString(props, "mode", "toggle") == "pushbutton" {
			mode = component.ModePushbutton
		}
		sw := component.NewSwitch(id, pinIDs[0], tabIDs[0], pinIDs[1], tabIDs[1],
			mode, propString(props, "color", ""), propBool(props, "default_on", false))
		return sw, nil

	case component.TypeClock:
		if err := requirePins(cs, 1); err != nil {
			return nil, err
		}
		freq, err := parseFrequency(propString(props, "frequency", "1hz"))
		if err != nil {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: %v", cs.ComponentID, err))
		}
		return component.NewClock(id, pinIDs[0], tabIDs[0], freq, propBool(props, "enable_on_sim_start", false)), nil

	case component.TypeIndicator:
		if err := requirePins(cs, 1); err != nil {
			return nil, err
		}
		return component.NewIndicator(id, pinIDs[0], tabIDs[0]), nil

	case component.TypeDiode:
		if err := requirePins(cs, 2); err != nil {
			return nil, err
		}
		return component.NewDiode(id, pinIDs[0], tabIDs[0], pinIDs[1], tabIDs[1]), nil

	case component.TypeDPDTRelay:
		if err := requirePins(cs, 7); err != nil {
			return nil, err
		}
		var pa, ta [7]ident.ID
		copy(pa[:], pinIDs)
		copy(ta[:], tabIDs)
		r := component.NewDPDTRelay(id, pa, ta)
		r.Rotation = cs.Rotation
		r.FlipHorizontal = propBool(props, "flip_horizontal", false)
		r.FlipVertical = propBool(props, "flip_vertical", false)
		if d := propFloat(props, "switching_delay_seconds", -1); d >= 0 {
			r.SwitchingDelaySeconds = d
		}
		return r, nil

	case component.TypeLink:
		if len(pinIDs) == 0 {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: link requires at least one pin", cs.ComponentID))
		}
		pins := make([]*circuit.Pin, len(pinIDs))
		for i := range pinIDs {
			pins[i] = circuit.NewPin(pinIDs[i], id, tabIDs[i])
		}
		if cs.LinkName == "" {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: link requires link_name", cs.ComponentID))
		}
		return component.NewLink(id, pins, cs.LinkName), nil

	case component.TypeBus:
		if len(pinIDs) == 0 {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: bus requires at least one pin", cs.ComponentID))
		}
		busName := propString(props, "bus_name", "")
		if busName == "" {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: bus requires properties.bus_name", cs.ComponentID))
		}
		return component.NewBus(id, pinIDs, tabIDs,
			int(propFloat(props, "start_pin", 0)), propFloat(props, "pin_spacing", 0), busName), nil

	case component.TypeMemory:
		addrBits := int(propFloat(props, "address_bits", 0))
		dataBits := int(propFloat(props, "data_bits", 0))
		if err := requirePins(cs, 3+addrBits+dataBits); err != nil {
			return nil, err
		}
		addrBus := propString(props, "address_bus_name", "")
		dataBus := propString(props, "data_bus_name", "")
		if addrBus == "" || dataBus == "" {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: memory requires address_bus_name and data_bus_name", cs.ComponentID))
		}
		mem := component.NewMemory(id, pinIDs, tabIDs, addrBits, dataBits, addrBus, dataBus,
			propBool(props, "is_volatile", true), propString(props, "default_file_name", ""))
		mem.SeedDefaults(parseCells(props["cells"]))
		return mem, nil

	case component.TypeInverter:
		if err := requirePins(cs, 2); err != nil {
			return nil, err
		}
		return component.NewInverter(id, pinIDs[0], tabIDs[0], pinIDs[1], tabIDs[1]), nil

	case component.TypeLamp:
		if err := requirePins(cs, 1); err != nil {
			return nil, err
		}
		return component.NewLamp(id, pinIDs[0], tabIDs[0], propString(props, "color", "")), nil

	case component.TypeThumbwheel:
		if len(pinIDs) == 0 {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: thumbwheel requires at least one pin", cs.ComponentID))
		}
		busName := propString(props, "bus_name", "")
		if busName == "" {
			return nil, relerr.NewLoadError(fmt.Sprintf("component %s: thumbwheel requires properties.bus_name", cs.ComponentID))
		}
		return component.NewThumbwheel(id, pinIDs, tabIDs,
			int(propFloat(props, "start_pin", 0)), propFloat(props, "pin_spacing", 0), busName), nil

	default:
		return nil, relerr.NewLoadError(fmt.Sprintf("component %s: unknown component_type %q", cs.ComponentID, cs.Type))
	}
}

func pinTabIDs(cs componentSchema) (pinIDs, tabIDs []ident.ID, err error) {
	pinIDs = make([]ident.ID, len(cs.Pins))
	tabIDs = make([]ident.ID, len(cs.Pins))
	for i, p := range cs.Pins {
		if len(p.Tabs) == 0 {
			return nil, nil, relerr.NewLoadError(fmt.Sprintf("component %s: pin %s has no tabs", cs.ComponentID, p.PinID))
		}
		pinIDs[i] = ident.ID(p.PinID)
		tabIDs[i] = ident.ID(p.Tabs[0].TabID)
	}
	return pinIDs, tabIDs, nil
}

func requirePins(cs componentSchema, n int) error {
	if len(cs.Pins) != n {
		return relerr.NewLoadError(fmt.Sprintf("component %s (%s): expected %d pins, found %d", cs.ComponentID, cs.Type, n, len(cs.Pins)))
	}
	return nil
}

func parseFrequency(s string) (component.Frequency, error) {
	switch s {
	case "4hz":
		return component.Freq4Hz, nil
	case "2hz":
		return component.Freq2Hz, nil
	case "1hz":
		return component.Freq1Hz, nil
	case "2s":
		return component.Period2s, nil
	case "4s":
		return component.Period4s, nil
	case "8s":
		return component.Period8s, nil
	default:
		return 0, fmt.Errorf("unknown clock frequency %q", s)
	}
}

func parseCells(raw any) map[uint32]uint32 {
	out := make(map[uint32]uint32)
	m, ok := raw.(map[string]any)
	if !ok {
		return out
	}
	for k, v := range m {
		addr, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			continue
		}
		out[uint32(addr)] = uint32(toFloat(v))
	}
	return out
}

func propString(props map[string]any, key, def string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func propBool(props map[string]any, key string, def bool) bool {
	if v, ok := props[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func propFloat(props map[string]any, key string, def float64) float64 {
	if v, ok := props[key]; ok {
		return toFloat(v)
	}
	return def
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
