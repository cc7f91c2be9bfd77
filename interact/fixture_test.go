package interact

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/component"
	"github.com/sarchlab/relaysim/engine"
	"github.com/sarchlab/relaysim/ident"
)

func interactPin(reg *ident.Registry, compID ident.ID) (*circuit.Pin, ident.ID) {
	pinID, tabID := reg.New(), reg.New()
	return circuit.NewPin(pinID, compID, tabID), tabID
}

// vccSwitchIndicator builds VCC -> toggle Switch -> Indicator on one
// page, returning the ready-to-use engine and the switch/indicator.
func vccSwitchIndicator() (*engine.Engine, *component.Switch, ident.ID, *component.Indicator) {
	reg := ident.NewRegistry()
	doc := circuit.NewDocument("1.0.0")
	doc.Registry = reg
	page := circuit.NewPage(reg.New(), "Page 1")
	doc.AddPage(page)

	vccID := reg.New()
	vccPin, vccTab := interactPin(reg, vccID)
	page.AddComponent(component.NewVCC(vccID, vccPin.ID, vccTab))

	swID := reg.New()
	swAPin, swATab := interactPin(reg, swID)
	swBPin, swBTab := interactPin(reg, swID)
	sw := component.NewSwitch(swID, swAPin.ID, swATab, swBPin.ID, swBTab, component.ModeToggle, "", false)
	page.AddComponent(sw)

	indID := reg.New()
	indPin, indTab := interactPin(reg, indID)
	ind := component.NewIndicator(indID, indPin.ID, indTab)
	page.AddComponent(ind)

	page.AddWire(&circuit.Wire{ID: reg.New(), StartID: vccTab, EndID: swATab})
	page.AddWire(&circuit.Wire{ID: reg.New(), StartID: swBTab, EndID: indTab})

	akitaEngine := sim.NewSerialEngine()
	e := engine.New("TestEngine", doc, akitaEngine, 1*sim.GHz, 10_000, 0)
	return e, sw, swID, ind
}
