package engine

import (
	"github.com/sarchlab/akita/v4/sim"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/component"
	"github.com/sarchlab/relaysim/ident"
)

// S1: a single VCC wired directly to an Indicator lights it immediately.
var _ = Describe("a VCC wired straight to an Indicator", func() {
	It("lights the indicator on Initialize", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)
		vccTab := addVCC(reg, page)
		ind, indTab := addIndicator(reg, page)
		wireTabs(reg, page, vccTab, indTab)

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(ind.Active()).To(BeTrue())
		Expect(e.GetState()).To(Equal(StateStable))
	})
})

// S2: VCC -> toggle switch -> Indicator. Toggling the switch bridges the
// two VNETs and back, restoring the initial float state.
var _ = Describe("a VCC through a toggle switch to an Indicator", func() {
	It("lights the indicator only while the switch is on", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)
		vccTab := addVCC(reg, page)
		sw, swA, swB := addSwitch(reg, page, component.ModeToggle, false)
		ind, indTab := addIndicator(reg, page)
		wireTabs(reg, page, vccTab, swA)
		wireTabs(reg, page, swB, indTab)

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(ind.Active()).To(BeFalse())

		Expect(sw.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
		sw.MarkDirtyOnInteract(e.Manager())
		e.Tick(sim.VTimeInSec(e.Now()))
		Expect(ind.Active()).To(BeTrue())

		Expect(sw.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
		sw.MarkDirtyOnInteract(e.Manager())
		e.Tick(sim.VTimeInSec(e.Now()))
		Expect(ind.Active()).To(BeFalse(), "toggling back restores the initial float state")
	})
})

// S3: a diode only bridges anode to cathode while the anode side is
// driven HIGH; with no VCC at all, neither side ever lights.
var _ = Describe("a diode gating two indicators", func() {
	It("bridges anode to cathode once the anode is driven HIGH", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)
		vccTab := addVCC(reg, page)

		diodeID := reg.New()
		anodePin, anodeTab := enginePin(reg, diodeID)
		cathodePin, cathodeTab := enginePin(reg, diodeID)
		diode := component.NewDiode(diodeID, anodePin.ID, anodeTab, cathodePin.ID, cathodeTab)
		page.AddComponent(diode)

		indA, indATab := addIndicator(reg, page)
		indB, indBTab := addIndicator(reg, page)
		wireTabs(reg, page, vccTab, anodeTab)
		wireTabs(reg, page, anodeTab, indATab)
		wireTabs(reg, page, cathodeTab, indBTab)

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(indA.Active()).To(BeTrue())
		Expect(indB.Active()).To(BeTrue(), "the diode bridges the anode's HIGH through to the cathode side")
	})

	It("never bridges, and both indicators stay dark, with no VCC driving the anode", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)

		diodeID := reg.New()
		anodePin, anodeTab := enginePin(reg, diodeID)
		cathodePin, cathodeTab := enginePin(reg, diodeID)
		diode := component.NewDiode(diodeID, anodePin.ID, anodeTab, cathodePin.ID, cathodeTab)
		page.AddComponent(diode)

		indA, indATab := addIndicator(reg, page)
		indB, indBTab := addIndicator(reg, page)
		wireTabs(reg, page, anodeTab, indATab)
		wireTabs(reg, page, cathodeTab, indBTab)

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(indA.Active()).To(BeFalse())
		Expect(indB.Active()).To(BeFalse())
	})
})

// S4: a DPDT relay latched through its own NO contact stays energized
// after the pushbutton that first energized it is released.
var _ = Describe("a DPDT relay latched through its own contact", func() {
	It("stays energized after the triggering pushbutton is released", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)
		vccTab := addVCC(reg, page)
		sw, swA, swB := addSwitch(reg, page, component.ModePushbutton, false)

		relayID := reg.New()
		var pinIDs, tabIDs [7]ident.ID
		for i := range pinIDs {
			p, t := enginePin(reg, relayID)
			pinIDs[i], tabIDs[i] = p.ID, t
		}
		relay := component.NewDPDTRelay(relayID, pinIDs, tabIDs)
		page.AddComponent(relay)

		const (
			pinCoil = 0
			pinP1C  = 1
			pinP1NO = 3
		)
		wireTabs(reg, page, vccTab, swA)
		wireTabs(reg, page, swB, tabIDs[pinCoil])
		wireTabs(reg, page, vccTab, tabIDs[pinP1C])
		wireTabs(reg, page, tabIDs[pinP1NO], tabIDs[pinCoil])

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(relay.State()).To(Equal(component.Released))

		Expect(sw.Interact(circuit.Action{Kind: "press"})).To(BeTrue())
		sw.MarkDirtyOnInteract(e.Manager())
		e.Tick(sim.VTimeInSec(e.Now()))
		Expect(relay.State()).To(Equal(component.Energizing))

		e.Tick(sim.VTimeInSec(e.Now() + component.DefaultSwitchingDelaySeconds + 0.001))
		Expect(relay.State()).To(Equal(component.Energized))

		Expect(sw.Interact(circuit.Action{Kind: "release"})).To(BeTrue())
		sw.MarkDirtyOnInteract(e.Manager())
		e.Tick(sim.VTimeInSec(e.Now()))
		Expect(relay.State()).To(Equal(component.Energized), "the holding contact keeps the coil driven after release")
	})
})

// S5: writing through the address/data buses, then switching to read,
// returns the value just written.
var _ = Describe("a Memory addressed and driven through address/data buses", func() {
	It("reads back what it was just told to write", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)

		memID := reg.New()
		total := 3 + 3 + 4
		pinIDs := make([]ident.ID, total)
		tabIDs := make([]ident.ID, total)
		for i := 0; i < total; i++ {
			p, t := enginePin(reg, memID)
			pinIDs[i], tabIDs[i] = p.ID, t
		}
		mem := component.NewMemory(memID, pinIDs, tabIDs, 3, 4, "ADDR", "DATA", true, "")
		page.AddComponent(mem)

		enableTab, writeTab, readTab := tabIDs[0], tabIDs[2], tabIDs[1]
		addrTabs, dataTabs := tabIDs[3:6], tabIDs[6:10]

		swEnable, enA, enB := addSwitch(reg, page, component.ModeToggle, true)
		wireTabs(reg, page, addVCC(reg, page), enA)
		wireTabs(reg, page, enB, enableTab)

		swWrite, wrA, wrB := addSwitch(reg, page, component.ModeToggle, true)
		wireTabs(reg, page, addVCC(reg, page), wrA)
		wireTabs(reg, page, wrB, writeTab)

		swRead, rdA, rdB := addSwitch(reg, page, component.ModeToggle, false)
		wireTabs(reg, page, addVCC(reg, page), rdA)
		wireTabs(reg, page, rdB, readTab)

		// address 2 (0b010): only bit 1 driven HIGH.
		wireTabs(reg, page, addVCC(reg, page), addrTabs[1])
		// data 0b1010: bits 1 and 3 driven HIGH.
		wireTabs(reg, page, addVCC(reg, page), dataTabs[1])
		wireTabs(reg, page, addVCC(reg, page), dataTabs[3])

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(mem.LastOperation).To(Equal(component.OpWrite))
		Expect(mem.Cells()[2]).To(Equal(uint32(0b1010)))
		_ = swEnable

		Expect(swWrite.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
		swWrite.MarkDirtyOnInteract(e.Manager())
		Expect(swRead.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
		swRead.MarkDirtyOnInteract(e.Manager())
		e.Tick(sim.VTimeInSec(e.Now()))

		Expect(mem.LastOperation).To(Equal(component.OpRead))
		Expect(mem.LastAddress).To(Equal(uint32(2)))
		Expect(mem.LastData).To(Equal(uint32(0b1010)))
	})
})

// S6: a 1Hz clock enabled at sim start alternates an indicator's state
// at least twice over a 3 second span.
var _ = Describe("a Clock driving an Indicator", func() {
	It("toggles the indicator at least twice over three simulated seconds", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)

		clockID := reg.New()
		pin, tab := enginePin(reg, clockID)
		clk := component.NewClock(clockID, pin.ID, tab, component.Freq1Hz, true)
		page.AddComponent(clk)

		ind, indTab := addIndicator(reg, page)
		wireTabs(reg, page, tab, indTab)

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(ind.Active()).To(BeFalse())

		transitions := 0
		last := ind.Active()
		for t := 0.05; t <= 3.0; t += 0.05 {
			e.Tick(sim.VTimeInSec(t))
			if ind.Active() != last {
				transitions++
				last = ind.Active()
			}
		}
		Expect(transitions).To(BeNumerically(">=", 2))
	})
})

// L2: running an already-stable engine again makes no further progress.
var _ = Describe("idempotence of an already-stable engine", func() {
	It("reports zero iterations and stays stable on a no-op tick", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)
		vccTab := addVCC(reg, page)
		_, indTab := addIndicator(reg, page)
		wireTabs(reg, page, vccTab, indTab)

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		before := e.GetStatistics().TotalIterations

		e.Tick(sim.VTimeInSec(e.Now()))
		Expect(e.GetStatistics().TotalIterations).To(Equal(before), "a stable engine settles in zero further iterations")
		Expect(e.GetState()).To(Equal(StateStable))
	})
})

// L3: removing every VCC (modeled here as never having one) leaves
// every VNET at float.
var _ = Describe("a topology with no VCC at all", func() {
	It("settles with every indicator dark", func() {
		reg := ident.NewRegistry()
		doc, page := newTestDoc(reg)
		ind, indTab := addIndicator(reg, page)
		_ = indTab

		e := newTestEngine(doc)
		Expect(e.Initialize()).To(Succeed())
		Expect(ind.Active()).To(BeFalse())
		Expect(e.GetState()).To(Equal(StateStable))
	})
})
