package component

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
)

var _ = Describe("Switch", func() {
	It("bridges its two pins' VNETs only while on, and rejects a mismatched mode", func() {
		reg := ident.NewRegistry()
		id := reg.New()
		pinA, tabA := newPin(reg, id)
		pinB, tabB := newPin(reg, id)
		sw := NewSwitch(id, pinA.ID, tabA, pinB.ID, tabB, ModeToggle, "red", false)

		manager := onePageManager(reg, sw)
		sw.SimStart(manager, manager.Bridges())

		vA, _ := manager.VnetForTab(tabA)
		vB, _ := manager.VnetForTab(tabB)
		Expect(manager.Bridges().BridgesFor(vA)).To(BeEmpty())

		Expect(sw.Interact(circuit.Action{Kind: "press"})).To(BeFalse(), "press is rejected by a toggle switch")

		Expect(sw.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
		sw.SimulateLogic(manager, manager.Bridges())
		Expect(manager.Bridges().BridgesFor(vA)).To(HaveLen(1))
		Expect(manager.Bridges().BridgesFor(vB)).To(HaveLen(1))

		Expect(sw.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
		sw.SimulateLogic(manager, manager.Bridges())
		Expect(manager.Bridges().BridgesFor(vA)).To(BeEmpty())
	})

	It("marks both pins' tabs dirty on a successful interaction", func() {
		reg := ident.NewRegistry()
		id := reg.New()
		pinA, tabA := newPin(reg, id)
		pinB, tabB := newPin(reg, id)
		sw := NewSwitch(id, pinA.ID, tabA, pinB.ID, tabB, ModeToggle, "", false)
		manager := onePageManager(reg, sw)
		sw.SimStart(manager, manager.Bridges())

		Expect(sw.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
		sw.MarkDirtyOnInteract(manager)

		vA, _ := manager.VnetForTab(tabA)
		vB, _ := manager.VnetForTab(tabB)
		dirty := manager.Dirty().GetDirty()
		Expect(dirty).To(ContainElement(vA))
		Expect(dirty).To(ContainElement(vB))
	})

	It("rejects toggle and a repeated press in pushbutton mode, and accepts press then release", func() {
		reg := ident.NewRegistry()
		id := reg.New()
		pinA, tabA := newPin(reg, id)
		pinB, tabB := newPin(reg, id)
		sw := NewSwitch(id, pinA.ID, tabA, pinB.ID, tabB, ModePushbutton, "", false)
		manager := onePageManager(reg, sw)
		sw.SimStart(manager, manager.Bridges())

		Expect(sw.Interact(circuit.Action{Kind: "toggle"})).To(BeFalse())
		Expect(sw.Interact(circuit.Action{Kind: "press"})).To(BeTrue())
		Expect(sw.On()).To(BeTrue())
		Expect(sw.Interact(circuit.Action{Kind: "press"})).To(BeFalse(), "pressing an already-pressed pushbutton is rejected")
		Expect(sw.Interact(circuit.Action{Kind: "release"})).To(BeTrue())
		Expect(sw.On()).To(BeFalse())
	})
})
