package component

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

// newMemory builds a 3-address-bit, 4-data-bit Memory with fresh pins,
// returning it alongside its control/address/data tab ids in fixed order.
func newMemory(reg *ident.Registry) (*Memory, ident.ID, ident.ID, ident.ID, []ident.ID, []ident.ID) {
	id := reg.New()
	total := 3 + 3 + 4
	pinIDs := make([]ident.ID, total)
	tabIDs := make([]ident.ID, total)
	for i := 0; i < total; i++ {
		p, t := newPin(reg, id)
		pinIDs[i], tabIDs[i] = p.ID, t
	}
	mem := NewMemory(id, pinIDs, tabIDs, 3, 4, "ADDR", "DATA", true, "")
	return mem, tabIDs[pinEnable], tabIDs[pinWrite], tabIDs[pinRead], tabIDs[3:6], tabIDs[6:10]
}

func driveBits(manager interface {
	PinForTab(ident.ID) *circuit.Pin
}, tabs []ident.ID, value uint32) {
	for i, t := range tabs {
		bit := (value >> uint(i)) & 1
		manager.PinForTab(t).Drive(t, signal.FromBit(int(bit)))
	}
}

var _ = Describe("Memory", func() {
	It("writes the data bus into the addressed cell, then reads it back on the data bus", func() {
		reg := ident.NewRegistry()
		mem, enableTab, writeTab, readTab, addrTabs, dataTabs := newMemory(reg)
		manager := onePageManager(reg, mem)
		mem.SimStart(manager, manager.Bridges())

		manager.PinForTab(enableTab).Drive(enableTab, signal.High)
		manager.PinForTab(writeTab).Drive(writeTab, signal.High)
		driveBits(manager, addrTabs, 2)
		driveBits(manager, dataTabs, 0b1010)
		settleVnets(manager)
		mem.SimulateLogic(manager, manager.Bridges())

		Expect(mem.LastOperation).To(Equal(OpWrite))
		Expect(mem.LastAddress).To(Equal(uint32(2)))
		Expect(mem.Cells()[2]).To(Equal(uint32(0b1010)))

		manager.PinForTab(writeTab).Float(writeTab)
		manager.PinForTab(readTab).Drive(readTab, signal.High)
		settleVnets(manager)
		mem.SimulateLogic(manager, manager.Bridges())

		Expect(mem.LastOperation).To(Equal(OpRead))
		Expect(mem.LastAddress).To(Equal(uint32(2)))
		Expect(mem.LastData).To(Equal(uint32(0b1010)))
		settleVnets(manager)
		for i, t := range dataTabs {
			state, ok := manager.StateForTab(t)
			Expect(ok).To(BeTrue())
			Expect(state.Bit()).To(Equal(int((uint32(0b1010) >> uint(i)) & 1)))
		}
	})

	It("floats the data bus and records no operation while disabled", func() {
		reg := ident.NewRegistry()
		mem, _, _, _, _, dataTabs := newMemory(reg)
		manager := onePageManager(reg, mem)
		mem.SimStart(manager, manager.Bridges())
		mem.SimulateLogic(manager, manager.Bridges())

		Expect(mem.LastOperation).To(Equal(OpNone))
		for _, t := range dataTabs {
			state, _ := manager.StateForTab(t)
			Expect(state).To(Equal(signal.Float))
		}
	})

	It("accepts an external memory_write interaction directly into a cell", func() {
		reg := ident.NewRegistry()
		mem, _, _, _, _, _ := newMemory(reg)
		Expect(mem.Interact(circuit.Action{Kind: "memory_write", Addr: 5, Value: 9})).To(BeTrue())
		Expect(mem.Cells()[5]).To(Equal(uint32(9)))
		Expect(mem.Interact(circuit.Action{Kind: "memory_write", Addr: 5, Value: 9})).To(BeFalse(), "writing the same value is a no-op, not a change")
	})

	It("clears volatile memory on SimStart but a non-volatile memory would not be seeded here", func() {
		reg := ident.NewRegistry()
		mem, _, _, _, _, _ := newMemory(reg)
		mem.SeedDefaults(map[uint32]uint32{1: 7})
		mem.SimStart(&fakeView{}, &fakeBridge{})
		Expect(mem.Cells()).To(BeEmpty())
	})
})

// fakeView/fakeBridge satisfy circuit.VnetView/circuit.BridgeView without a
// real vnet.Manager, for the one test above that only exercises SimStart.
type fakeView struct{}

func (fakeView) StateForTab(ident.ID) (signal.Signal, bool) { return signal.Float, false }
func (fakeView) VnetForTab(ident.ID) (ident.ID, bool)       { return ident.Empty, false }
func (fakeView) MarkTabDirty(ident.ID)                      {}
func (fakeView) MarkVnetDirty(ident.ID)                     {}

type fakeBridge struct{}

func (fakeBridge) AddBridge(a, b ident.ID) ident.ID  { return ident.Empty }
func (fakeBridge) RemoveBridge(id ident.ID)          {}
func (fakeBridge) BridgesFor(id ident.ID) []ident.ID { return nil }
