package component

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

var _ = Describe("DPDTRelay", func() {
	It("connects common to NC while released and switches to NO after its delay elapses", func() {
		reg := ident.NewRegistry()
		id := reg.New()
		var pinIDs, tabIDs [7]ident.ID
		for i := range pinIDs {
			p, t := newPin(reg, id)
			pinIDs[i], tabIDs[i] = p.ID, t
		}
		relay := NewDPDTRelay(id, pinIDs, tabIDs)
		manager := onePageManager(reg, relay)
		sched := &fakeScheduler{}
		relay.SetScheduler(sched)
		relay.SimStart(manager, manager.Bridges())

		vP1C, _ := manager.VnetForTab(tabIDs[pinP1C])
		vP1NC, _ := manager.VnetForTab(tabIDs[pinP1NC])
		vP1NO, _ := manager.VnetForTab(tabIDs[pinP1NO])
		Expect(manager.Bridges().BridgesFor(vP1C)).To(ContainElement(
			manager.Bridges().BridgesFor(vP1NC)[0]))

		manager.PinForTab(tabIDs[pinCoil]).Drive(tabIDs[pinCoil], signal.High)
		settleVnets(manager)
		relay.SimulateLogic(manager, manager.Bridges())
		Expect(relay.State()).To(Equal(Energizing))
		Expect(manager.Bridges().BridgesFor(vP1C)).To(ContainElement(
			manager.Bridges().BridgesFor(vP1NC)[0]), "still on NC until the delay elapses")

		sched.Fire()
		Expect(relay.State()).To(Equal(Energized))
		Expect(manager.Bridges().BridgesFor(vP1NC)).To(BeEmpty())
		Expect(manager.Bridges().BridgesFor(vP1NO)).NotTo(BeEmpty())
		Expect(sched.restarts).To(Equal(1))
	})

	It("aborts an in-flight energize if the coil drops before the delay elapses", func() {
		reg := ident.NewRegistry()
		id := reg.New()
		var pinIDs, tabIDs [7]ident.ID
		for i := range pinIDs {
			p, t := newPin(reg, id)
			pinIDs[i], tabIDs[i] = p.ID, t
		}
		relay := NewDPDTRelay(id, pinIDs, tabIDs)
		manager := onePageManager(reg, relay)
		sched := &fakeScheduler{}
		relay.SetScheduler(sched)
		relay.SimStart(manager, manager.Bridges())

		manager.PinForTab(tabIDs[pinCoil]).Drive(tabIDs[pinCoil], signal.High)
		settleVnets(manager)
		relay.SimulateLogic(manager, manager.Bridges())
		Expect(relay.State()).To(Equal(Energizing))

		manager.PinForTab(tabIDs[pinCoil]).Float(tabIDs[pinCoil])
		settleVnets(manager)
		relay.SimulateLogic(manager, manager.Bridges())
		Expect(relay.State()).To(Equal(Released))

		sched.Fire()
		Expect(relay.State()).To(Equal(Released), "the aborted callback must not fire late")
	})
})
