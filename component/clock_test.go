package component

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/ident"
	"github.com/sarchlab/relaysim/signal"
)

var _ = Describe("Clock", func() {
	It("alternates its output pin's drive each time its scheduled tick fires", func() {
		reg := ident.NewRegistry()
		id := reg.New()
		pin, tab := newPin(reg, id)
		clk := NewClock(id, pin.ID, tab, Freq1Hz, true)
		manager := onePageManager(reg, clk)

		sched := &fakeScheduler{}
		clk.SetScheduler(sched)
		clk.SimStart(manager, manager.Bridges())

		Expect(clk.Phase()).To(BeFalse())
		Expect(sched.pending).To(HaveLen(1), "enable_on_sim_start arms the first tick")

		sched.Fire()
		settleVnets(manager)
		Expect(clk.Phase()).To(BeTrue())
		state, ok := manager.StateForTab(tab)
		Expect(ok).To(BeTrue())
		Expect(state).To(Equal(signal.High))
		Expect(sched.restarts).To(Equal(1))

		sched.Fire()
		Expect(clk.Phase()).To(BeFalse())
	})

	It("rejects any interaction kind but toggle, and accepts toggle", func() {
		reg := ident.NewRegistry()
		id := reg.New()
		pin, tab := newPin(reg, id)
		clk := NewClock(id, pin.ID, tab, Freq2Hz, false)
		manager := onePageManager(reg, clk)
		clk.SimStart(manager, manager.Bridges())

		Expect(clk.Interact(circuit.Action{Kind: "press"})).To(BeFalse())
		Expect(clk.Interact(circuit.Action{Kind: "toggle"})).To(BeTrue())
	})

	It("derives a positive half-period for every configured frequency", func() {
		for _, f := range []Frequency{Freq4Hz, Freq2Hz, Freq1Hz, Period2s, Period4s, Period8s} {
			Expect(f.PeriodSeconds()).To(BeNumerically(">", 0))
		}
	})
})
