package circuit

// Scheduler is the timer/restart surface a handful of components
// (Clock, DPDTRelay) need beyond VnetView/BridgeView: a source of
// simulated time, a way to schedule a callback after a delay, and a way
// to nudge an idle engine awake. It is implemented by engine.Engine,
// backed by akita/v4/sim.Engine ticks, so relay and clock timers
// (SPEC_FULL §15) run as akita events rather than raw OS timers.
type Scheduler interface {
	// Now returns the current simulated time in seconds.
	Now() float64
	// ScheduleAfter invokes fn after delay seconds have elapsed in
	// simulated time, serialized with the engine's own iteration loop
	// (fn never races a running SimulateLogic call).
	ScheduleAfter(delaySeconds float64, fn func())
	// RequestRestart invokes the engine's optional restart callback, if
	// one is registered, to wake a caller that is polling is_stable()
	// between interactions (spec §4.7.3/§4.7.6, §9).
	RequestRestart()
}

// SchedulerAware is implemented by components that need a Scheduler
// (Clock, DPDTRelay). The engine calls SetScheduler on any component
// implementing this interface before calling SimStart for the first
// time.
type SchedulerAware interface {
	SetScheduler(s Scheduler)
}
