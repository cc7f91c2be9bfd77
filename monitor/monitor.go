// Package monitor optionally wires an akita/v4/monitoring.Monitor to
// expose live engine and component state over its built-in web server,
// the same registration sequence samples/simple_input/main.go uses for
// zeonica's driver and device: RegisterEngine, RegisterComponent,
// StartServer. This is a read-only diagnostics surface, not the
// schematic editor spec.md excludes.
package monitor

import (
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/relaysim/engine"
)

// Server wraps an akita Monitor scoped to one simulation run.
type Server struct {
	monitor *monitoring.Monitor
}

// New creates a Server backed by a fresh akita Monitor.
func New() *Server {
	return &Server{monitor: monitoring.NewMonitor()}
}

// RegisterEngine attaches akitaEngine (the sim.Engine driving the
// run's TickingComponents) to the monitor.
func (s *Server) RegisterEngine(akitaEngine sim.Engine) {
	s.monitor.RegisterEngine(akitaEngine)
}

// RegisterSimulation registers e with the monitor. relaysim's catalog
// components are plain circuit.Component values, not akita
// sim.Components, so only the Engine itself — the one akita
// TickingComponent in a run — is ever registered.
func (s *Server) RegisterSimulation(e *engine.Engine) {
	e.SetMonitor(s.monitor)
}

// StartServer starts the monitor's web server in the background,
// matching monitoring.Monitor.StartServer's own non-blocking contract.
func (s *Server) StartServer() {
	s.monitor.StartServer()
}
