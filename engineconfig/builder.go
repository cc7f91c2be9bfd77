// Package engineconfig provides a fluent builder for engine.Engine,
// grounded on config.DeviceBuilder and core.Builder's
// With*/Build(name) shape.
package engineconfig

import (
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/relaysim/circuit"
	"github.com/sarchlab/relaysim/engine"
)

const (
	// DefaultMaxIterations bounds the per-step settle loop before an
	// OscillationError is raised (spec §4.8, §7).
	DefaultMaxIterations = 10000
	// DefaultTimeoutSeconds bounds total simulated time before a
	// TimeoutError is raised; 0 disables the timeout.
	DefaultTimeoutSeconds = 0.0
)

// Builder configures and constructs an engine.Engine.
type Builder struct {
	engine          sim.Engine
	freq            sim.Freq
	monitor         *monitoring.Monitor
	maxIterations   int
	timeoutSeconds  float64
	restartCallback func()
}

// NewBuilder returns a Builder with the default iteration and timeout
// budgets.
func NewBuilder() Builder {
	return Builder{
		maxIterations:  DefaultMaxIterations,
		timeoutSeconds: DefaultTimeoutSeconds,
	}
}

// WithEngine sets the akita event engine that drives ticking.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithFreq sets the akita tick frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMonitor registers a monitoring.Monitor to observe the engine; the
// document's components are not registered with it.
func (b Builder) WithMonitor(m *monitoring.Monitor) Builder {
	b.monitor = m
	return b
}

// WithMaxIterations overrides the per-step settle budget.
func (b Builder) WithMaxIterations(n int) Builder {
	if n <= 0 {
		panic("engineconfig: max iterations must be positive")
	}
	b.maxIterations = n
	return b
}

// WithTimeoutSeconds overrides the total simulated-time budget; 0
// disables the timeout.
func (b Builder) WithTimeoutSeconds(s float64) Builder {
	b.timeoutSeconds = s
	return b
}

// WithRestartCallback registers a callback invoked whenever a relay or
// clock timer requires the engine to re-settle outside normal tick
// cadence.
func (b Builder) WithRestartCallback(fn func()) Builder {
	b.restartCallback = fn
	return b
}

// Build constructs the Engine for doc, named name, and runs
// Initialize on it.
func (b Builder) Build(name string, doc *circuit.Document) (*engine.Engine, error) {
	if b.engine == nil {
		panic("engineconfig: WithEngine is required")
	}
	if b.freq == 0 {
		b.freq = 1 * sim.GHz
	}

	e := engine.New(name, doc, b.engine, b.freq, b.maxIterations, b.timeoutSeconds)
	if b.restartCallback != nil {
		e.SetRestartCallback(b.restartCallback)
	}
	if b.monitor != nil {
		e.SetMonitor(b.monitor)
	}

	if err := e.Initialize(); err != nil {
		return e, err
	}
	return e, nil
}
