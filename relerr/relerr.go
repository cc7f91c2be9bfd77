// Package relerr defines the sentinel error categories a simulation run
// or document load can fail with (spec §7). Callers match with
// errors.Is/errors.As; every constructor wraps a shared sentinel so a
// single errors.Is check covers every instance of that category.
package relerr

import (
	"errors"
	"fmt"
)

// Sentinels identify the error category independent of message text.
var (
	ErrLoad                = errors.New("relaysim: load error")
	ErrTopologyWarning     = errors.New("relaysim: topology warning")
	ErrOscillation         = errors.New("relaysim: oscillation detected")
	ErrTimeout             = errors.New("relaysim: simulation timeout")
	ErrComponentLogic      = errors.New("relaysim: component logic error")
	ErrInteractionRejected = errors.New("relaysim: interaction rejected")
)

// LoadError reports a malformed or incompatible document (spec §6.1,
// §7 LOAD_ERROR): bad version, duplicate identifiers, unresolved
// references that can't be downgraded to a topology warning.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string { return fmt.Sprintf("load error: %s", e.Reason) }
func (e *LoadError) Unwrap() error { return ErrLoad }

// NewLoadError constructs a LoadError.
func NewLoadError(reason string) error { return &LoadError{Reason: reason} }

// TopologyWarning reports a non-fatal wiring oddity surfaced during
// VNET construction (spec §4.1, §4.2, §7 TOPOLOGY_WARNING): an
// unresolved wire endpoint, a link name used by only one component.
type TopologyWarning struct {
	Reason string
}

func (e *TopologyWarning) Error() string { return fmt.Sprintf("topology warning: %s", e.Reason) }
func (e *TopologyWarning) Unwrap() error { return ErrTopologyWarning }

// NewTopologyWarning constructs a TopologyWarning.
func NewTopologyWarning(reason string) error { return &TopologyWarning{Reason: reason} }

// OscillationError reports that the dirty VNET set failed to settle
// within the configured iteration budget for one simulated step (spec
// §4.8, §7 OSCILLATION_ERROR) — e.g. two relays fighting over the same
// bridge.
type OscillationError struct {
	Iterations int
}

func (e *OscillationError) Error() string {
	return fmt.Sprintf("oscillation: did not settle after %d iterations", e.Iterations)
}
func (e *OscillationError) Unwrap() error { return ErrOscillation }

// NewOscillationError constructs an OscillationError.
func NewOscillationError(iterations int) error {
	return &OscillationError{Iterations: iterations}
}

// TimeoutError reports that a run exceeded its wall-clock or simulated
// time budget (spec §7 TIMEOUT_ERROR) without reaching either stability
// or an OscillationError.
type TimeoutError struct {
	Seconds float64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %.3fs", e.Seconds)
}
func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// NewTimeoutError constructs a TimeoutError.
func NewTimeoutError(seconds float64) error { return &TimeoutError{Seconds: seconds} }

// ComponentLogicError wraps a panic or invariant violation raised from
// within a single Component's SimulateLogic, tagged with the offending
// component so the engine can report which part of the circuit failed
// (spec §7 COMPONENT_LOGIC_ERROR).
type ComponentLogicError struct {
	ComponentID string
	Cause       error
}

func (e *ComponentLogicError) Error() string {
	return fmt.Sprintf("component %s: %v", e.ComponentID, e.Cause)
}
func (e *ComponentLogicError) Unwrap() error { return ErrComponentLogic }

// NewComponentLogicError constructs a ComponentLogicError.
func NewComponentLogicError(componentID string, cause error) error {
	return &ComponentLogicError{ComponentID: componentID, Cause: cause}
}

// InteractionRejected reports that an external Interact call was
// refused by the target component (spec §6.4, §7
// INTERACTION_REJECTED) — e.g. a toggle sent to a pushbutton switch.
type InteractionRejected struct {
	ComponentID string
	Kind        string
}

func (e *InteractionRejected) Error() string {
	return fmt.Sprintf("interaction %q rejected by component %s", e.Kind, e.ComponentID)
}
func (e *InteractionRejected) Unwrap() error { return ErrInteractionRejected }

// NewInteractionRejected constructs an InteractionRejected.
func NewInteractionRejected(componentID, kind string) error {
	return &InteractionRejected{ComponentID: componentID, Kind: kind}
}
