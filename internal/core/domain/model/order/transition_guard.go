package order

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatus is returned when a target status code has no catalog entry.
	ErrUnknownStatus = errors.New("unknown status code")

	// ErrTransitionNotAllowed is returned when the transition graph forbids
	// moving from the current status to the target status.
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)

// TransitionGuard validates proposed status changes against the catalog's
// transition graph. It is pure and stateless; the aggregate consults it on
// every guarded change request.
//
// The guard is deliberately not consulted by ForceSetStatus: forced
// transitions are a named, privileged path for migration and administrative
// overrides, and bypassing the adjacency check there is explicit rather than
// hidden inside the guard.
type TransitionGuard struct{}

// NewTransitionGuard creates a transition guard.
func NewTransitionGuard() TransitionGuard {
	return TransitionGuard{}
}

// Check returns nil when the transition from current to target is permitted:
// either target is in current's allowed-next set, or current equals target
// (no-op transitions are permitted and produce no event).
//
// Transitioning into a status without a catalog entry fails with
// ErrUnknownStatus. A declared but non-adjacent target fails with
// ErrTransitionNotAllowed.
func (g TransitionGuard) Check(current, target Status) error {
	if current == target {
		return nil
	}
	if !target.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(target))
	}
	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: %q -> %q", ErrTransitionNotAllowed, string(current), string(target))
	}
	return nil
}
