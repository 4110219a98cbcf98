package probing

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// An InvalidTransitionError means a sequencing operation was called from a
// state it is not valid in, e.g. enabling probing twice without disabling in
// between. This is a caller bug, not a runtime condition to retry.
type InvalidTransitionError struct {
	Operation string
	State     State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s while the sequencer is %s", e.Operation, e.State)
}

func newInvalidTransitionError(operation string, state State) error {
	return &InvalidTransitionError{Operation: operation, State: state}
}

// A SceneTimeoutError means the planning scene did not converge to the
// expected object membership within the wait budget. The scene may be left in
// an intermediate state; no rollback is attempted.
type SceneTimeoutError struct {
	Name      string
	WantKnown bool
	Timeout   time.Duration
}

func (e *SceneTimeoutError) Error() string {
	expectation := "appear in"
	if !e.WantKnown {
		expectation = "disappear from"
	}
	return fmt.Sprintf("object %q did not %s the planning scene within %v", e.Name, expectation, e.Timeout)
}

// A PartialPlanError means the Cartesian planner achieved only part of the
// requested path. Callers that want to run the partial plan anyway should use
// PlanProbing and ExecutePlan directly.
type PartialPlanError struct {
	Fraction float64
}

func (e *PartialPlanError) Error() string {
	return fmt.Sprintf("planner achieved only %.2f of the requested path", e.Fraction)
}

// IsInterrupted reports whether err stems from external cancellation of a
// blocking call.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
