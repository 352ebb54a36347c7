package launch

import (
	"fmt"
	"time"

	"github.com/example/launchpad/internal/apperr"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	err     error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return fmt.Errorf("%s", r.Reason)
}

func deny(err error) GuardResult {
	return GuardResult{Allowed: false, Reason: err.Error(), err: err}
}

// AdvanceContext provides context for the phase advance guard.
type AdvanceContext struct {
	ProjectID    string
	Status       string
	CurrentPhase string
	PhaseOrder   []string
	OpenCritical []string // texts of incomplete CRITICAL items in CurrentPhase
}

// CanAdvance evaluates whether a project may move to its next phase.
// Rules:
// - Project must not be complete
// - No incomplete CRITICAL item may remain in the current phase
// - The current phase must not be the last one
func CanAdvance(ctx AdvanceContext) GuardResult {
	if ctx.Status == StatusComplete {
		return deny(&apperr.AlreadyFinalError{})
	}

	if len(ctx.OpenCritical) > 0 {
		blocking := append([]string(nil), ctx.OpenCritical...)
		return deny(&apperr.PhaseBlockedError{Phase: ctx.CurrentPhase, Blocking: blocking})
	}

	if _, ok := NextPhase(ctx.PhaseOrder, ctx.CurrentPhase); !ok {
		return deny(&apperr.AlreadyFinalError{Phase: ctx.CurrentPhase})
	}

	return GuardResult{Allowed: true}
}

// Transition is the state a project moves into.
type Transition struct {
	Status       string
	CurrentPhase string
	CompletedAt  *time.Time
}

// ApplyAdvance evaluates the advance guard and, when allowed, returns the
// next phase with its slug as status.
func ApplyAdvance(ctx AdvanceContext) (Transition, GuardResult) {
	result := CanAdvance(ctx)
	if !result.Allowed {
		return Transition{Status: ctx.Status, CurrentPhase: ctx.CurrentPhase}, result
	}
	next, _ := NextPhase(ctx.PhaseOrder, ctx.CurrentPhase)
	return Transition{Status: Slug(next), CurrentPhase: next}, result
}

// ApplyComplete marks a project complete regardless of checklist state.
// The current phase is left where it was.
func ApplyComplete(currentPhase string, now time.Time) Transition {
	return Transition{
		Status:       StatusComplete,
		CurrentPhase: currentPhase,
		CompletedAt:  &now,
	}
}

// ApplyReset returns a project to setup in its first phase. fallback is used
// when the checklist has no items.
func ApplyReset(order []string, fallback string) Transition {
	first := fallback
	if len(order) > 0 {
		first = order[0]
	}
	return Transition{Status: StatusSetup, CurrentPhase: first}
}
