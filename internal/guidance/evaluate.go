package guidance

import (
	"errors"
	"fmt"

	"guidepost/internal/model"
)

// ErrUnknownTemplate means a template id has no predicate. That is a
// programming error; derivation logs it and skips the task.
var ErrUnknownTemplate = errors.New("unknown guidance template")

// evalResult is the evaluator's verdict for one template.
type evalResult struct {
	State    TaskState
	Progress *Progress
}

const (
	weeklyHabitTarget  = 7
	monthlyHabitTarget = 4
)

// evaluate maps a business-state snapshot to a template's runtime state.
// Pure and deterministic: no side effects, no clock reads.
func evaluate(tpl *TaskTemplate, snap *model.Snapshot, tr *TrackerState) (evalResult, error) {
	switch tpl.ID {
	case TaskAddProduct:
		return boolResult(snap.ProductCount > 0), nil

	case TaskConfirmOrders:
		return boolResult(snap.OrdersAwaitingMerchant() == 0), nil

	case TaskRespondMessages:
		return boolResult(snap.UnreadConversations() == 0), nil

	case TaskWeeklyHabit:
		return streakResult(tr.Streaks.Daily, weeklyHabitTarget, "days"), nil

	case TaskMonthlyHabit:
		return streakResult(tr.Streaks.Weekly, monthlyHabitTarget, "weeks"), nil

	case TaskReviewAISuggests, TaskReviewInsights:
		// Completion cannot be inferred from business state; only an
		// explicit CompleteTask call finishes these.
		return evalResult{State: StatePending}, nil
	}

	if tpl.IsFirstTime() {
		// First-time tasks are either shown pending or omitted entirely;
		// the gate lives in firstTimeSatisfied.
		return evalResult{State: StatePending}, nil
	}

	return evalResult{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, tpl.ID)
}

// firstTimeSatisfied reports whether a one-time onboarding task is done for
// good: its action key was recorded, or the readiness flag it tracks is set.
// Satisfied tasks are omitted from derivation, never force-completed.
func firstTimeSatisfied(tpl *TaskTemplate, snap *model.Snapshot, tr *TrackerState) bool {
	if tpl.ActionKey != "" && tr.HasHistory(tpl.ActionKey) {
		return true
	}
	switch tpl.ID {
	case TaskVerifyDAN:
		return snap.Readiness.DANVerified
	case TaskAddPhone:
		return snap.Readiness.PhoneAdded
	case TaskEnablePayment:
		return snap.Readiness.PaymentsEnabled
	case TaskCompleteProfile:
		return snap.Readiness.ProfileCompleted
	case TaskCustomizeStore:
		return snap.Readiness.StoreCustomized
	}
	return false
}

func boolResult(done bool) evalResult {
	if done {
		return evalResult{State: StateCompleted}
	}
	return evalResult{State: StatePending}
}

func streakResult(current, total int, unit string) evalResult {
	if current > total {
		current = total
	}
	if current < 0 {
		current = 0
	}
	return evalResult{
		State:    StateConditionBased,
		Progress: &Progress{Current: current, Total: total, Unit: unit},
	}
}
