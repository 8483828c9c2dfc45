package guidance

import "time"

// ResetWindows are the cadence thresholds after which a tier's explicit
// completions revert to pending.
type ResetWindows struct {
	Daily   time.Duration
	Weekly  time.Duration
	Monthly time.Duration
}

func DefaultResetWindows() ResetWindows {
	return ResetWindows{
		Daily:   24 * time.Hour,
		Weekly:  7 * 24 * time.Hour,
		Monthly: 30 * 24 * time.Hour,
	}
}

// CheckAndReset lazily rolls tiers back to their un-completed baseline once a
// cadence window has elapsed. All three checks share the single LastResetAt
// clock: weekly and monthly resets only fire when that much time passed since
// the last check, a deliberate simplification of the source design.
//
// Daily condition-based tasks are re-evaluated fresh rather than force-reset;
// streak-derived progress is never cleared mid-cadence. The daily streak is
// zeroed when the elapsed window produced no all-done increment, or when more
// than one window passed unused.
//
// Returns true when a reset fired (and LastResetAt moved to now).
func CheckAndReset(tr *TrackerState, now time.Time, w ResetWindows) bool {
	if w.Daily <= 0 {
		w = DefaultResetWindows()
	}

	elapsed := now.Sub(tr.LastResetAt)
	if elapsed < w.Daily {
		return false
	}

	missedDay := tr.LastStreakAt.Before(tr.LastResetAt) || elapsed >= 2*w.Daily
	if missedDay {
		tr.Streaks.Daily = 0
		tr.LastWeeklyBoundary = 0
	}

	tr.clearTier(TierDaily)
	if elapsed >= w.Weekly {
		tr.clearTier(TierWeekly)
	}
	if elapsed >= w.Monthly {
		tr.clearTier(TierMonthly)
	}

	tr.LastResetAt = now
	return true
}

// clearTier drops the tier's recorded completions. Predicate-backed tasks
// that are still satisfied by business state come back completed on the next
// derivation with a fresh timestamp; everything else reverts to pending.
func (t *TrackerState) clearTier(tier Tier) {
	for id, c := range t.Completions {
		if c.Tier == tier {
			delete(t.Completions, id)
		}
	}
	for id, c := range t.Derived {
		if c.Tier == tier {
			delete(t.Derived, id)
		}
	}
}
