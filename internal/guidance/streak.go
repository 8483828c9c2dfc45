package guidance

import "time"

// UpdateStreaks advances the streak counters after a recomputation of the
// daily tier. It is idempotent per local calendar day: completing, toggling
// and re-deriving within one day counts at most once (same guard as a
// habit tracker's last-completed-date check).
//
// The weekly streak increments once each time the daily streak crosses a
// multiple-of-7 boundary; LastWeeklyBoundary keeps repeated evaluations at
// the same value from double counting.
//
// Returns true when a counter changed.
func UpdateStreaks(tr *TrackerState, daily []ActionTask, now time.Time) bool {
	if !allCompleted(daily) {
		return false
	}
	if sameLocalDay(tr.LastStreakAt, now) {
		return false
	}

	tr.Streaks.Daily++
	tr.LastStreakAt = now

	if tr.Streaks.Daily%7 == 0 && tr.Streaks.Daily != tr.LastWeeklyBoundary {
		tr.Streaks.Weekly++
		tr.LastWeeklyBoundary = tr.Streaks.Daily
	}
	return true
}

func allCompleted(tasks []ActionTask) bool {
	if len(tasks) == 0 {
		return false
	}
	for i := range tasks {
		if tasks[i].State != StateCompleted {
			return false
		}
	}
	return true
}

func sameLocalDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	al := a.In(time.Local)
	bl := b.In(time.Local)
	return al.Year() == bl.Year() && al.YearDay() == bl.YearDay()
}
