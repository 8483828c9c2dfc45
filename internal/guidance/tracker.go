package guidance

import (
	"slices"
	"time"
)

// Completion is one recorded task completion, explicit or derived.
type Completion struct {
	Tier        Tier      `json:"tier"`
	CompletedAt time.Time `json:"completed_at"`
}

// Streaks are the consecutive-completion counters.
type Streaks struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
}

// TrackerState is the durable root of the guidance engine. It is created once
// per store, hydrated from the persistence adapter on startup and mutated only
// through CompleteTask, the streak calculator and the reset scheduler.
type TrackerState struct {
	// Completions are explicit completions made through CompleteTask.
	Completions map[string]Completion `json:"completions"`

	// Derived are completions the derivation itself produced (a predicate
	// became true, or a condition-based task crossed its threshold). They
	// pin the completedAt timestamp so repeated derivations with unchanged
	// inputs stay byte-identical.
	Derived map[string]Completion `json:"derived"`

	// History is the append-only set of one-time action keys. It never
	// shrinks.
	History []string `json:"history"`

	Streaks     Streaks   `json:"streaks"`
	LastResetAt time.Time `json:"last_reset_at"`

	// LastStreakAt marks the last daily-streak increment; it guards against
	// double counting within one calendar day.
	LastStreakAt time.Time `json:"last_streak_at,omitzero"`

	// LastWeeklyBoundary is the daily-streak value at the last weekly
	// increment, so re-evaluations at the same multiple of 7 only count once.
	LastWeeklyBoundary int `json:"last_weekly_boundary,omitempty"`
}

func NewTrackerState(now time.Time) *TrackerState {
	return &TrackerState{
		Completions: map[string]Completion{},
		Derived:     map[string]Completion{},
		History:     []string{},
		LastResetAt: now,
	}
}

// normalize repairs nil maps after JSON decoding of older state.
func (t *TrackerState) normalize() {
	if t.Completions == nil {
		t.Completions = map[string]Completion{}
	}
	if t.Derived == nil {
		t.Derived = map[string]Completion{}
	}
	if t.History == nil {
		t.History = []string{}
	}
}

func (t *TrackerState) HasHistory(key string) bool {
	return slices.Contains(t.History, key)
}

// AppendHistory records a one-time action key. Appending an existing key is a
// no-op; history only ever grows.
func (t *TrackerState) AppendHistory(key string) {
	if key == "" || t.HasHistory(key) {
		return
	}
	t.History = append(t.History, key)
}

// Complete marks the task completed across whichever tier currently holds it.
// Unknown ids are a no-op; the engine must never fail on them. Re-completing
// refreshes CompletedAt but never duplicates the history key.
func (t *TrackerState) Complete(tiers *Tiers, taskID, actionKey string, now time.Time) bool {
	tier, ok := tiers.TierOf(taskID)
	if !ok {
		return false
	}
	t.Completions[taskID] = Completion{Tier: tier, CompletedAt: now}
	t.AppendHistory(actionKey)
	return true
}

// SyncDerived reconciles the derived-completion ledger with a freshly derived
// set of tiers: completions the derivation produced are pinned, completions
// whose condition no longer holds are dropped. Explicit completions are left
// alone. After a sync, deriving again from the same inputs reproduces the
// exact same tiers.
func (t *TrackerState) SyncDerived(tiers *Tiers) {
	seen := map[string]bool{}
	for _, tier := range []Tier{TierDaily, TierWeekly, TierMonthly} {
		for _, task := range tiers.ForTier(tier) {
			if task.State != StateCompleted || task.CompletedAt == nil {
				continue
			}
			if _, explicit := t.Completions[task.ID]; explicit {
				continue
			}
			seen[task.ID] = true
			t.Derived[task.ID] = Completion{Tier: tier, CompletedAt: *task.CompletedAt}
		}
	}
	for id := range t.Derived {
		if !seen[id] {
			delete(t.Derived, id)
		}
	}
}
