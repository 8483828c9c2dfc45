package guidance

import (
	"time"

	"go.uber.org/zap"

	"guidepost/internal/model"
)

// DefaultTierCapacity bounds each tier when no override is configured.
const DefaultTierCapacity = 3

// Deriver turns a business-state snapshot plus tracker state into the three
// task tiers. Derive is deterministic: fixed inputs always produce identical
// output, which is what keeps the reactive recompute loop from spinning.
type Deriver struct {
	capacity int
	log      *zap.Logger
}

func NewDeriver(capacity int, log *zap.Logger) *Deriver {
	if capacity <= 0 {
		capacity = DefaultTierCapacity
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Deriver{capacity: capacity, log: log}
}

func (d *Deriver) Derive(snap *model.Snapshot, tr *TrackerState, now time.Time) Tiers {
	return Tiers{
		Daily:   d.deriveTier(TierDaily, snap, tr, now),
		Weekly:  d.deriveTier(TierWeekly, snap, tr, now),
		Monthly: d.deriveTier(TierMonthly, snap, tr, now),
	}
}

// deriveTier builds one tier:
//
//  1. first-time candidates whose gate is still unmet, split into high
//     (important) and low priority; satisfied ones are omitted entirely
//  2. recurring candidates in declared catalog order
//  3. merge high, recurring, low; truncate to capacity
//
// A tier shorter than capacity is valid. Tasks that do not fit simply
// reappear once a first-time task is satisfied and frees its slot.
func (d *Deriver) deriveTier(tier Tier, snap *model.Snapshot, tr *TrackerState, now time.Time) []ActionTask {
	var high, low []ActionTask
	for _, tpl := range FirstTimeForTier(tier) {
		if firstTimeSatisfied(&tpl, snap, tr) {
			continue
		}
		task, ok := d.buildTask(&tpl, snap, tr, now)
		if !ok {
			continue
		}
		if tpl.HasTag(TagImportant) {
			high = append(high, task)
		} else {
			low = append(low, task)
		}
	}

	var recurring []ActionTask
	for _, tpl := range RecurringForTier(tier) {
		task, ok := d.buildTask(&tpl, snap, tr, now)
		if !ok {
			continue
		}
		recurring = append(recurring, task)
	}

	merged := make([]ActionTask, 0, len(high)+len(recurring)+len(low))
	merged = append(merged, high...)
	merged = append(merged, recurring...)
	merged = append(merged, low...)
	if len(merged) > d.capacity {
		merged = merged[:d.capacity]
	}
	return merged
}

func (d *Deriver) buildTask(tpl *TaskTemplate, snap *model.Snapshot, tr *TrackerState, now time.Time) (ActionTask, bool) {
	res, err := evaluate(tpl, snap, tr)
	if err != nil {
		// A missing predicate must never block the rest of the tier.
		d.log.Warn("skipping guidance task",
			zap.String("template", tpl.ID),
			zap.Error(err))
		return ActionTask{}, false
	}

	task := newTask(*tpl)
	task.State = res.State
	task.Progress = res.Progress

	// Explicit completions win over whatever the evaluator said.
	if c, ok := tr.Completions[tpl.ID]; ok {
		completeTaskAt(&task, c.CompletedAt)
		return task, true
	}

	switch {
	case res.State == StateCompleted:
		completeTaskAt(&task, d.derivedAt(tr, tpl.ID, now))
	case res.State == StateConditionBased && res.Progress != nil && res.Progress.Current >= res.Progress.Total:
		// Promote in the same pass; a task is never left condition_based
		// past its threshold.
		completeTaskAt(&task, d.derivedAt(tr, tpl.ID, now))
	}
	return task, true
}

// derivedAt pins the completion timestamp of derivation-produced completions
// so an unchanged re-derivation reproduces the same bytes.
func (d *Deriver) derivedAt(tr *TrackerState, taskID string, now time.Time) time.Time {
	if c, ok := tr.Derived[taskID]; ok {
		return c.CompletedAt
	}
	return now
}

func completeTaskAt(task *ActionTask, at time.Time) {
	task.State = StateCompleted
	task.CompletedAt = &at
}
