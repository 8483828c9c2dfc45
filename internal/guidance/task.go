package guidance

import "time"

// TaskState is the runtime state of a derived task.
//
// Invariants:
//   - CompletedAt is set iff State == StateCompleted.
//   - Progress is set only for condition-rooted tasks; it is kept when such a
//     task is promoted to completed so the UI can render the final ratio.
type TaskState string

const (
	StatePending        TaskState = "pending"
	StateCompleted      TaskState = "completed"
	StateConditionBased TaskState = "condition_based"
)

// Progress is the numeric ratio behind a condition-based task.
type Progress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Unit    string `json:"unit"`
}

// ActionTask is one derived task instance. Instances are immutable per
// derivation cycle; mutation happens in the tracker, never on the task.
type ActionTask struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Tags         []TaskTag `json:"tags,omitempty"`
	Icon         string    `json:"icon"`
	WhyItMatters string    `json:"why_it_matters"`
	HowTo        []string  `json:"how_to,omitempty"`
	CTAText      string    `json:"cta_text"`
	CTAAction    Command   `json:"cta_action"`
	Impact       string    `json:"impact"`
	AISuggestion string    `json:"ai_suggestion,omitempty"`

	Tier        Tier       `json:"tier"`
	State       TaskState  `json:"state"`
	Progress    *Progress  `json:"progress,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Tiers holds the three derived task lists.
type Tiers struct {
	Daily   []ActionTask `json:"daily"`
	Weekly  []ActionTask `json:"weekly"`
	Monthly []ActionTask `json:"monthly"`
}

func (t *Tiers) ForTier(tier Tier) []ActionTask {
	switch tier {
	case TierDaily:
		return t.Daily
	case TierWeekly:
		return t.Weekly
	case TierMonthly:
		return t.Monthly
	}
	return nil
}

// TierOf reports which tier currently holds the task id.
func (t *Tiers) TierOf(taskID string) (Tier, bool) {
	for _, tier := range []Tier{TierDaily, TierWeekly, TierMonthly} {
		for _, task := range t.ForTier(tier) {
			if task.ID == taskID {
				return tier, true
			}
		}
	}
	return "", false
}

func newTask(tpl TaskTemplate) ActionTask {
	return ActionTask{
		ID:           tpl.ID,
		Title:        tpl.Title,
		Description:  tpl.Description,
		Tags:         tpl.Tags,
		Icon:         tpl.Icon,
		WhyItMatters: tpl.WhyItMatters,
		HowTo:        tpl.HowTo,
		CTAText:      tpl.CTAText,
		CTAAction:    tpl.CTAAction,
		Impact:       tpl.Impact,
		AISuggestion: tpl.AISuggestion,
		Tier:         tpl.Tier,
		State:        StatePending,
	}
}
