package guidance

import (
	"slices"
	"strings"
)

// Tier is a cadence bucket of tasks with its own reset window.
type Tier string

const (
	TierDaily   Tier = "daily"
	TierWeekly  Tier = "weekly"
	TierMonthly Tier = "monthly"
)

type TaskTag string

const (
	TagFirstTime   TaskTag = "first_time"
	TagHabit       TaskTag = "habit"
	TagInsight     TaskTag = "insight"
	TagAISuggested TaskTag = "ai_suggested"
	TagImportant   TaskTag = "important"
	TagHowTo       TaskTag = "how_to"
)

// Command is a tagged action string the UI interprets as navigation or
// command dispatch. The engine only produces these tokens.
type Command string

func NavigateTo(viewID string) Command { return Command("navigate:" + viewID) }
func RunAction(actionID string) Command { return Command("action:" + actionID) }
func OpenView(panelID string) Command  { return Command("view:" + panelID) }

// Kind returns the tag before the colon ("navigate", "action", "view").
func (c Command) Kind() string {
	kind, _, _ := strings.Cut(string(c), ":")
	return kind
}

// Target returns the id after the colon.
func (c Command) Target() string {
	_, target, _ := strings.Cut(string(c), ":")
	return target
}

// TaskTemplate is the static definition of a guidance task: copy,
// iconography, instructional steps and call-to-action. Pure data.
type TaskTemplate struct {
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

	Tier Tier `json:"tier"`

	// ActionKey is the one-time history key for first-time templates.
	ActionKey string `json:"action_key,omitempty"`
}

func (t *TaskTemplate) HasTag(tag TaskTag) bool {
	return slices.Contains(t.Tags, tag)
}

func (t *TaskTemplate) IsFirstTime() bool {
	return t.HasTag(TagFirstTime)
}
