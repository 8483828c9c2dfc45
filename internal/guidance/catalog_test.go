package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidepost/internal/model"
)

func TestCatalog_IDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, tpl := range Catalog() {
		require.False(t, seen[tpl.ID], "duplicate template id %q", tpl.ID)
		seen[tpl.ID] = true
	}
	assert.Len(t, seen, 12)
}

func TestCatalog_EveryTemplateEvaluates(t *testing.T) {
	snap := model.Snapshot{}
	tr := NewTrackerState(testNow)
	for _, tpl := range Catalog() {
		_, err := evaluate(&tpl, &snap, tr)
		assert.NoError(t, err, "template %q has no predicate", tpl.ID)
	}
}

func TestCatalog_TierComposition(t *testing.T) {
	assert.Len(t, RecurringForTier(TierDaily), 3)
	assert.Empty(t, FirstTimeForTier(TierDaily))

	assert.Len(t, RecurringForTier(TierWeekly), 2)
	assert.Len(t, FirstTimeForTier(TierWeekly), 3)

	assert.Len(t, RecurringForTier(TierMonthly), 2)
	assert.Len(t, FirstTimeForTier(TierMonthly), 2)
}

func TestCatalog_FirstTimeTemplatesCarryActionKeys(t *testing.T) {
	for _, tpl := range Catalog() {
		if tpl.IsFirstTime() {
			assert.NotEmpty(t, tpl.ActionKey, "first-time template %q needs an action key", tpl.ID)
		} else {
			assert.Empty(t, tpl.ActionKey, "recurring template %q must not carry an action key", tpl.ID)
		}
	}
}

func TestCatalog_CommandsAreWellFormed(t *testing.T) {
	valid := map[string]bool{"navigate": true, "action": true, "view": true}
	for _, tpl := range Catalog() {
		assert.True(t, valid[tpl.CTAAction.Kind()],
			"template %q has malformed command %q", tpl.ID, tpl.CTAAction)
		assert.NotEmpty(t, tpl.CTAAction.Target(), "template %q command has no target", tpl.ID)
	}
}

func TestCommand_KindAndTarget(t *testing.T) {
	assert.Equal(t, "navigate", NavigateTo("products").Kind())
	assert.Equal(t, "products", NavigateTo("products").Target())
	assert.Equal(t, "action", RunAction("sync").Kind())
	assert.Equal(t, "view", OpenView("insights").Kind())
}

func TestTemplateByID(t *testing.T) {
	tpl, ok := TemplateByID(TaskWeeklyHabit)
	require.True(t, ok)
	assert.Equal(t, TierWeekly, tpl.Tier)
	assert.True(t, tpl.HasTag(TagHabit))

	_, ok = TemplateByID("nope")
	assert.False(t, ok)
}
