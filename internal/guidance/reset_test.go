package guidance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackerWithCompletions(at time.Time) *TrackerState {
	tr := NewTrackerState(at)
	tr.Completions[TaskReviewAISuggests] = Completion{Tier: TierWeekly, CompletedAt: at}
	tr.Completions[TaskReviewInsights] = Completion{Tier: TierMonthly, CompletedAt: at}
	tr.Completions[TaskAddProduct] = Completion{Tier: TierDaily, CompletedAt: at}
	tr.Derived[TaskConfirmOrders] = Completion{Tier: TierDaily, CompletedAt: at}
	return tr
}

func TestCheckAndReset_NoopInsideWindow(t *testing.T) {
	tr := trackerWithCompletions(testNow)
	tr.Streaks.Daily = 3

	fired := CheckAndReset(tr, testNow.Add(23*time.Hour), DefaultResetWindows())

	require.False(t, fired)
	assert.Contains(t, tr.Completions, TaskAddProduct)
	assert.Equal(t, 3, tr.Streaks.Daily)
	assert.True(t, tr.LastResetAt.Equal(testNow))
}

func TestCheckAndReset_DailyOnlyAfterTwoDays(t *testing.T) {
	tr := trackerWithCompletions(testNow)
	tr.Streaks.Daily = 4
	tr.Streaks.Weekly = 1

	// 50 hours without a check: daily rolls, weekly and monthly survive.
	fired := CheckAndReset(tr, testNow.Add(50*time.Hour), DefaultResetWindows())

	require.True(t, fired)
	assert.NotContains(t, tr.Completions, TaskAddProduct)
	assert.NotContains(t, tr.Derived, TaskConfirmOrders)
	assert.Contains(t, tr.Completions, TaskReviewAISuggests)
	assert.Contains(t, tr.Completions, TaskReviewInsights)

	// More than one daily window passed unused: the streak is gone, the
	// weekly counter earned earlier is kept.
	assert.Zero(t, tr.Streaks.Daily)
	assert.Equal(t, 1, tr.Streaks.Weekly)
}

func TestCheckAndReset_StreakSurvivesPromptCheck(t *testing.T) {
	tr := trackerWithCompletions(testNow)
	tr.Streaks.Daily = 4
	// The streak advanced inside the elapsed window.
	tr.LastStreakAt = testNow.Add(20 * time.Hour)

	fired := CheckAndReset(tr, testNow.Add(25*time.Hour), DefaultResetWindows())

	require.True(t, fired)
	assert.Equal(t, 4, tr.Streaks.Daily)
	assert.NotContains(t, tr.Completions, TaskAddProduct)
}

func TestCheckAndReset_StreakZeroedWhenDayMissed(t *testing.T) {
	tr := trackerWithCompletions(testNow)
	tr.Streaks.Daily = 4
	tr.LastWeeklyBoundary = 0
	// No streak increment since the last reset.
	tr.LastStreakAt = testNow.Add(-2 * time.Hour)

	fired := CheckAndReset(tr, testNow.Add(25*time.Hour), DefaultResetWindows())

	require.True(t, fired)
	assert.Zero(t, tr.Streaks.Daily)
}

func TestCheckAndReset_WeeklyWindowClearsWeeklyTier(t *testing.T) {
	tr := trackerWithCompletions(testNow)

	fired := CheckAndReset(tr, testNow.Add(8*24*time.Hour), DefaultResetWindows())

	require.True(t, fired)
	assert.NotContains(t, tr.Completions, TaskAddProduct)
	assert.NotContains(t, tr.Completions, TaskReviewAISuggests)
	assert.Contains(t, tr.Completions, TaskReviewInsights)
}

func TestCheckAndReset_MonthlyWindowClearsEverything(t *testing.T) {
	tr := trackerWithCompletions(testNow)

	fired := CheckAndReset(tr, testNow.Add(31*24*time.Hour), DefaultResetWindows())

	require.True(t, fired)
	assert.Empty(t, tr.Completions)
	assert.Empty(t, tr.Derived)
}

func TestCheckAndReset_HistorySurvivesEveryReset(t *testing.T) {
	tr := trackerWithCompletions(testNow)
	tr.AppendHistory("verify_dan")
	tr.AppendHistory("enable_payment")

	CheckAndReset(tr, testNow.Add(31*24*time.Hour), DefaultResetWindows())

	assert.Equal(t, []string{"verify_dan", "enable_payment"}, tr.History)
}

func TestCheckAndReset_MovesSharedClock(t *testing.T) {
	tr := trackerWithCompletions(testNow)
	at := testNow.Add(26 * time.Hour)

	require.True(t, CheckAndReset(tr, at, DefaultResetWindows()))
	assert.True(t, tr.LastResetAt.Equal(at))

	// The next daily window measures from the reset that just fired.
	assert.False(t, CheckAndReset(tr, at.Add(23*time.Hour), DefaultResetWindows()))
}
