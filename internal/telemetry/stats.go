package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period            string            `json:"period"`
	EventCounts       map[EventType]int `json:"event_counts"`
	TaskCompletions   int               `json:"task_completions"`
	AutoCompletions   int               `json:"auto_completions"`
	CompletionsByTier map[string]int    `json:"completions_by_tier"`
	CompletionsByTask map[string]int    `json:"completions_by_task"`
	TierResets        int               `json:"tier_resets"`
	StreakAdvances    int               `json:"streak_advances"`
	StreakBreaks      int               `json:"streak_breaks"`
	BestDailyStreak   int               `json:"best_daily_streak"`
	ChangesByKind     map[string]int    `json:"changes_by_kind"`
}

// CalculateStats aggregates engine activity from raw events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:            since.Format("2006-01-02"),
		EventCounts:       make(map[EventType]int),
		CompletionsByTier: make(map[string]int),
		CompletionsByTask: make(map[string]int),
		ChangesByKind:     make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventTaskCompleted, EventTaskAutoDone:
			if event.Type == EventTaskAutoDone {
				stats.AutoCompletions++
			} else {
				stats.TaskCompletions++
			}
			if tier, ok := metadata["tier"].(string); ok {
				stats.CompletionsByTier[tier]++
			}
			if task, ok := metadata["task"].(string); ok {
				stats.CompletionsByTask[task]++
			}
		case EventTierReset:
			stats.TierResets++
		case EventStreakAdvanced:
			stats.StreakAdvances++
			if daily, ok := metadata["daily"].(float64); ok && int(daily) > stats.BestDailyStreak {
				stats.BestDailyStreak = int(daily)
			}
		case EventStreakBroken:
			stats.StreakBreaks++
		case EventStateChanged:
			if kind, ok := metadata["kind"].(string); ok {
				stats.ChangesByKind[kind]++
			}
		}
	}

	return stats, nil
}
