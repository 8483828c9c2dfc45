package telemetry

import "time"

type EventType string

const (
	EventTaskCompleted  EventType = "task_completed"
	EventTaskAutoDone   EventType = "task_auto_completed"
	EventTierReset      EventType = "tier_reset"
	EventStreakAdvanced EventType = "streak_advanced"
	EventStreakBroken   EventType = "streak_broken"
	EventStateChanged   EventType = "state_changed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
