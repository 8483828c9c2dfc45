package model

import "time"

// Readiness tracks the one-time store setup milestones. Each flag gates a
// first-time guidance task; once set the task stops appearing.
type Readiness struct {
	DANVerified      bool      `json:"dan_verified"`
	PhoneAdded       bool      `json:"phone_added"`
	PaymentsEnabled  bool      `json:"payments_enabled"`
	ProfileCompleted bool      `json:"profile_completed"`
	StoreCustomized  bool      `json:"store_customized"`
	UpdatedAt        time.Time `json:"updated_at"`
}
