package domain

import "time"

// DeliveryLog is one audit row per dispatch, including no-recipient
// dispatches which record zero targets.
type DeliveryLog struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Kind         string    `json:"kind" gorm:"index;not null"`
	Title        string    `json:"title"`
	TargetCount  int       `json:"target_count"`
	SuccessCount int       `json:"success_count"`
	FailureCount int       `json:"failure_count"`
	CreatedAt    time.Time `json:"created_at"`
}
