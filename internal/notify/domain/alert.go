package domain

import "time"

// Alert severity levels.
const (
	AlertTypeInfo    = "info"
	AlertTypeWarning = "warning"
	AlertTypeAlert   = "alert"
)

// Alert is a farm alert addressed to a single user, stored in the alerts
// collection. Immutable after creation.
type Alert struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	CreatedByName string    `json:"createdByName"`
	CreatedAt     time.Time `json:"createdAt"`
}
