package domain

import "time"

// Treatment request lifecycle states. The only transition the notification
// layer reacts to is the one into StatusCompleted.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// TreatmentRequest is a farmer's request for veterinary help, stored in the
// vetRequests collection. Read-only to this layer.
type TreatmentRequest struct {
	ID         string `json:"id"`
	FarmerID   string `json:"farmerId"`
	FarmerName string `json:"farmerName"`
	AnimalType string `json:"animalType"`
	Category   string `json:"category"`
	Symptoms   string `json:"symptoms"`
	Urgency    string `json:"urgency"`
	Status     string `json:"status"`
}

// TreatmentReport is filed once by a veterinarian when a request completes,
// stored in the vetReports collection. Immutable after creation.
type TreatmentReport struct {
	ID         string    `json:"id"`
	FarmerID   string    `json:"farmerId"`
	VetName    string    `json:"vetName"`
	AnimalType string    `json:"animalType"`
	Diagnosis  string    `json:"diagnosis"`
	Treatment  string    `json:"treatment"`
	CreatedAt  time.Time `json:"createdAt"`
}
