package domain

import "time"

// Roles a user record can carry. Role decides which broadcasts a user receives.
const (
	RoleFarmer       = "farmer"
	RoleVeterinarian = "veterinarian"
	RoleGovernment   = "government"
)

// User mirrors a document in the users collection. FCMToken is absent for
// users that never registered a device; that makes them ineligible for push
// delivery, not invalid.
type User struct {
	ID                string    `firestore:"-" json:"id"`
	Name              string    `firestore:"name" json:"name"`
	Role              string    `firestore:"role" json:"role"`
	FCMToken          string    `firestore:"fcmToken" json:"-"`
	FCMTokenUpdatedAt time.Time `firestore:"fcmTokenUpdatedAt" json:"fcmTokenUpdatedAt"`
}
