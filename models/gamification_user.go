package models

// GamificationUser mirrors profile-service users locally so leaderboard and
// achievement responses can carry display names without a cross-service call.
// Kept fresh by the profile sync worker.
type GamificationUser struct {
	ID                string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID    string  `gorm:"uniqueIndex;not null" json:"external_user_id"`
	Username          string  `gorm:"index" json:"username"`
	Email             string  `json:"email"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`

	Timestamps
}
