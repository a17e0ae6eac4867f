package models

import "time"

type NotificationType string

const (
	NotificationXPEarned            NotificationType = "xp_earned"
	NotificationLevelUp             NotificationType = "level_up"
	NotificationAchievementUnlocked NotificationType = "achievement_unlocked"
	NotificationStreakBonus         NotificationType = "streak_bonus"
)

// Notification is the persisted outbox for the fire-and-forget user
// notification sink. Clients consume it via polling or the SSE stream.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    string           `gorm:"index;not null" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `json:"message"`
	Data      string           `gorm:"type:jsonb" json:"data,omitempty"`
	Read      bool             `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}
