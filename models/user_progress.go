package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks gamified progression for each user (denormalized for performance)
type UserProgress struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"` // links to profile service

	// Core progression
	TotalXP        int64  `json:"total_xp" gorm:"default:0"`
	Level          int    `json:"level" gorm:"default:1"`
	CurrentLevelXP int64  `json:"current_level_xp" gorm:"default:0"`
	NextLevelXP    int64  `json:"next_level_xp" gorm:"default:100"`
	Title          string `json:"title" gorm:"default:'Newcomer'"` // Newcomer→Explorer→Enthusiast→Expert→Master→Legend

	// Streaks
	Streak                int        `json:"streak" gorm:"default:0"`
	LongestStreak         int        `json:"longest_streak" gorm:"default:0"`
	LastActiveDate        *time.Time `json:"last_active_date,omitempty"`
	StreakFreezeAvailable int        `json:"streak_freeze_available" gorm:"default:0"`
	StreakFreezeUsedAt    *time.Time `json:"streak_freeze_used_at,omitempty"` // single slot: at most one pending freeze

	// Milestones
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
