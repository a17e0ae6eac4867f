package models

import "time"

// LeaderboardPeriod is the aggregation window for a ranking snapshot
type LeaderboardPeriod string

const (
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
	PeriodAllTime LeaderboardPeriod = "all_time"
)

// LeaderboardCategory selects which metric a snapshot ranks on
type LeaderboardCategory string

const (
	CategoryBuyerXP  LeaderboardCategory = "buyer_xp"
	CategoryReviewer LeaderboardCategory = "reviewer"
)

// LeaderboardEntry — one ranked row per (user, period, category, period_start).
// Fully replaced by the hourly ranker, never incrementally patched.
type LeaderboardEntry struct {
	ID          string              `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      string              `gorm:"uniqueIndex:idx_lb_natural;not null" json:"user_id"`
	Period      LeaderboardPeriod   `gorm:"uniqueIndex:idx_lb_natural;type:varchar(16);not null" json:"period"`
	Category    LeaderboardCategory `gorm:"uniqueIndex:idx_lb_natural;type:varchar(16);not null" json:"category"`
	PeriodStart time.Time           `gorm:"uniqueIndex:idx_lb_natural;not null" json:"period_start"`
	PeriodEnd   time.Time           `json:"period_end"`
	Score       int64               `json:"score"`
	Rank        int                 `gorm:"index" json:"rank"` // dense, 1-based within (period, category)
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
