package models

import "time"

// XPSource enumerates the cause of an XP grant
type XPSource string

const (
	XPSourcePurchase      XPSource = "purchase"
	XPSourceReview        XPSource = "review"
	XPSourceSale          XPSource = "sale"
	XPSourceDailyLogin    XPSource = "daily_login"
	XPSourceStreakBonus   XPSource = "streak_bonus"
	XPSourceAchievement   XPSource = "achievement"
	XPSourceProductUpload XPSource = "product_upload"
	XPSourceAdminGrant    XPSource = "admin_grant"
)

// XPTransaction is the append-only audit ledger. Rows are never updated or
// deleted; leaderboard aggregation reads straight off this table.
type XPTransaction struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Source      XPSource  `gorm:"type:varchar(32);not null;index" json:"source"`
	ReferenceID string    `gorm:"index" json:"reference_id,omitempty"` // e.g., order id, achievement id
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
