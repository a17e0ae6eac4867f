package models

import "time"

// RequirementType tags the metric an achievement's progress is computed from
type RequirementType string

const (
	RequirementPurchaseCount      RequirementType = "purchase_count"
	RequirementTotalSpend         RequirementType = "total_spend"
	RequirementReviewCount        RequirementType = "review_count"
	RequirementHelpfulVotes       RequirementType = "helpful_votes"
	RequirementSalesCount         RequirementType = "sales_count"
	RequirementSalesRevenue       RequirementType = "sales_revenue"
	RequirementProductCount       RequirementType = "product_count"
	RequirementStreakDays         RequirementType = "streak_days"
	RequirementDistinctCategories RequirementType = "distinct_categories_purchased"
	RequirementOwnedProducts      RequirementType = "owned_products"
	RequirementPurchaseTimeRange  RequirementType = "purchase_time_range"
)

// TriggerCategory is the domain-event class used to select which
// achievements get re-evaluated
type TriggerCategory string

const (
	TriggerPurchase      TriggerCategory = "purchase"
	TriggerReview        TriggerCategory = "review"
	TriggerSale          TriggerCategory = "sale"
	TriggerLogin         TriggerCategory = "login"
	TriggerProductUpload TriggerCategory = "product_upload"
)

// TriggerRequirementTypes maps each trigger to the requirement types it can move
var TriggerRequirementTypes = map[TriggerCategory][]RequirementType{
	TriggerPurchase: {
		RequirementPurchaseCount,
		RequirementTotalSpend,
		RequirementDistinctCategories,
		RequirementOwnedProducts,
		RequirementPurchaseTimeRange,
	},
	TriggerReview: {
		RequirementReviewCount,
		RequirementHelpfulVotes,
	},
	TriggerSale: {
		RequirementSalesCount,
		RequirementSalesRevenue,
	},
	TriggerLogin: {
		RequirementStreakDays,
	},
	TriggerProductUpload: {
		RequirementProductCount,
	},
}

// Requirement is the tagged rule structure stored on a definition.
// Threshold-style types use Threshold; purchase_time_range uses the
// StartHour/EndHour window instead.
type Requirement struct {
	Type      RequirementType `json:"type"`
	Threshold float64         `json:"threshold,omitempty"`
	StartHour int             `json:"start,omitempty"`
	EndHour   int             `json:"end,omitempty"`
}

// AchievementDefinition: admin-managed catalog entry. The engine only reads these.
type AchievementDefinition struct {
	ID          string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Slug        string      `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `json:"description"`
	Category    string      `gorm:"type:varchar(32);index" json:"category"` // buyer, reviewer, seller, engagement
	Tier        string      `gorm:"type:varchar(16);default:'bronze'" json:"tier"`
	Requirement Requirement `gorm:"serializer:json;type:jsonb" json:"requirement"`
	XPReward    int64       `gorm:"default:0" json:"xp_reward"`
	IconURL     string      `gorm:"type:text" json:"icon_url"`
	IsSecret    bool        `gorm:"default:false" json:"is_secret"`
	IsActive    bool        `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserAchievementProgress: one row per user×achievement, created on demand.
// Once UnlockedAt is set the row is terminal and never re-evaluated.
type UserAchievementProgress struct {
	ID            string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID        string     `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	AchievementID string     `gorm:"uniqueIndex:idx_user_achievement;not null" json:"achievement_id"`
	Progress      float64    `gorm:"type:decimal(5,2);default:0" json:"progress"` // 0–100, two decimals
	UnlockedAt    *time.Time `json:"unlocked_at,omitempty"`
	Metadata      string     `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// AchievementCatalog seeds the definitions table at boot (upsert by slug).
// Admin endpoints can extend the catalog at runtime.
var AchievementCatalog = []AchievementDefinition{
	{
		Slug:        "first-purchase",
		Name:        "First Purchase",
		Description: "Complete your first order",
		Category:    "buyer",
		Tier:        "bronze",
		Requirement: Requirement{Type: RequirementPurchaseCount, Threshold: 1},
		XPReward:    50,
	},
	{
		Slug:        "frequent-buyer",
		Name:        "Frequent Buyer",
		Description: "Complete 10 orders",
		Category:    "buyer",
		Tier:        "silver",
		Requirement: Requirement{Type: RequirementPurchaseCount, Threshold: 10},
		XPReward:    200,
	},
	{
		Slug:        "big-spender",
		Name:        "Big Spender",
		Description: "Spend a total of $500",
		Category:    "buyer",
		Tier:        "gold",
		Requirement: Requirement{Type: RequirementTotalSpend, Threshold: 500},
		XPReward:    500,
	},
	{
		Slug:        "category-explorer",
		Name:        "Category Explorer",
		Description: "Buy from 5 different categories",
		Category:    "buyer",
		Tier:        "silver",
		Requirement: Requirement{Type: RequirementDistinctCategories, Threshold: 5},
		XPReward:    150,
	},
	{
		Slug:        "collector",
		Name:        "Collector",
		Description: "Own 25 products",
		Category:    "buyer",
		Tier:        "gold",
		Requirement: Requirement{Type: RequirementOwnedProducts, Threshold: 25},
		XPReward:    400,
	},
	{
		Slug:        "night-owl",
		Name:        "Night Owl",
		Description: "Complete a purchase between midnight and 5 AM",
		Category:    "buyer",
		Tier:        "bronze",
		Requirement: Requirement{Type: RequirementPurchaseTimeRange, StartHour: 0, EndHour: 5},
		XPReward:    75,
		IsSecret:    true,
	},
	{
		Slug:        "first-review",
		Name:        "First Review",
		Description: "Write your first review",
		Category:    "reviewer",
		Tier:        "bronze",
		Requirement: Requirement{Type: RequirementReviewCount, Threshold: 1},
		XPReward:    25,
	},
	{
		Slug:        "trusted-voice",
		Name:        "Trusted Voice",
		Description: "Collect 50 helpful votes on your reviews",
		Category:    "reviewer",
		Tier:        "gold",
		Requirement: Requirement{Type: RequirementHelpfulVotes, Threshold: 50},
		XPReward:    300,
	},
	{
		Slug:        "first-sale",
		Name:        "First Sale",
		Description: "Make your first sale",
		Category:    "seller",
		Tier:        "bronze",
		Requirement: Requirement{Type: RequirementSalesCount, Threshold: 1},
		XPReward:    100,
	},
	{
		Slug:        "top-seller",
		Name:        "Top Seller",
		Description: "Earn $1000 in sales",
		Category:    "seller",
		Tier:        "platinum",
		Requirement: Requirement{Type: RequirementSalesRevenue, Threshold: 1000},
		XPReward:    1000,
	},
	{
		Slug:        "prolific-creator",
		Name:        "Prolific Creator",
		Description: "Publish 10 products",
		Category:    "seller",
		Tier:        "silver",
		Requirement: Requirement{Type: RequirementProductCount, Threshold: 10},
		XPReward:    250,
	},
	{
		Slug:        "week-streak",
		Name:        "Committed",
		Description: "Log in 7 days in a row",
		Category:    "engagement",
		Tier:        "bronze",
		Requirement: Requirement{Type: RequirementStreakDays, Threshold: 7},
		XPReward:    100,
	},
	{
		Slug:        "month-streak",
		Name:        "Dedicated",
		Description: "Log in 30 days in a row",
		Category:    "engagement",
		Tier:        "gold",
		Requirement: Requirement{Type: RequirementStreakDays, Threshold: 30},
		XPReward:    500,
	},
}
