package models

import "time"

// Read-side rows owned by the checkout/review/catalog services. This service
// never writes them; the stats collaborator and the reviewer leaderboard
// aggregate over them.

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusRefunded  OrderStatus = "refunded"
)

type Order struct {
	ID           string      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string      `gorm:"index;not null" json:"user_id"`
	SellerID     string      `gorm:"index" json:"seller_id"`
	ProductID    string      `gorm:"index" json:"product_id"`
	CategorySlug string      `gorm:"index" json:"category_slug"`
	Total        float64     `json:"total"`
	Status       OrderStatus `gorm:"type:varchar(16);index" json:"status"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

type Review struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	ProductID    string    `gorm:"index" json:"product_id"`
	HelpfulCount int64     `gorm:"default:0" json:"helpful_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Product struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	SellerID  string    `gorm:"index;not null" json:"seller_id"`
	Status    string    `gorm:"type:varchar(16);index" json:"status"` // published, draft, removed
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
