package services

import (
	"fmt"
	"math"
	"time"

	"marketplace-gamification/models"

	"gorm.io/gorm"
)

// Inbound domain events. The hosting platform's bus delivers these; the
// engine assumes nothing about delivery semantics (at-most-once net effect
// per event instance is the contract here).

type OrderCompletedEvent struct {
	UserID  string  `json:"user_id" validate:"required"`
	OrderID string  `json:"order_id" validate:"required"`
	Total   float64 `json:"total"`
}

type ReviewCreatedEvent struct {
	UserID    string `json:"user_id" validate:"required"`
	ReviewID  string `json:"review_id" validate:"required"`
	ProductID string `json:"product_id"`
}

type SaleMadeEvent struct {
	SellerID string  `json:"seller_id" validate:"required"`
	OrderID  string  `json:"order_id" validate:"required"`
	Amount   float64 `json:"amount"`
}

type UserLoginEvent struct {
	UserID string `json:"user_id" validate:"required"`
}

type ProductUploadedEvent struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

// XP amounts per event class
const (
	ReviewXP        = 25
	ProductUploadXP = 50
	minPurchaseXP   = 10
	minSaleXP       = 20
)

// PurchaseXP is 10 XP per currency unit spent, floor of 10.
func PurchaseXP(total float64) int64 {
	xp := int64(math.Round(total * 10))
	if xp < minPurchaseXP {
		return minPurchaseXP
	}
	return xp
}

// SaleXP is 5 XP per currency unit earned, floor of 20.
func SaleXP(amount float64) int64 {
	xp := int64(math.Round(amount * 5))
	if xp < minSaleXP {
		return minSaleXP
	}
	return xp
}

// GamificationService is the façade that drives the XP ledger, streak
// tracker and achievement evaluator in order for each domain event.
type GamificationService struct {
	DB           *gorm.DB
	XP           *XPService
	Streaks      *StreakService
	Achievements *AchievementService
	Cache        CacheService
}

func NewGamificationService(db *gorm.DB, xp *XPService, streaks *StreakService, achievements *AchievementService, cache CacheService) *GamificationService {
	return &GamificationService{DB: db, XP: xp, Streaks: streaks, Achievements: achievements, Cache: cache}
}

// HandleOrderCompleted credits purchase XP and re-checks purchase-driven
// achievements. XP commits before the achievement pass runs, so a failing
// candidate never rolls back the grant.
func (s *GamificationService) HandleOrderCompleted(event OrderCompletedEvent) error {
	desc := fmt.Sprintf("Order completed ($%.2f)", event.Total)
	if _, err := s.XP.GrantXP(event.UserID, PurchaseXP(event.Total), models.XPSourcePurchase, event.OrderID, desc); err != nil {
		return fmt.Errorf("purchase xp: %w", err)
	}
	s.Achievements.CheckAndUpdate(event.UserID, models.TriggerPurchase, map[string]interface{}{
		"order_id": event.OrderID,
		"total":    event.Total,
	})
	return nil
}

func (s *GamificationService) HandleReviewCreated(event ReviewCreatedEvent) error {
	if _, err := s.XP.GrantXP(event.UserID, ReviewXP, models.XPSourceReview, event.ReviewID, "Review posted"); err != nil {
		return fmt.Errorf("review xp: %w", err)
	}
	s.Achievements.CheckAndUpdate(event.UserID, models.TriggerReview, map[string]interface{}{
		"review_id":  event.ReviewID,
		"product_id": event.ProductID,
	})
	return nil
}

func (s *GamificationService) HandleSaleMade(event SaleMadeEvent) error {
	desc := fmt.Sprintf("Sale completed ($%.2f)", event.Amount)
	if _, err := s.XP.GrantXP(event.SellerID, SaleXP(event.Amount), models.XPSourceSale, event.OrderID, desc); err != nil {
		return fmt.Errorf("sale xp: %w", err)
	}
	s.Achievements.CheckAndUpdate(event.SellerID, models.TriggerSale, map[string]interface{}{
		"order_id": event.OrderID,
		"amount":   event.Amount,
	})
	return nil
}

// HandleUserLogin advances the streak (which grants daily XP itself), then
// re-checks streak-driven achievements.
func (s *GamificationService) HandleUserLogin(event UserLoginEvent) error {
	if err := s.Streaks.UpdateStreak(event.UserID); err != nil {
		return fmt.Errorf("streak update: %w", err)
	}
	s.Achievements.CheckAndUpdate(event.UserID, models.TriggerLogin, nil)
	return nil
}

func (s *GamificationService) HandleProductUploaded(event ProductUploadedEvent) error {
	if _, err := s.XP.GrantXP(event.UserID, ProductUploadXP, models.XPSourceProductUpload, event.ProductID, "Product published"); err != nil {
		return fmt.Errorf("upload xp: %w", err)
	}
	s.Achievements.CheckAndUpdate(event.UserID, models.TriggerProductUpload, map[string]interface{}{
		"product_id": event.ProductID,
	})
	return nil
}

// ProfileView is the aggregate returned by the profile read API.
type ProfileView struct {
	UserID                string                 `json:"user_id"`
	TotalXP               int64                  `json:"total_xp"`
	Level                 int                    `json:"level"`
	CurrentLevelXP        int64                  `json:"current_level_xp"`
	NextLevelXP           int64                  `json:"next_level_xp"`
	Title                 string                 `json:"title"`
	Streak                int                    `json:"streak"`
	LongestStreak         int                    `json:"longest_streak"`
	StreakFreezeAvailable int                    `json:"streak_freeze_available"`
	LastActiveDate        *time.Time             `json:"last_active_date,omitempty"`
	AchievementsUnlocked  int64                  `json:"achievements_unlocked"`
	RecentActivity        []models.XPTransaction `json:"recent_activity"`
}

// GetProfile assembles the cached profile view (5 minute TTL, invalidated by
// the per-user tag whenever XP or streak state changes).
func (s *GamificationService) GetProfile(userID string) (*ProfileView, error) {
	key := CacheKey("gamification", "profile", userID)
	value, err := s.Cache.Wrap(key, 5*time.Minute, []string{ProfileTag(userID)}, func() (interface{}, error) {
		prog, err := s.XP.EnsureProgressRecord(userID)
		if err != nil {
			return nil, err
		}
		unlocked, err := s.Achievements.CountUnlocked(userID)
		if err != nil {
			return nil, err
		}
		recent, err := s.XP.GetUserActivity(userID, nil, 10)
		if err != nil {
			return nil, err
		}
		return &ProfileView{
			UserID:                userID,
			TotalXP:               prog.TotalXP,
			Level:                 prog.Level,
			CurrentLevelXP:        prog.CurrentLevelXP,
			NextLevelXP:           prog.NextLevelXP,
			Title:                 prog.Title,
			Streak:                prog.Streak,
			LongestStreak:         prog.LongestStreak,
			StreakFreezeAvailable: prog.StreakFreezeAvailable,
			LastActiveDate:        prog.LastActiveDate,
			AchievementsUnlocked:  unlocked,
			RecentActivity:        recent,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*ProfileView), nil
}
