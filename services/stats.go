package services

import (
	"fmt"
	"time"

	"marketplace-gamification/models"

	"gorm.io/gorm"
)

// StatsService computes the current metric value behind each requirement
// type. Dispatch is exhaustive over models.RequirementType; an unknown type
// is an error, not a silent zero.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// CurrentValue resolves the metric for one requirement. Time-range
// requirements return 1 when `now` falls inside the window, else 0.
func (s *StatsService) CurrentValue(userID string, req models.Requirement, now time.Time) (float64, error) {
	switch req.Type {
	case models.RequirementPurchaseCount:
		var count int64
		err := s.DB.Model(&models.Order{}).
			Where("user_id = ? AND status = ?", userID, models.OrderStatusCompleted).
			Count(&count).Error
		return float64(count), err

	case models.RequirementTotalSpend:
		return s.sumFloat(
			s.DB.Model(&models.Order{}).
				Where("user_id = ? AND status = ?", userID, models.OrderStatusCompleted),
			"total",
		)

	case models.RequirementReviewCount:
		var count int64
		err := s.DB.Model(&models.Review{}).
			Where("user_id = ?", userID).
			Count(&count).Error
		return float64(count), err

	case models.RequirementHelpfulVotes:
		return s.sumFloat(
			s.DB.Model(&models.Review{}).Where("user_id = ?", userID),
			"helpful_count",
		)

	case models.RequirementSalesCount:
		var count int64
		err := s.DB.Model(&models.Order{}).
			Where("seller_id = ? AND status = ?", userID, models.OrderStatusCompleted).
			Count(&count).Error
		return float64(count), err

	case models.RequirementSalesRevenue:
		return s.sumFloat(
			s.DB.Model(&models.Order{}).
				Where("seller_id = ? AND status = ?", userID, models.OrderStatusCompleted),
			"total",
		)

	case models.RequirementProductCount:
		var count int64
		err := s.DB.Model(&models.Product{}).
			Where("seller_id = ? AND status = ?", userID, "published").
			Count(&count).Error
		return float64(count), err

	case models.RequirementStreakDays:
		var prog models.UserProgress
		err := s.DB.Where("user_id = ?", userID).First(&prog).Error
		if err != nil {
			return 0, err
		}
		return float64(prog.Streak), nil

	case models.RequirementDistinctCategories:
		var count int64
		err := s.DB.Model(&models.Order{}).
			Where("user_id = ? AND status = ?", userID, models.OrderStatusCompleted).
			Distinct("category_slug").
			Count(&count).Error
		return float64(count), err

	case models.RequirementOwnedProducts:
		var count int64
		err := s.DB.Model(&models.Order{}).
			Where("user_id = ? AND status = ?", userID, models.OrderStatusCompleted).
			Distinct("product_id").
			Count(&count).Error
		return float64(count), err

	case models.RequirementPurchaseTimeRange:
		if inHourWindow(now.Hour(), req.StartHour, req.EndHour) {
			return 1, nil
		}
		return 0, nil

	default:
		return 0, fmt.Errorf("unknown requirement type %q", req.Type)
	}
}

func (s *StatsService) sumFloat(query *gorm.DB, column string) (float64, error) {
	var total *float64
	err := query.Select("SUM(" + column + ")").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

// inHourWindow checks an inclusive [start, end] hour-of-day window.
// A window wrapping midnight (start > end) is honored, e.g. 22–3.
func inHourWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}
