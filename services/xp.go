package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"marketplace-gamification/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// XPService is the append-only XP ledger. Every XP grant in the engine,
// whatever its cause, funnels through GrantXP.
type XPService struct {
	DB        *gorm.DB
	Notifier  *NotificationService
	Publisher EventPublisher
	Cache     CacheService
}

func NewXPService(db *gorm.DB, notifier *NotificationService, publisher EventPublisher, cache CacheService) *XPService {
	return &XPService{DB: db, Notifier: notifier, Publisher: publisher, Cache: cache}
}

// newProgressRecord is the level-1 row a user starts from.
func newProgressRecord(userID string) models.UserProgress {
	return models.UserProgress{
		UserID:      userID,
		Level:       1,
		NextLevelXP: xpToClearLevel(1),
		Title:       TitleForLevel(1),
	}
}

// EnsureProgressRecord ensures a UserProgress row exists (idempotent)
func (s *XPService) EnsureProgressRecord(userID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("user_id = ?", userID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh := newProgressRecord(userID)
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&fresh).Error; err != nil {
			return nil, err
		}
		// Re-read; a racing first touch may have won the insert
		if err := s.DB.Where("user_id = ?", userID).First(&prog).Error; err != nil {
			return nil, err
		}
		return &prog, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// lockProgress loads (or creates) the UserProgress row under FOR UPDATE so
// concurrent grants for the same user serialize at the database.
func lockProgress(tx *gorm.DB, userID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prog = newProgressRecord(userID)
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&prog).Error; err != nil {
			return nil, err
		}
		// Re-read under lock; another tx may have created the row first
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&prog).Error; err != nil {
			return nil, err
		}
		return &prog, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// GrantXP appends a ledger transaction and atomically updates the user's
// totals, level and title. Returns the updated progress.
func (s *XPService) GrantXP(userID string, amount int64, source models.XPSource, referenceID, description string) (*models.UserProgress, error) {
	var updated models.UserProgress
	var oldLevel int

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		txn := models.XPTransaction{
			UserID:      userID,
			Amount:      amount,
			Source:      source,
			ReferenceID: referenceID,
			Description: description,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return fmt.Errorf("append xp transaction: %w", err)
		}

		prog, err := lockProgress(tx, userID)
		if err != nil {
			return fmt.Errorf("lock progress for %s: %w", userID, err)
		}
		oldLevel = prog.Level

		prog.TotalXP += amount
		lp := LevelForXP(prog.TotalXP)
		prog.Level = lp.Level
		prog.CurrentLevelXP = lp.CurrentLevelXP
		prog.NextLevelXP = lp.NextLevelXP
		prog.Title = TitleForLevel(lp.Level)
		if lp.Level > oldLevel {
			now := time.Now()
			prog.LastLevelUpAt = &now
		}

		if err := tx.Save(prog).Error; err != nil {
			return fmt.Errorf("save progress for %s: %w", userID, err)
		}

		updated = *prog
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎮 XP granted: %s +%d (%s) → total=%d, level=%d",
		userID, amount, source, updated.TotalXP, updated.Level)

	go s.Notifier.NotifyUser(userID, models.NotificationXPEarned,
		"XP Earned",
		fmt.Sprintf("You earned %d XP!", amount),
		fiberMapData{"amount": amount, "source": string(source), "total_xp": updated.TotalXP},
	)

	if updated.Level > oldLevel {
		s.handleLevelUp(userID, oldLevel, &updated)
	}

	s.Cache.InvalidateByTags([]string{ProfileTag(userID)})

	return &updated, nil
}

// fiberMapData keeps notification payloads as plain JSON objects
type fiberMapData map[string]interface{}

func (s *XPService) handleLevelUp(userID string, oldLevel int, prog *models.UserProgress) {
	go s.Notifier.NotifyUser(userID, models.NotificationLevelUp,
		"Level Up!",
		fmt.Sprintf("You reached level %d — %s", prog.Level, prog.Title),
		fiberMapData{"level": prog.Level, "title": prog.Title},
	)

	s.Publisher.Publish(EventLevelUp, LevelUpEvent{
		UserID: userID,
		Level:  prog.Level,
		Title:  prog.Title,
	})

	// Milestone credit bonuses: intent is logged only. The wallet service
	// owns the credit ledger and no grant call is wired yet.
	for _, level := range milestonesCrossed(oldLevel, prog.Level) {
		log.Printf("💰 [MILESTONE] User %s reached level %d — credit bonus %d pending wallet integration",
			userID, level, MilestoneCreditBonuses[level])
	}
}

// milestonesCrossed lists the milestone levels in (oldLevel, newLevel] that
// carry a credit bonus, in ascending order.
func milestonesCrossed(oldLevel, newLevel int) []int {
	var crossed []int
	for level := oldLevel + 1; level <= newLevel; level++ {
		if _, ok := MilestoneCreditBonuses[level]; ok {
			crossed = append(crossed, level)
		}
	}
	return crossed
}

// ActivityPageLimit clamps a requested activity page size to 1..100,
// defaulting to 20.
func ActivityPageLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

// GetUserActivity returns a page of ledger rows, newest first. The cursor is
// the created_at of the last row from the previous page (RFC3339Nano).
func (s *XPService) GetUserActivity(userID string, cursor *time.Time, limit int) ([]models.XPTransaction, error) {
	limit = ActivityPageLimit(limit)
	query := s.DB.Where("user_id = ?", userID)
	if cursor != nil {
		query = query.Where("created_at < ?", *cursor)
	}
	var txns []models.XPTransaction
	err := query.Order("created_at DESC").Limit(limit).Find(&txns).Error
	return txns, err
}
