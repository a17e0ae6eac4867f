package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"marketplace-gamification/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ErrAchievementNotFound maps to a structured 404 on the read API.
var ErrAchievementNotFound = errors.New("achievement not found")

type AchievementService struct {
	DB        *gorm.DB
	Stats     *StatsService
	XP        *XPService
	Notifier  *NotificationService
	Publisher EventPublisher
}

func NewAchievementService(db *gorm.DB, stats *StatsService, xp *XPService, notifier *NotificationService, publisher EventPublisher) *AchievementService {
	return &AchievementService{DB: db, Stats: stats, XP: xp, Notifier: notifier, Publisher: publisher}
}

// SeedCatalog upserts the built-in achievement definitions by slug.
func (s *AchievementService) SeedCatalog() error {
	for _, def := range models.AchievementCatalog {
		var existing models.AchievementDefinition
		err := s.DB.Where("slug = ?", def.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.DB.Create(&def).Error; err != nil {
				return fmt.Errorf("seed achievement %s: %w", def.Slug, err)
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// progressFor computes the 0–100 progress (two decimals) of a metric value
// against a requirement. Time-range requirements are binary.
func progressFor(req models.Requirement, currentValue float64) float64 {
	if req.Type == models.RequirementPurchaseTimeRange {
		if currentValue >= 1 {
			return 100
		}
		return 0
	}
	if req.Threshold <= 0 {
		return 100
	}
	progress := currentValue / req.Threshold * 100
	if progress >= 100 {
		return 100
	}
	return math.Round(progress*100) / 100
}

// CheckAndUpdate re-evaluates every active achievement whose requirement
// type the trigger can move. Candidates are independent: one failure is
// logged and the rest still run.
func (s *AchievementService) CheckAndUpdate(userID string, trigger models.TriggerCategory, metadata map[string]interface{}) {
	relevant := models.TriggerRequirementTypes[trigger]
	if len(relevant) == 0 {
		return
	}
	relevantSet := make(map[models.RequirementType]struct{}, len(relevant))
	for _, t := range relevant {
		relevantSet[t] = struct{}{}
	}

	var defs []models.AchievementDefinition
	if err := s.DB.Where("is_active = ?", true).Find(&defs).Error; err != nil {
		log.Printf("❌ [ACHIEVEMENT] Failed to load definitions for %s: %v", userID, err)
		return
	}

	now := time.Now()
	for _, def := range defs {
		if _, ok := relevantSet[def.Requirement.Type]; !ok {
			continue
		}
		if err := s.evaluateCandidate(userID, def, metadata, now); err != nil {
			log.Printf("⚠️ [ACHIEVEMENT] Evaluation of %s for %s failed: %v", def.Slug, userID, err)
		}
	}
}

func (s *AchievementService) evaluateCandidate(userID string, def models.AchievementDefinition, metadata map[string]interface{}, now time.Time) error {
	var uap models.UserAchievementProgress
	err := s.DB.Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&uap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		uap = models.UserAchievementProgress{UserID: userID, AchievementID: def.ID}
		if err := s.DB.Create(&uap).Error; err != nil {
			return fmt.Errorf("create progress row: %w", err)
		}
	} else if err != nil {
		return err
	}

	// Terminal state: unlocked achievements are never re-evaluated
	if uap.UnlockedAt != nil {
		return nil
	}

	currentValue, err := s.Stats.CurrentValue(userID, def.Requirement, now)
	if err != nil {
		return fmt.Errorf("stats lookup (%s): %w", def.Requirement.Type, err)
	}

	newProgress := progressFor(def.Requirement, currentValue)

	if newProgress >= 100 {
		return s.unlock(userID, def, &uap, metadata, now)
	}
	if newProgress > uap.Progress {
		uap.Progress = newProgress
		return s.DB.Save(&uap).Error
	}
	// Progress did not improve — defends against double-processing
	return nil
}

func (s *AchievementService) unlock(userID string, def models.AchievementDefinition, uap *models.UserAchievementProgress, metadata map[string]interface{}, now time.Time) error {
	uap.Progress = 100
	uap.UnlockedAt = &now
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			uap.Metadata = string(raw)
		}
	}
	if err := s.DB.Save(uap).Error; err != nil {
		return fmt.Errorf("persist unlock: %w", err)
	}

	log.Printf("🏆 [ACHIEVEMENT] %s unlocked %s (+%d XP)", userID, def.Slug, def.XPReward)

	if def.XPReward > 0 {
		if _, err := s.XP.GrantXP(userID, def.XPReward, models.XPSourceAchievement, def.ID, "Achievement: "+def.Name); err != nil {
			return fmt.Errorf("achievement xp reward: %w", err)
		}
	}

	go s.Notifier.NotifyUser(userID, models.NotificationAchievementUnlocked,
		"Achievement Unlocked!",
		fmt.Sprintf("%s — %s", def.Name, def.Description),
		fiberMapData{"achievement_id": def.ID, "slug": def.Slug, "tier": def.Tier, "xp_reward": def.XPReward},
	)

	s.Publisher.Publish(EventAchievementUnlocked, AchievementUnlockedEvent{
		UserID:          userID,
		AchievementID:   def.ID,
		AchievementSlug: def.Slug,
	})

	return nil
}

// AchievementView is the presentation shape of a definition joined with the
// viewer's progress. Secret locked achievements cross the trust boundary
// masked; MaskAchievement is the single transform both read paths use.
type AchievementView struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tier        string     `json:"tier"`
	XPReward    int64      `json:"xp_reward"`
	IconURL     string     `json:"icon_url,omitempty"`
	IsSecret    bool       `json:"is_secret"`
	Progress    float64    `json:"progress"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// MaskAchievement hides the identity of a secret achievement until the
// viewer has unlocked it.
func MaskAchievement(view AchievementView) AchievementView {
	if !view.IsSecret || view.UnlockedAt != nil {
		return view
	}
	view.Name = "???"
	view.Description = "Hidden achievement — keep exploring!"
	view.IconURL = ""
	view.Progress = 0
	return view
}

// ListAchievements returns every active definition with the user's progress,
// secret ones masked until unlocked.
func (s *AchievementService) ListAchievements(userID string) ([]AchievementView, error) {
	var defs []models.AchievementDefinition
	if err := s.DB.Where("is_active = ?", true).Order("category, tier, slug").Find(&defs).Error; err != nil {
		return nil, err
	}

	var rows []models.UserAchievementProgress
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	byAchievement := make(map[string]models.UserAchievementProgress, len(rows))
	for _, row := range rows {
		byAchievement[row.AchievementID] = row
	}

	views := make([]AchievementView, 0, len(defs))
	for _, def := range defs {
		view := viewOf(def, byAchievement[def.ID])
		views = append(views, MaskAchievement(view))
	}
	return views, nil
}

// GetAchievementDetail returns one achievement by slug, masked the same way
// as the list. Unknown slugs return ErrAchievementNotFound.
func (s *AchievementService) GetAchievementDetail(userID, achievementSlug string) (*AchievementView, error) {
	var def models.AchievementDefinition
	err := s.DB.Where("slug = ? AND is_active = ?", achievementSlug, true).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAchievementNotFound
	}
	if err != nil {
		return nil, err
	}

	var uap models.UserAchievementProgress
	err = s.DB.Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&uap).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	view := MaskAchievement(viewOf(def, uap))
	return &view, nil
}

func viewOf(def models.AchievementDefinition, uap models.UserAchievementProgress) AchievementView {
	return AchievementView{
		ID:          def.ID,
		Slug:        def.Slug,
		Name:        def.Name,
		Description: def.Description,
		Category:    def.Category,
		Tier:        def.Tier,
		XPReward:    def.XPReward,
		IconURL:     def.IconURL,
		IsSecret:    def.IsSecret,
		Progress:    uap.Progress,
		UnlockedAt:  uap.UnlockedAt,
	}
}

// CountUnlocked returns how many achievements the user has unlocked.
func (s *AchievementService) CountUnlocked(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.UserAchievementProgress{}).
		Where("user_id = ? AND unlocked_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}

// CreateDefinition adds a catalog entry (admin). The slug is derived from
// the name; duplicates surface as a unique-index violation to the caller.
func (s *AchievementService) CreateDefinition(def *models.AchievementDefinition) error {
	if def.Slug == "" {
		def.Slug = slug.Make(def.Name)
	}
	return s.DB.Create(def).Error
}

// UpdateDefinition persists admin edits to an existing catalog entry.
func (s *AchievementService) UpdateDefinition(def *models.AchievementDefinition) error {
	return s.DB.Save(def).Error
}

// FindDefinitionByID loads a catalog entry (admin paths).
func (s *AchievementService) FindDefinitionByID(id string) (*models.AchievementDefinition, error) {
	var def models.AchievementDefinition
	err := s.DB.Where("id = ?", id).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAchievementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}
