package services

import "log"

// Outbound event names published by the engine
const (
	EventLevelUp             = "gamification.level_up"
	EventAchievementUnlocked = "gamification.achievement_unlocked"
)

type LevelUpEvent struct {
	UserID string `json:"user_id"`
	Level  int    `json:"level"`
	Title  string `json:"title"`
}

type AchievementUnlockedEvent struct {
	UserID          string `json:"user_id"`
	AchievementID   string `json:"achievement_id"`
	AchievementSlug string `json:"achievement_slug"`
}

// EventPublisher is the narrow outbound port to the platform event bus.
// The hosting application wires the real bus; the engine assumes nothing
// about delivery semantics.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// LogEventPublisher is the default publisher used when no bus is wired.
type LogEventPublisher struct{}

func (LogEventPublisher) Publish(event string, payload interface{}) {
	log.Printf("📤 [EVENT] %s → %+v", event, payload)
}
