package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"marketplace-gamification/models"

	"gorm.io/gorm"
)

// ErrInsufficientFreezeCredits is returned when a user activates a freeze
// with no credits left.
var ErrInsufficientFreezeCredits = errors.New("insufficient streak freeze credits")

// DailyLoginXP is granted once per calendar day of activity.
const DailyLoginXP = 10

// StreakBonusXP: extra XP granted when the streak hits these day counts.
var StreakBonusXP = map[int]int64{
	7:   50,
	14:  100,
	30:  250,
	60:  500,
	100: 1000,
}

// streakState is the slice of UserProgress the day-transition depends on.
type streakState struct {
	LastActiveDate *time.Time
	Streak         int
	LongestStreak  int
	FreezeUsedAt   *time.Time
}

// streakTransition is the computed next state for one day of activity.
type streakTransition struct {
	AlreadyCounted bool // today was credited before; nothing to persist
	Streak         int
	LongestStreak  int
	FreezeEarned   bool // every 7th consecutive day banks a freeze credit
	GraceUsed      bool
}

// dateOnly truncates to calendar-day granularity (midnight local).
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// nextStreak computes the streak state machine for one activity on `now`:
// continue on a 1-day gap, extend on a 2-day gap covered by a consumed
// freeze, otherwise reset to 1.
func nextStreak(state streakState, now time.Time) streakTransition {
	today := dateOnly(now)

	if state.LastActiveDate != nil && dateOnly(*state.LastActiveDate).Equal(today) {
		return streakTransition{
			AlreadyCounted: true,
			Streak:         state.Streak,
			LongestStreak:  state.LongestStreak,
		}
	}

	streak := 1
	graceUsed := false
	if state.LastActiveDate != nil {
		last := dateOnly(*state.LastActiveDate)
		// Rounded so DST shifts of ±1h cannot skew the day count
		gapDays := int(today.Sub(last).Hours()/24 + 0.5)
		switch {
		case gapDays == 1:
			streak = state.Streak + 1
		case gapDays == 2 && freezeCoversGap(state.FreezeUsedAt, today):
			streak = state.Streak + 1
			graceUsed = true
		}
	}

	longest := state.LongestStreak
	if streak > longest {
		longest = streak
	}

	return streakTransition{
		Streak:        streak,
		LongestStreak: longest,
		FreezeEarned:  streak > 0 && streak%7 == 0,
		GraceUsed:     graceUsed,
	}
}

// freezeCoversGap reports whether a consumed freeze is recent enough to
// cover the missed day: its date must be yesterday or today.
func freezeCoversGap(freezeUsedAt *time.Time, today time.Time) bool {
	if freezeUsedAt == nil {
		return false
	}
	used := dateOnly(*freezeUsedAt)
	return used.Equal(today) || used.Equal(today.AddDate(0, 0, -1))
}

type StreakService struct {
	DB    *gorm.DB
	XP    *XPService
	Cache CacheService
}

func NewStreakService(db *gorm.DB, xp *XPService, cache CacheService) *StreakService {
	return &StreakService{DB: db, XP: xp, Cache: cache}
}

// UpdateStreak credits today's activity: advances/reset the streak, banks
// freeze credits, then grants daily-login XP and any streak bonus through
// the ledger. Same-day repeats are no-ops.
func (s *StreakService) UpdateStreak(userID string) error {
	now := time.Now()
	var transition streakTransition

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return fmt.Errorf("lock progress for %s: %w", userID, err)
		}

		transition = nextStreak(streakState{
			LastActiveDate: prog.LastActiveDate,
			Streak:         prog.Streak,
			LongestStreak:  prog.LongestStreak,
			FreezeUsedAt:   prog.StreakFreezeUsedAt,
		}, now)

		if transition.AlreadyCounted {
			return nil
		}

		today := dateOnly(now)
		prog.Streak = transition.Streak
		prog.LongestStreak = transition.LongestStreak
		prog.LastActiveDate = &today
		prog.StreakFreezeUsedAt = nil // slot consumed or reset, win or lose
		if transition.FreezeEarned {
			prog.StreakFreezeAvailable++
		}

		return tx.Save(prog).Error
	})
	if err != nil {
		return err
	}

	if transition.AlreadyCounted {
		return nil
	}

	if transition.GraceUsed {
		log.Printf("🧊 [STREAK] Freeze covered a missed day for %s → streak=%d", userID, transition.Streak)
	}

	if _, err := s.XP.GrantXP(userID, DailyLoginXP, models.XPSourceDailyLogin, "", "Daily login"); err != nil {
		return fmt.Errorf("daily login xp for %s: %w", userID, err)
	}

	if bonus, ok := StreakBonusXP[transition.Streak]; ok {
		desc := fmt.Sprintf("%d-day streak bonus", transition.Streak)
		if _, err := s.XP.GrantXP(userID, bonus, models.XPSourceStreakBonus, "", desc); err != nil {
			return fmt.Errorf("streak bonus xp for %s: %w", userID, err)
		}
	}

	return nil
}

// ActivateFreeze consumes one freeze credit, pre-authorizing the grace
// extension on the next 2-day-gap login. Does not touch the streak itself.
func (s *StreakService) ActivateFreeze(userID string) (*models.UserProgress, error) {
	var updated models.UserProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		prog, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}
		if prog.StreakFreezeAvailable <= 0 {
			return ErrInsufficientFreezeCredits
		}
		now := time.Now()
		prog.StreakFreezeAvailable--
		prog.StreakFreezeUsedAt = &now
		if err := tx.Save(prog).Error; err != nil {
			return err
		}
		updated = *prog
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.InvalidateByTags([]string{ProfileTag(userID)})
	log.Printf("🧊 [STREAK] Freeze activated for %s (remaining=%d)", userID, updated.StreakFreezeAvailable)
	return &updated, nil
}
