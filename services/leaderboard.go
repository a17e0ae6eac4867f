package services

import (
	"fmt"
	"log"
	"time"

	"marketplace-gamification/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TopN is how many users each snapshot ranks.
const TopN = 50

// allTimeEpoch is the fixed floor for all_time windows.
var allTimeEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// periodWindow computes the date window for a ranking period: weekly since
// the most recent week start (Sunday midnight), monthly since the 1st,
// all_time since the epoch floor. The end is the end of the current day.
func periodWindow(period models.LeaderboardPeriod, now time.Time) (start, end time.Time) {
	end = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999000000, now.Location())

	switch period {
	case models.PeriodWeekly:
		today := dateOnly(now)
		start = today.AddDate(0, 0, -int(today.Weekday()))
	case models.PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		start = allTimeEpoch
	}
	return start, end
}

// aggRow is one aggregated (user, score) pair from the raw data.
type aggRow struct {
	UserID string
	Score  int64
}

type LeaderboardService struct {
	DB    *gorm.DB
	Cache CacheService
}

func NewLeaderboardService(db *gorm.DB, cache CacheService) *LeaderboardService {
	return &LeaderboardService{DB: db, Cache: cache}
}

// RecomputeAll rebuilds every (period, category) snapshot. Any error aborts
// the remaining pairs; the next scheduled run retries from scratch. The
// leaderboard cache tag is invalidated once after all pairs complete.
func (s *LeaderboardService) RecomputeAll() error {
	now := time.Now()
	periods := []models.LeaderboardPeriod{models.PeriodWeekly, models.PeriodMonthly, models.PeriodAllTime}
	categories := []models.LeaderboardCategory{models.CategoryBuyerXP, models.CategoryReviewer}

	for _, period := range periods {
		for _, category := range categories {
			if err := s.recomputePair(period, category, now); err != nil {
				return fmt.Errorf("recompute %s/%s: %w", period, category, err)
			}
		}
	}

	s.Cache.InvalidateByTags([]string{TagLeaderboard})
	return nil
}

func (s *LeaderboardService) recomputePair(period models.LeaderboardPeriod, category models.LeaderboardCategory, now time.Time) error {
	start, end := periodWindow(period, now)

	rows, err := s.aggregate(category, start)
	if err != nil {
		return err
	}

	for _, entry := range rankEntries(rows, period, category, start, end) {
		err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "period"}, {Name: "category"}, {Name: "period_start"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"score", "rank", "period_end", "updated_at"}),
		}).Create(&entry).Error
		if err != nil {
			return fmt.Errorf("upsert entry for %s: %w", entry.UserID, err)
		}
	}

	// Prune users who dropped out of the top N so stale ranks never serve
	pruneQuery := s.DB.Where("period = ? AND category = ? AND period_start = ?", period, category, start)
	if len(rows) > 0 {
		kept := make([]string, len(rows))
		for i, row := range rows {
			kept[i] = row.UserID
		}
		pruneQuery = pruneQuery.Where("user_id NOT IN ?", kept)
	}
	if err := pruneQuery.Delete(&models.LeaderboardEntry{}).Error; err != nil {
		return fmt.Errorf("prune stale entries: %w", err)
	}

	log.Printf("🏅 [LEADERBOARD] Recomputed %s/%s: %d entries (window %s → %s)",
		period, category, len(rows), start.Format("2006-01-02"), end.Format("2006-01-02"))
	return nil
}

// rankEntries turns sorted aggregate rows into snapshot entries with dense
// 1-based ranks by position.
func rankEntries(rows []aggRow, period models.LeaderboardPeriod, category models.LeaderboardCategory, start, end time.Time) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = models.LeaderboardEntry{
			UserID:      row.UserID,
			Period:      period,
			Category:    category,
			PeriodStart: start,
			PeriodEnd:   end,
			Score:       row.Score,
			Rank:        i + 1,
		}
	}
	return entries
}

// aggregate sums the category's metric per user since the window start,
// descending, capped at TopN.
func (s *LeaderboardService) aggregate(category models.LeaderboardCategory, since time.Time) ([]aggRow, error) {
	var rows []aggRow
	var err error

	switch category {
	case models.CategoryBuyerXP:
		err = s.DB.Raw(`
			SELECT user_id, SUM(amount) AS score
			FROM xp_transactions
			WHERE created_at >= ?
			GROUP BY user_id
			ORDER BY score DESC, user_id ASC
			LIMIT ?
		`, since, TopN).Scan(&rows).Error
	case models.CategoryReviewer:
		err = s.DB.Raw(`
			SELECT user_id, SUM(helpful_count) AS score
			FROM reviews
			WHERE created_at >= ?
			GROUP BY user_id
			ORDER BY score DESC, user_id ASC
			LIMIT ?
		`, since, TopN).Scan(&rows).Error
	default:
		return nil, fmt.Errorf("unknown leaderboard category %q", category)
	}

	return rows, err
}

// RankedEntry is a snapshot row joined with the local user mirror.
type RankedEntry struct {
	Rank              int     `json:"rank"`
	UserID            string  `json:"user_id"`
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	Score             int64   `json:"score"`
}

// GetLeaderboard serves the current snapshot for a (period, category) pair,
// cache-wrapped under the global leaderboard tag.
func (s *LeaderboardService) GetLeaderboard(period models.LeaderboardPeriod, category models.LeaderboardCategory, limit int) ([]RankedEntry, error) {
	if limit <= 0 || limit > TopN {
		limit = TopN
	}
	start, _ := periodWindow(period, time.Now())

	key := CacheKey("gamification", "leaderboard", string(period), string(category), fmt.Sprint(limit))
	value, err := s.Cache.Wrap(key, 5*time.Minute, []string{TagLeaderboard}, func() (interface{}, error) {
		var entries []RankedEntry
		err := s.DB.Raw(`
			SELECT le.rank, le.user_id, le.score,
			       COALESCE(gu.username, '') AS username,
			       gu.profile_picture_url
			FROM leaderboard_entries le
			LEFT JOIN gamification_users gu ON gu.external_user_id = le.user_id
			WHERE le.period = ? AND le.category = ? AND le.period_start = ?
			ORDER BY le.rank ASC
			LIMIT ?
		`, period, category, start, limit).Scan(&entries).Error
		if err != nil {
			return nil, err
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]RankedEntry), nil
}
