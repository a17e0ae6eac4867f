// handlers/gamification_routes.go
package handlers

import (
	"errors"
	"strconv"
	"time"

	"marketplace-gamification/middleware"
	"marketplace-gamification/models"
	"marketplace-gamification/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(
	app *fiber.App,
	gamification *services.GamificationService,
	achievements *services.AchievementService,
	leaderboard *services.LeaderboardService,
	streaks *services.StreakService,
	notifier *services.NotificationService,
) {
	// 🔐 Secured routes — the gateway forwards /api/v1/gamification/s/* here
	// with the user context headers already attached.
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/s/user/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		profile, err := gamification.GetProfile(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	securedGroup.Get("/s/user/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		views, err := achievements.ListAchievements(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list achievements",
				"cause": err.Error(),
			})
		}
		return c.JSON(views)
	})

	securedGroup.Get("/s/achievements/:slug", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		view, err := achievements.GetAchievementDetail(userID, c.Params("slug"))
		if errors.Is(err, services.ErrAchievementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "achievement not found",
				"slug":  c.Params("slug"),
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load achievement",
				"cause": err.Error(),
			})
		}
		return c.JSON(view)
	})

	securedGroup.Get("/s/leaderboard", func(c *fiber.Ctx) error {
		period := models.LeaderboardPeriod(c.Query("period", string(models.PeriodWeekly)))
		category := models.LeaderboardCategory(c.Query("category", string(models.CategoryBuyerXP)))
		limit, _ := strconv.Atoi(c.Query("limit", "50"))

		switch period {
		case models.PeriodWeekly, models.PeriodMonthly, models.PeriodAllTime:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid period"})
		}
		switch category {
		case models.CategoryBuyerXP, models.CategoryReviewer:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}

		entries, err := leaderboard.GetLeaderboard(period, category, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load leaderboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"period":   period,
			"category": category,
			"entries":  entries,
		})
	})

	securedGroup.Get("/s/user/activity", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		rawLimit, _ := strconv.Atoi(c.Query("limit", "20"))
		limit := services.ActivityPageLimit(rawLimit)

		var cursor *time.Time
		if raw := c.Query("cursor"); raw != "" {
			parsed, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cursor"})
			}
			cursor = &parsed
		}

		txns, err := gamification.XP.GetUserActivity(userID, cursor, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load activity",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"items":       txns,
			"next_cursor": nextActivityCursor(txns, limit),
		})
	})

	securedGroup.Post("/s/user/streak/freeze", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		prog, err := streaks.ActivateFreeze(userID)
		if errors.Is(err, services.ErrInsufficientFreezeCredits) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "insufficient streak freeze credits",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to activate freeze",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"streak_freeze_available": prog.StreakFreezeAvailable,
			"streak":                  prog.Streak,
		})
	})

	securedGroup.Get("/s/user/notifications", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "20"))

		notifs, err := notifier.GetUserNotifications(userID, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load notifications",
				"cause": err.Error(),
			})
		}
		return c.JSON(notifs)
	})

	securedGroup.Get("/s/user/notifications/count", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		count, err := notifier.UnreadCount(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to count notifications",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"unread_count": count})
	})

	securedGroup.Post("/s/user/notifications/read", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		marked, err := notifier.MarkAllRead(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to mark notifications read",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"marked_count": marked})
	})

	securedGroup.Get("/s/user/notifications/stream", notifier.StreamNotificationsSSE)
}

// nextActivityCursor returns the cursor for the page after txns, or "" when
// the page came back short (end of feed).
func nextActivityCursor(txns []models.XPTransaction, limit int) string {
	if len(txns) == 0 || len(txns) < limit {
		return ""
	}
	return txns[len(txns)-1].CreatedAt.Format(time.RFC3339Nano)
}
