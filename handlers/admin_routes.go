// handlers/admin_routes.go
package handlers

import (
	"errors"
	"fmt"

	"marketplace-gamification/middleware"
	"marketplace-gamification/models"
	"marketplace-gamification/services"
	"marketplace-gamification/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SetupAdminRoutes registers the catalog-management and operator endpoints.
// The engine itself never mutates achievement definitions; these are the
// admin dashboard's surface.
func SetupAdminRoutes(
	app *fiber.App,
	achievements *services.AchievementService,
	xp *services.XPService,
	leaderboard *services.LeaderboardService,
) {
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	adminGroup.Post("/achievements", func(c *fiber.Ctx) error {
		var req struct {
			Name        string             `json:"name" validate:"required"`
			Description string             `json:"description"`
			Category    string             `json:"category" validate:"required,oneof=buyer reviewer seller engagement"`
			Tier        string             `json:"tier" validate:"required,oneof=bronze silver gold platinum"`
			Requirement models.Requirement `json:"requirement" validate:"required"`
			XPReward    int64              `json:"xp_reward" validate:"min=0"`
			IsSecret    bool               `json:"is_secret"`
			IsActive    *bool              `json:"is_active"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.Name == "" || req.Requirement.Type == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and requirement.type are required"})
		}

		def := models.AchievementDefinition{
			Slug:        slug.Make(req.Name),
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Tier:        req.Tier,
			Requirement: req.Requirement,
			XPReward:    req.XPReward,
			IsSecret:    req.IsSecret,
			IsActive:    true,
		}
		if req.IsActive != nil {
			def.IsActive = *req.IsActive
		}

		if err := achievements.CreateDefinition(&def); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create achievement",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(def)
	})

	adminGroup.Put("/achievements/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid achievement ID"})
		}

		def, err := achievements.FindDefinitionByID(id)
		if errors.Is(err, services.ErrAchievementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "achievement not found"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}

		var req struct {
			Name        *string             `json:"name"`
			Description *string             `json:"description"`
			Tier        *string             `json:"tier"`
			Requirement *models.Requirement `json:"requirement"`
			XPReward    *int64              `json:"xp_reward"`
			IsSecret    *bool               `json:"is_secret"`
			IsActive    *bool               `json:"is_active"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		if req.Name != nil {
			def.Name = *req.Name
		}
		if req.Description != nil {
			def.Description = *req.Description
		}
		if req.Tier != nil {
			def.Tier = *req.Tier
		}
		if req.Requirement != nil {
			def.Requirement = *req.Requirement
		}
		if req.XPReward != nil {
			def.XPReward = *req.XPReward
		}
		if req.IsSecret != nil {
			def.IsSecret = *req.IsSecret
		}
		if req.IsActive != nil {
			def.IsActive = *req.IsActive
		}

		if err := achievements.UpdateDefinition(def); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update achievement",
				"cause": err.Error(),
			})
		}
		return c.JSON(def)
	})

	adminGroup.Post("/achievements/:id/icon", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid achievement ID"})
		}

		def, err := achievements.FindDefinitionByID(id)
		if errors.Is(err, services.ErrAchievementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "achievement not found"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}

		fileHeader, err := c.FormFile("icon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "icon file is required"})
		}

		key := fmt.Sprintf("achievements/%s-%s", def.Slug, fileHeader.Filename)
		iconURL, err := utils.UploadFileToR2(fileHeader, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to upload icon",
				"cause": err.Error(),
			})
		}

		def.IconURL = iconURL
		if err := achievements.UpdateDefinition(def); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save icon URL",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"icon_url": iconURL})
	})

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"user_id" validate:"required,uuid"`
			XP     int64  `json:"xp" validate:"required,min=1"`
			Reason string `json:"reason" validate:"max=255"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.UserID == "" || req.XP <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and positive xp are required"})
		}

		if _, err := xp.GrantXP(req.UserID, req.XP, models.XPSourceAdminGrant, "", req.Reason); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "XP grant failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"message": "XP granted successfully",
			"user_id": req.UserID,
			"xp":      req.XP,
		})
	})

	adminGroup.Post("/leaderboard/recompute", func(c *fiber.Ctx) error {
		if err := leaderboard.RecomputeAll(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "leaderboard recompute failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "leaderboard recomputed"})
	})
}
