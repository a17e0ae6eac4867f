// handlers/event_routes.go
package handlers

import (
	"log"

	"marketplace-gamification/services"

	"github.com/gofiber/fiber/v2"
)

// SetupEventRoutes registers the inbound event intake. The platform bus
// posts lifecycle events here (gateway token already enforced globally).
// Events are at-most-once: a failed handler is logged and dropped, never
// redelivered by this service.
func SetupEventRoutes(app *fiber.App, gamification *services.GamificationService) {
	events := app.Group("/internal/events")

	events.Post("/order-completed", func(c *fiber.Ctx) error {
		var event services.OrderCompletedEvent
		if err := c.BodyParser(&event); err != nil || event.UserID == "" || event.OrderID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event payload"})
		}
		go handleEvent("order.completed", func() error {
			return gamification.HandleOrderCompleted(event)
		})
		return c.SendStatus(fiber.StatusAccepted)
	})

	events.Post("/review-created", func(c *fiber.Ctx) error {
		var event services.ReviewCreatedEvent
		if err := c.BodyParser(&event); err != nil || event.UserID == "" || event.ReviewID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event payload"})
		}
		go handleEvent("review.created", func() error {
			return gamification.HandleReviewCreated(event)
		})
		return c.SendStatus(fiber.StatusAccepted)
	})

	events.Post("/sale-made", func(c *fiber.Ctx) error {
		var event services.SaleMadeEvent
		if err := c.BodyParser(&event); err != nil || event.SellerID == "" || event.OrderID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event payload"})
		}
		go handleEvent("seller.sale_made", func() error {
			return gamification.HandleSaleMade(event)
		})
		return c.SendStatus(fiber.StatusAccepted)
	})

	events.Post("/login", func(c *fiber.Ctx) error {
		var event services.UserLoginEvent
		if err := c.BodyParser(&event); err != nil || event.UserID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event payload"})
		}
		go handleEvent("user.login", func() error {
			return gamification.HandleUserLogin(event)
		})
		return c.SendStatus(fiber.StatusAccepted)
	})

	events.Post("/product-uploaded", func(c *fiber.Ctx) error {
		var event services.ProductUploadedEvent
		if err := c.BodyParser(&event); err != nil || event.UserID == "" || event.ProductID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid event payload"})
		}
		go handleEvent("product.uploaded", func() error {
			return gamification.HandleProductUploaded(event)
		})
		return c.SendStatus(fiber.StatusAccepted)
	})
}

// handleEvent runs one event handler to completion, logging failures (the
// bus gets a 202 regardless — at-most-once semantics).
func handleEvent(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("❌ [EVENT] %s handler failed: %v", name, err)
	}
}
