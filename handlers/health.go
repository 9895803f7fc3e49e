package handlers

import (
	"poetry/app"
	"poetry/services"

	"github.com/gofiber/fiber/v2"
)

func Health(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.DB.PingContext(c.UserContext()); err != nil {
			a.Logger.Warn("health check failed", "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return success(c, fiber.Map{"status": "ok"})
	}
}

// GetStats returns the number of stored entities per kind
func GetStats(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := services.Stats(c.UserContext(), a.Session())
		if err != nil {
			return storeError(c, "Failed to compute stats", err)
		}
		return success(c, fiber.Map{"stats": stats})
	}
}
