package setup

import (
	"log/slog"
	"time"

	"poetry/config"
	"poetry/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ApplyMiddleware applies all global middleware to the Fiber app.
// Health checks are never rate limited.
func ApplyMiddleware(app *fiber.App, logger *slog.Logger) {
	app.Use(
		recover.New(recover.Config{EnableStackTrace: config.AppConfig.Env == "development"}),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:  config.AppConfig.CORSOrigins,
			AllowMethods:  "GET,POST,PATCH,DELETE",
			AllowHeaders:  "Content-Type,Accept," + fiber.HeaderXRequestID,
			ExposeHeaders: fiber.HeaderXRequestID,
			MaxAge:        int((12 * time.Hour).Seconds()),
		}),
		limiter.New(limiter.Config{
			Max:        config.AppConfig.RateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health"
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":      "Rate limit exceeded",
					"request_id": c.Locals("requestID"),
				})
			},
		}),
	)
}
