package handlers

import (
	"context"
	"time"

	"gearguard/config"

	"github.com/gofiber/fiber/v2"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether the backing stores answer.
type Pinger func(ctx context.Context) error

// HealthHandler reports the build and the alert timezone. With a pinger the
// route answers 503 while the database or cache is unreachable.
func HealthHandler(router fiber.Router, config config.Config, ping Pinger) {
	router.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":   "ok",
			"version":  config.GeneralVersion,
			"service":  "gearguard_api",
			"timezone": config.Timezone,
		}
		if ping == nil {
			return c.JSON(body)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			body["status"] = "unavailable"
			body["database"] = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		body["database"] = "ok"
		return c.JSON(body)
	})
}
