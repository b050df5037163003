package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"message":     "Service is healthy",
		"timestamp":   time.Now().Format(time.RFC3339),
		"environment": h.Env,
	})
}
