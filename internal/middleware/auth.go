package middleware

import (
	"strings"

	"todo-tracker/internal/config"
	"todo-tracker/pkg/logger"
	"todo-tracker/pkg/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UseToken gates protected routes: it extracts the bearer token, verifies
// it and exposes the embedded identity via Locals. Claims are trusted
// as-of issuance; no user lookup happens here.
func UseToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token format"})
	}
	claims, err := token.Parse(parts[1], config.SecretKey)
	if err != nil {
		logger.SecurityLogger.Warn("Rejected token",
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
		)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}
	c.Locals("userID", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("email", claims.Email)
	return c.Next()
}
