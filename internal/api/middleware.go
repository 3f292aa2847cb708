package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RoleHeader carries the caller's role. Authentication happens upstream.
const RoleHeader = "X-Role"

// RoleAdmin is the only role allowed to change the rate card.
const RoleAdmin = "admin"

// RequireAdmin rejects requests whose role header is not admin with 403.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.EqualFold(strings.TrimSpace(c.Get(RoleHeader)), RoleAdmin) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "pricing matrix changes require the admin role",
			})
		}
		return c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
