package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnect-backend/src/lib"
)

// ContextMiddleware copies the request id from Fiber locals into the request context
// so the context-aware logger can pick it up in the services and store.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals("requestid").(string); ok {
			c.SetUserContext(context.WithValue(c.UserContext(), lib.RequestIDKey, rid))
		}
		return c.Next()
	}
}

// StructuredLogger logs every request with slog
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
		}

		// The status is only final after the error handler ran, so failures log the error itself.
		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			lib.Logger.WarnContext(c.UserContext(), "request failed", fields...)
		} else {
			lib.Logger.InfoContext(c.UserContext(), "request processed", fields...)
		}

		return err
	}
}
