package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"messaging-be/internal/pkg/logger"
)

// RequestLoggerMiddleware logs one line per request with method, path,
// status and latency.
func RequestLoggerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info("Http", "Request handled", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"ip":         ctx.IP(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}
