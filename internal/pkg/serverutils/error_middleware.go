package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"messaging-be/internal/ratelimit"
	"messaging-be/internal/service"
)

// ErrorHandlerMiddleware maps domain errors to HTTP statuses so controllers
// can return service errors as-is.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  validationErr.Fields,
			})
		}

		switch {
		case errors.Is(err, ratelimit.ErrRateLimited):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many messages, slow down"})
		case errors.Is(err, service.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Record not found"})
		case errors.Is(err, service.ErrNotParticipant), errors.Is(err, service.ErrForbidden):
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You are not allowed to access this resource"})
		case errors.Is(err, service.ErrEmailTaken):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already registered"})
		case errors.Is(err, service.ErrInvalidCredentials):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
		case errors.Is(err, service.ErrParentMismatch), errors.Is(err, service.ErrTooFewParticipants):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}
