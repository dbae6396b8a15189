package router

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/akarpov91/todo-service/internal/domain"
)

// NewErrorHandler builds the app-wide fiber error handler. Domain errors
// map onto the HTTP taxonomy; anything unrecognized is logged and hidden
// behind a 500.
func NewErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, domain.ErrMissingCredentials):
			code = fiber.StatusUnauthorized
			message = "not authenticated"
		case errors.Is(err, domain.ErrInvalidCredentials):
			code = fiber.StatusUnauthorized
			message = "invalid credentials"
		case errors.Is(err, domain.ErrForbidden):
			code = fiber.StatusForbidden
			message = "not the owner of this item"
		case errors.Is(err, domain.ErrNotFound):
			code = fiber.StatusNotFound
			message = "not found"
		case errors.Is(err, domain.ErrConflict):
			code = fiber.StatusConflict
			message = "username or email already registered"
		case errors.Is(err, domain.ErrInvalidInput):
			code = fiber.StatusUnprocessableEntity
			message = err.Error()
		default:
			logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		}

		if code == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="todo-service"`)
		}

		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
