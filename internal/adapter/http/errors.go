package http

import (
	"errors"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/logging"
	"portfolio-site/internal/model"
	"portfolio-site/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// writeError maps domain errors to HTTP responses. Unknown errors are logged
// and reported as 500.
func writeError(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"errors": verr.Problems,
		})
	case errors.Is(err, model.ErrInvalidSort):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		if currentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	case errors.Is(err, model.ErrUnknownCollection),
		errors.Is(err, usecase.ErrUnknownBlock),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	rid, _ := c.Locals("requestid").(string)
	logging.WithRequest(c.Method(), c.Path(), rid).Error("request failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
