package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gbinu42/hudra-media/models"
)

// BadRequest returns a 400 error
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: message,
	})
}

// Forbidden returns a 403 error
func Forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
		Error: message,
	})
}

// InternalError returns a 500 error with diagnostic details
func InternalError(c *fiber.Ctx, message, details string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error:   message,
		Details: details,
	})
}
