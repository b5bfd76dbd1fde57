// Package handlers exposes the services over HTTP. Every handler group offers
// RegisterRoutes to mount itself on a fiber router.
package handlers

import (
	"errors"
	"strconv"

	"reviewhub/internal/permissions"
	"reviewhub/internal/services"
	"reviewhub/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError renders the errors handlers know how to classify. Anything else
// is returned for the app's error handler to log and turn into a 500.
func respondError(c *fiber.Ctx, err error) error {
	if verr, ok := validation.AsError(err); ok {
		return validationFailed(c, verr)
	}

	switch {
	case errors.Is(err, services.ErrInvalidCode):
		return validationFailed(c, validation.NewError("confirmation_code", "invalid confirmation code"))
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
	case errors.Is(err, permissions.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, permissions.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	}
	return err
}

func validationFailed(c *fiber.Ctx, verr *validation.Error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  verr.Fields,
	})
}

// bind parses the JSON body into req and validates it. A malformed body is a
// 400 *fiber.Error; failed rules come back as *validation.Error.
func bind(c *fiber.Ctx, v *validator.Validate, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return validation.Struct(v, req)
}

// paramID reads a positive integer route parameter. Anything else cannot name
// a row, so it is a 404.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.ErrNotFound
	}
	return uint(id), nil
}
