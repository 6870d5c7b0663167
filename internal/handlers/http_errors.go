package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lapak/internal/services"
)

// statusFor maps service sentinel errors onto HTTP status codes. Unknown
// errors fall through to 500; persistence trouble never reaches here because
// the storage adapter fails soft.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidStatus):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotAuthenticated),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountBlocked):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrIncorrectPassword):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrBannerNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrTerminalStatus),
		errors.Is(err, services.ErrBannerLimit):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}
