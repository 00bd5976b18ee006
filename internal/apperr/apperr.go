package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// ToHTTP translates a domain error into a *fiber.Error for the central
// ErrorHandler. Unknown errors surface as 500 with a generic message; the
// handler logs the cause before calling this.
func ToHTTP(err error, msg string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, msg)
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, msg)
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, msg)
	case errors.Is(err, ErrConflict):
		// illegal state transitions surface as 400 on the wire
		return fiber.NewError(fiber.StatusBadRequest, msg)
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "unexpected server error")
	}
}
