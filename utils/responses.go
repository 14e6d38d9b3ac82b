package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/flashfrancais/backend/apperrors"
)

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error sends a JSON error reply with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// FromError maps a domain error to its HTTP status and sends the reply.
// Unknown errors become a 500 without leaking internals to the caller.
func FromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrTooLarge):
		return Error(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrConflict):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return Error(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		return Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrNotConfigured):
		return Error(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, apperrors.ErrTimeout):
		return Error(c, fiber.StatusGatewayTimeout, err.Error())
	default:
		return Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// NotFound sends a 404 reply.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// BadRequest sends a 400 reply.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 reply.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 reply.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// Created sends a 201 reply with the given body.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent sends an empty 204 reply.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
