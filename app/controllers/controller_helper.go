package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mitgajera/Blockchain-indexer/internal/pkg/indexer"
)

// jsonError writes the standard error envelope.
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// mapServiceError translates pipeline errors into HTTP responses.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, indexer.ErrValidation):
		return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, indexer.ErrUnsafeInput):
		return jsonError(c, fiber.StatusBadRequest, "unsafe_input", err.Error())
	case errors.Is(err, indexer.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return jsonError(c, fiber.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, indexer.ErrInvalidState):
		return jsonError(c, fiber.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, indexer.ErrUpstream):
		return jsonError(c, fiber.StatusBadGateway, "upstream_failure", err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Unexpected error")
	}
}
