package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mitgajera/Blockchain-indexer/internal/pkg/indexer"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/usercontext"
)

type queryRequest struct {
	Query string `json:"query"`
}

// HandleRunQuery executes a guarded read-only query against the caller's
// active target connection.
func HandleRunQuery(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	rows, err := indexer.GetService().Query(c.Context(), userCtx.UserID, req.Query)
	if err != nil {
		return mapServiceError(c, err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return c.JSON(fiber.Map{"rows": rows, "count": len(rows)})
}
