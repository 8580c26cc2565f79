package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mitgajera/Blockchain-indexer/app/repository"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/usercontext"
)

// HandleListLogs returns a filtered, paginated page of the caller's audit
// records, newest first.
func HandleListLogs(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	filter := repository.LogFilter{
		EventType: c.Query("eventType"),
		Status:    c.Query("status"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}

	logs, total, err := repository.GetGlobalFactory().GetIndexingLogRepository().ListByUser(userCtx.UserID, filter)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"logs": logs,
		"pagination": fiber.Map{
			"total":  total,
			"limit":  filter.Limit,
			"offset": filter.Offset,
		},
	})
}
