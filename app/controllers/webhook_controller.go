package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/mitgajera/Blockchain-indexer/internal/pkg/indexer"
)

// HandleWebhook receives one webhook delivery from the subscription provider
// addressed to a single user. Non-2xx responses are reserved for malformed
// input; per-event failures are reported through the audit log and the batch
// report, never via the HTTP status, so the provider does not redeliver
// whole batches because of one bad record.
func HandleWebhook(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil || userID == 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid user ID")
	}

	var payload indexer.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid webhook payload")
	}

	report, err := indexer.GetService().Ingest(c.Context(), uint(userID), payload.Transactions)
	if err != nil {
		log.Errorf("webhook processing failed for user %d: %v", userID, err)
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to process webhook")
	}

	return c.JSON(fiber.Map{
		"message": "Webhook processed",
		"report":  report,
	})
}
