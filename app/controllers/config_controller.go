package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mitgajera/Blockchain-indexer/app/repository"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/indexer"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/usercontext"
)

// HandleListConfigs returns the caller's indexing configurations.
func HandleListConfigs(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	configs, err := repository.GetGlobalFactory().GetIndexingConfigRepository().ListByUser(userCtx.UserID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"configs": configs})
}

// HandleCreateConfig creates an indexing configuration and its provider
// subscription. The config starts inactive.
func HandleCreateConfig(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var input indexer.ConfigInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	config, err := indexer.GetService().CreateConfig(c.Context(), userCtx.UserID, input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"config": config})
}

// HandleGetConfig returns one configuration owned by the caller.
func HandleGetConfig(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}
	configID, err := c.ParamsInt("id")
	if err != nil || configID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid config ID")
	}

	config, err := repository.GetGlobalFactory().GetIndexingConfigRepository().GetByID(userCtx.UserID, uint(configID))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"config": config})
}

// HandleUpdateConfig applies a partial update and reconciles the provider
// subscription when the selection changed.
func HandleUpdateConfig(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}
	configID, err := c.ParamsInt("id")
	if err != nil || configID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid config ID")
	}

	var patch indexer.ConfigPatch
	if err := c.BodyParser(&patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	config, err := indexer.GetService().UpdateConfig(c.Context(), userCtx.UserID, uint(configID), patch)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"config": config})
}

// HandleDeleteConfig removes an inactive configuration.
func HandleDeleteConfig(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}
	configID, err := c.ParamsInt("id")
	if err != nil || configID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid config ID")
	}

	if err := indexer.GetService().DeleteConfig(c.Context(), userCtx.UserID, uint(configID)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Indexing configuration deleted successfully"})
}
