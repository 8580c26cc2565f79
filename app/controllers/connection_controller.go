package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mitgajera/Blockchain-indexer/app/models"
	"github.com/mitgajera/Blockchain-indexer/app/repository"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/indexer"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/targetdb"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/usercontext"
)

// connectionRequest carries connection fields from the client. The model's
// password is json:"-" so it needs an explicit inbound shape.
type connectionRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSL      bool   `json:"ssl"`
}

// HandleListConnections returns the caller's target connections. Credentials
// are never echoed back.
func HandleListConnections(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	conns, err := repository.GetGlobalFactory().GetDbConnectionRepository().ListByUser(userCtx.UserID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"connections": conns})
}

// HandleCreateConnection stores a new target connection, inactive by default.
func HandleCreateConnection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req connectionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	conn := &models.DbConnection{
		UserID:   userCtx.UserID,
		Host:     req.Host,
		Port:     req.Port,
		Database: req.Database,
		Username: req.Username,
		Password: req.Password,
		SSL:      req.SSL,
	}
	if err := indexer.GetService().CreateConnection(c.Context(), conn); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"connection": conn})
}

// HandleGetConnection returns one connection owned by the caller.
func HandleGetConnection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}
	connID, err := c.ParamsInt("id")
	if err != nil || connID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid connection ID")
	}

	conn, err := repository.GetGlobalFactory().GetDbConnectionRepository().GetByID(userCtx.UserID, uint(connID))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"connection": conn})
}

// HandleUpdateConnection applies a partial update; activating a connection
// deactivates its siblings atomically.
func HandleUpdateConnection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}
	connID, err := c.ParamsInt("id")
	if err != nil || connID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid connection ID")
	}

	var patch indexer.ConnectionPatch
	if err := c.BodyParser(&patch); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	conn, err := indexer.GetService().UpdateConnection(c.Context(), userCtx.UserID, uint(connID), patch)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"connection": conn})
}

// HandleActivateConnection marks one connection active and its siblings
// inactive.
func HandleActivateConnection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}
	connID, err := c.ParamsInt("id")
	if err != nil || connID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid connection ID")
	}

	if err := indexer.GetService().SetActiveConnection(c.Context(), userCtx.UserID, uint(connID)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Database connection activated successfully"})
}

// HandleDeleteConnection removes an inactive connection.
func HandleDeleteConnection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}
	connID, err := c.ParamsInt("id")
	if err != nil || connID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid connection ID")
	}

	if err := indexer.GetService().DeleteConnection(c.Context(), userCtx.UserID, uint(connID)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Database connection deleted successfully"})
}

// HandleTestConnection checks connectivity for the supplied parameters
// without storing anything.
func HandleTestConnection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	var req connectionRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	result := indexer.GetService().TestConnection(c.Context(), targetdb.ConnectionParams{
		Host:     req.Host,
		Port:     req.Port,
		Database: req.Database,
		Username: req.Username,
		Password: req.Password,
		SSL:      req.SSL,
	})
	return c.JSON(result)
}
