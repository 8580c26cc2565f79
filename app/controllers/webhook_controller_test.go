package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleWebhookRejectsInvalidUserID(t *testing.T) {
	app := fiber.New()
	app.Post("/api/v1/webhook/:userId", HandleWebhook)

	for _, id := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/"+id, strings.NewReader(`{"transactions":[]}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "id: %s", id)
	}
}

func TestHandleWebhookRejectsMalformedBody(t *testing.T) {
	app := fiber.New()
	app.Post("/api/v1/webhook/:userId", HandleWebhook)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/1", strings.NewReader(`{"transactions":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func withUser(userID uint, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("USER_CONTEXT", testUserContext(userID))
		}
		return c.Next()
	})
	app.All("/*", handler)
	return app
}

func TestSecuredHandlersRequireAuthentication(t *testing.T) {
	handlers := map[string]fiber.Handler{
		"list connections": HandleListConnections,
		"create conn":      HandleCreateConnection,
		"activate conn":    HandleActivateConnection,
		"list configs":     HandleListConfigs,
		"list logs":        HandleListLogs,
		"run query":        HandleRunQuery,
	}

	for name, handler := range handlers {
		app := withUser(0, handler)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err, name)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
	}
}

func TestHandleGetConnectionRejectsInvalidID(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", testUserContext(1))
		return c.Next()
	})
	app.Get("/connections/:id", HandleGetConnection)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/connections/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleActivateConnectionRejectsInvalidID(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", testUserContext(1))
		return c.Next()
	})
	app.Post("/connections/:id/activate", HandleActivateConnection)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/connections/abc/activate", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
