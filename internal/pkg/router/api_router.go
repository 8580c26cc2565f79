package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/mitgajera/Blockchain-indexer/app/controllers"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	// The provider delivers batches here; authenticated by obscurity of the
	// per-user callback URL plus optional provider auth header, not by API
	// key. Per-event failures never fail the HTTP exchange.
	v1.Post("/webhook/:userId", controllers.HandleWebhook)

	secured := v1.Group("", middleware.APIKeyAuthMiddleware())

	secured.Get("/connections", controllers.HandleListConnections)
	secured.Post("/connections", controllers.HandleCreateConnection)
	secured.Post("/connections/test", controllers.HandleTestConnection)
	secured.Get("/connections/:id", controllers.HandleGetConnection)
	secured.Patch("/connections/:id", controllers.HandleUpdateConnection)
	secured.Post("/connections/:id/activate", controllers.HandleActivateConnection)
	secured.Delete("/connections/:id", controllers.HandleDeleteConnection)

	secured.Get("/configs", controllers.HandleListConfigs)
	secured.Post("/configs", controllers.HandleCreateConfig)
	secured.Get("/configs/:id", controllers.HandleGetConfig)
	secured.Patch("/configs/:id", controllers.HandleUpdateConfig)
	secured.Delete("/configs/:id", controllers.HandleDeleteConfig)

	secured.Get("/logs", controllers.HandleListLogs)
	secured.Post("/query", controllers.HandleRunQuery)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
