package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mitgajera/Blockchain-indexer/app/repository"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/cache"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/database"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/env"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/helius"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/indexer"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/router"
	"github.com/mitgajera/Blockchain-indexer/internal/pkg/targetdb"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	subSync := indexer.NewSubscriptionSync(
		helius.NewClientFromEnv(),
		env.GetEnv("PUBLIC_URL", "http://localhost:4000"),
	)
	indexer.Initialize(indexer.NewService(
		repository.GetGlobalRepositories(),
		subSync,
		targetdb.NewPool(),
		cache.NewStore(),
	))

	app := fiber.New(fiber.Config{
		AppName: "Blockchain-indexer",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
