package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskapi/internal/config"
	"taskapi/internal/database"
	handlers "taskapi/internal/http/handler"
	"taskapi/internal/http/middleware"
	"taskapi/internal/model"
	"taskapi/internal/otel"
	"taskapi/internal/repository"
	"taskapi/internal/service"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Select and connect the backend; the rest of the process only sees
	// the uniform client contract.
	client, err := database.Open(ctx, database.OpenConfig{
		Backend:       database.Backend(cfg.Backend),
		Postgres:      cfg.Database,
		Schemas:       model.Schemas(),
		MongoURI:      cfg.Mongo.URI,
		MongoDatabase: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer client.Disconnect(ctx)

	taskRepo := repository.NewTaskRepository(client)
	taskSvc := service.NewTaskService(taskRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, client, taskSvc)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
