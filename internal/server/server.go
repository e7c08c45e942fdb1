package server

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mansoorceksport/liftlog/internal/config"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/handler"
	"github.com/mansoorceksport/liftlog/internal/middleware"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config   *config.Config
	Store    domain.EntryStore
	Uploader domain.ExportUploader // nil when no export backup is configured
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	logService := service.NewLogService(context.Background(), deps.Store, deps.Uploader)
	entryHandler := handler.NewEntryHandler(logService)

	app := fiber.New(fiber.Config{
		AppName:      "Liftlog API",
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Correlation-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	if deps.Config.OTEL.Enabled {
		app.Use(telemetry.FiberMiddleware())
	}
	app.Use(middleware.CorrelationID())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "liftlog",
			"mode":    deps.Config.Mode,
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	entries := v1.Group("/entries")
	entries.Get("/", entryHandler.ListEntries)
	entries.Post("/", entryHandler.CreateEntry)
	entries.Delete("/:id", entryHandler.DeleteEntry)

	v1.Post("/export", entryHandler.ExportEntries)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidFileName), errors.Is(err, domain.ErrPathTraversal):
		code = fiber.StatusBadRequest
	default:
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
