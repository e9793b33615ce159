package main

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"webnote/docs"
	"webnote/internal/config"
	handlers "webnote/internal/http/handler"
	"webnote/internal/http/middleware"
	"webnote/internal/markdown"
	otelinit "webnote/internal/otel"
	"webnote/internal/service"
	"webnote/internal/storage"
)

// @title Webnote API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize tracing (noop when OTEL_SDK_DISABLED or no exporter reachable)
	shutdown, err := otelinit.Init(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdown(context.Background())

	// Initialize filesystem storage (creates the save directory if missing)
	store, err := storage.NewDisk(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	noteSvc := service.NewNoteService(store, markdown.New(), cfg.Storage)
	attSvc := service.NewAttachmentService(store, cfg.Storage)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Headroom over the configured limit so over-sized uploads reach the
		// handler and get a proper error response instead of a bare 413.
		BodyLimit: cfg.Storage.SingleFileSizeLimit + 1<<20,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Register HTTP routes with injected services; the note wildcard routes
	// go last, so this must stay after /metrics and /swagger.
	handlers.RegisterRoutes(app, store, noteSvc, attSvc, cfg.StaticRoot)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
