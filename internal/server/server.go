package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gearguard/config"
	"gearguard/internal/app"
	"gearguard/internal/handlers"
	"gearguard/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogs "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
)

// Request bodies are small JSON documents; there are no uploads.
const maxBodySize = 1 * 1024 * 1024

type AppServer struct {
	FiberApp *fiber.App
	log      logger.Logger
}

func New(app *app.App) (*AppServer, error) {
	log := logger.New("server").Function("New")
	log.Info("Initializing server")

	server := newFiberApp(app.Config, log)

	if err := handlers.Router(server, app); err != nil {
		return &AppServer{}, log.Err("failed to initialize handlers", err)
	}

	return &AppServer{FiberApp: server, log: log}, nil
}

// newFiberApp builds the fiber app with the shared middleware stack but no
// routes. Errors that escape a handler, unknown routes and panics all answer
// with the same {"error": ...} body the handlers use.
func newFiberApp(cfg config.Config, log logger.Logger) *fiber.App {
	fiberConfig := fiber.Config{
		ServerHeader:            fmt.Sprintf("GearGuard/%s", cfg.GeneralVersion),
		AppName:                 "gearguard_server",
		BodyLimit:               maxBodySize,
		EnableTrustedProxyCheck: true,
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             120 * time.Second,
		DisableStartupMessage:   true,
		ErrorHandler:            errorHandler(log),
	}

	if cfg.Environment == "development" {
		log.Info("Enabling development mode")
		fiberConfig.DisableStartupMessage = false
		fiberConfig.EnablePrintRoutes = true
	}

	server := fiber.New(fiberConfig)

	server.Use(recover.New())

	origins := strings.TrimSpace(cfg.CorsAllowOrigins)
	server.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.TraceIDHeader,
		AllowCredentials: origins != "" && origins != "*",
		ExposeHeaders:    middleware.TraceIDHeader,
		MaxAge:           300,
	}))

	server.Use(fiberLogs.New(fiberLogs.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | ${respHeader:" +
			middleware.TraceIDHeader + "}\n",
	}))
	server.Use(compress.New())

	// JSON only; nothing here is meant to be framed or rendered.
	server.Use(helmet.New(helmet.Config{
		Filter:                func(c *fiber.Ctx) bool { return c.Path() == "/ws" },
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		HSTSMaxAge:            hstsMaxAge(cfg.Environment),
		XDNSPrefetchControl:   "off",
		XPermittedCrossDomain: "none",
	}))

	return server
}

func hstsMaxAge(environment string) int {
	if environment == "production" {
		return 180 * 24 * 60 * 60
	}
	return 0
}

func errorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			message := fiberErr.Message
			if fiberErr.Code == fiber.StatusNotFound {
				message = "Not found."
			}
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": message})
		}

		log.TraceFromContext(c.UserContext()).
			Er("unhandled error", err, "method", c.Method(), "path", c.Path())
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Internal server error"})
	}
}

func (s *AppServer) Listen(port int) error {
	log := s.log.Function("Listen")

	if port == 0 {
		return log.Error(
			"Fatal error: invalid port",
			"port", port,
		)
	}

	log.Info("Starting server", "port", port)
	return s.FiberApp.Listen(fmt.Sprintf(":%d", port))
}
