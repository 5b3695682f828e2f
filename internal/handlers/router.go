package handlers

import (
	"gearguard/internal/app"
	"gearguard/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app app.App, router fiber.Router, name string) Handler {
	return Handler{
		middleware: app.Middleware,
		log:        logger.New("handlers").File(name),
		router:     router,
	}
}

func Router(router fiber.Router, app *app.App) (err error) {
	if app.Websocket != nil {
		WebSocketHandler(router, app.Websocket)
	}

	api := router.Group("/api", app.Middleware.TraceID(), app.Middleware.OptionalAuth())
	var ping Pinger
	if app.Database.SQL != nil {
		ping = app.Database.Ping
	}
	HealthHandler(api, app.Config, ping)
	NewAuthHandler(*app, api).Register()
	NewTeamHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewEquipmentHandler(*app, api).Register()
	NewMaintenanceRequestHandler(*app, api).Register()
	NewNotificationHandler(*app, api).Register()

	return nil
}
