package app

import (
	"context"

	"gearguard/config"
	"gearguard/internal/controllers"
	"gearguard/internal/database"
	"gearguard/internal/events"
	"gearguard/internal/handlers/middleware"
	"gearguard/internal/jobs"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Config      config.Config
	EventBus    *events.EventBus
	Websocket   *websockets.Manager
	Middleware  middleware.Middleware
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events)
	service := services.New(db, config, eventBus)
	repos := repositories.New(db)

	websocket, err := websockets.New(eventBus, service.Auth)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	if err := jobs.RegisterAllJobs(service.Scheduler, config, service); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		EventBus:    eventBus,
		Websocket:   websocket,
		Middleware:  middleware.New(service.Auth),
		Services:    service,
		Repos:       repos,
		Controllers: controllers.New(service, repos),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Auth,
		a.Services.Scheduler,
		a.Services.AlertDispatch,
		a.Controllers.Auth,
		a.Controllers.Team,
		a.Controllers.User,
		a.Controllers.Equipment,
		a.Controllers.MaintenanceRequest,
		a.Controllers.Notification,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
