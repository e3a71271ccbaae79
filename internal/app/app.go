package app

import (
	"context"

	"skimmer/config"
	"skimmer/internal/controllers"
	"skimmer/internal/database"
	"skimmer/internal/handlers/middleware"
	"skimmer/internal/jobs"
	"skimmer/internal/repositories"
	"skimmer/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TransactionService *services.TransactionService
	SchedulerService   *services.SchedulerService

	// Repositories
	Repos repositories.Repository

	// Controllers
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	transactionService := services.NewTransactionService(db)
	schedulerService := services.NewSchedulerService()

	repos := repositories.New(db)

	middleware := middleware.New(db, config)
	controllers := controllers.New(repos, transactionService)

	if config.SchedulerEnabled {
		// Expiry sweep runs at 2:00 AM UTC daily
		recurringExpiryJob := jobs.NewRecurringExpiryJob(repos.RecurringService, services.Nightly)
		if err := schedulerService.AddJob(recurringExpiryJob); err != nil {
			return &App{}, log.Err("failed to register recurring expiry job", err)
		}
		log.Info("Registered recurring expiry job with scheduler")

		if err := schedulerService.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		TransactionService: transactionService,
		SchedulerService:   schedulerService,
		Repos:              repos,
		Controllers:        controllers,
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

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TransactionService,
		a.SchedulerService,
		a.Repos.Customer,
		a.Repos.Service,
		a.Repos.RecurringService,
		a.Controllers.Customer,
		a.Controllers.Service,
		a.Controllers.Recurring,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.SchedulerService != nil {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
