package app

import (
	"server/config"
	"server/internal/database"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"

	adminController "server/internal/controllers/admin"
	intakeController "server/internal/controllers/intake"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	Notifier      *services.NotificationService
	ExportService *services.ExportService

	// Repositories
	ParentLeadRepo repositories.ParentLeadRepository
	CaregiverRepo  repositories.CaregiverApplicationRepository
	NewsletterRepo repositories.NewsletterRepository
	StatsRepo      repositories.StatsRepository

	// Controllers
	IntakeController *intakeController.IntakeController
	AdminController  *adminController.AdminController
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

	// Initialize services
	notifier := services.NewNotification(config)
	exportService := services.NewExport()

	// Initialize repositories
	parentLeadRepo := repositories.NewParentLead(db)
	caregiverRepo := repositories.NewCaregiverApplication(db)
	newsletterRepo := repositories.NewNewsletter(db)
	statsRepo := repositories.NewStats(db)

	// Initialize controllers with repositories and services
	middleware := middleware.New(db, config)
	intakeController := intakeController.New(
		parentLeadRepo, caregiverRepo, newsletterRepo, notifier, config)
	adminController := adminController.New(
		parentLeadRepo, caregiverRepo, newsletterRepo, statsRepo, exportService, config)

	app := &App{
		Database:         db,
		Config:           config,
		Middleware:       middleware,
		Notifier:         notifier,
		ExportService:    exportService,
		ParentLeadRepo:   parentLeadRepo,
		CaregiverRepo:    caregiverRepo,
		NewsletterRepo:   newsletterRepo,
		StatsRepo:        statsRepo,
		IntakeController: intakeController,
		AdminController:  adminController,
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
		a.Notifier,
		a.ExportService,
		a.ParentLeadRepo,
		a.CaregiverRepo,
		a.NewsletterRepo,
		a.StatsRepo,
		a.IntakeController,
		a.AdminController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	// Let in-flight notification sends finish before dropping the process.
	if a.Notifier != nil {
		a.Notifier.Wait()
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
