package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"course-promo/app/controller"
	"course-promo/app/router"
	"course-promo/config"
	"course-promo/db"
	"course-promo/repository"
	"course-promo/service"
)

// Initialize wires repositories, services and controllers and returns the HTTP handler
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	// Initialize catalog
	catalogRepo, err := repository.NewCatalogRepository(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Optional lead log
	var submissionRepo repository.SubmissionRepositoryInterface
	if connStr := db.ConnString(cfg.Database.URL); connStr != "" {
		if err := db.InitDB(ctx, connStr); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo := repository.NewSubmissionRepository()
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		submissionRepo = repo
	} else {
		log.Printf("⚠️  No database configured, submissions will not be logged")
	}

	// Optional Drive archive
	var archive service.ArchiveServiceInterface
	if cfg.Drive.FolderID != "" {
		driveService, err := service.NewDriveArchiveService(ctx, cfg.Drive.CredentialsPath, cfg.Drive.FolderID)
		if err != nil {
			return nil, err
		}
		archive = driveService
	} else {
		log.Printf("⚠️  DRIVE_FOLDER_ID not set, posters will not be archived")
	}

	if cfg.Webhook.URL == "" {
		log.Printf("⚠️  DISCORD_WEBHOOK_URL not set, submissions will be rejected")
	}

	// Initialize services
	renderService, err := service.NewRenderService(catalogRepo)
	if err != nil {
		return nil, err
	}
	captureService := service.NewCaptureService(cfg.Server.BaseURL, cfg.Capture.ChromePath, cfg.Capture.Timeout)
	webhookService := service.NewWebhookService(cfg.Webhook.URL, cfg.Webhook.Timeout)
	submissionService := service.NewSubmissionService(
		catalogRepo,
		captureService,
		webhookService,
		archive,
		submissionRepo,
		cfg.Capture.PixelRatio,
		cfg.Capture.MaxDimension,
	)

	// Create controllers
	controllers := &router.Controllers{
		Page: controller.NewPageController(catalogRepo, renderService, submissionService),
		API:  controller.NewAPIController(catalogRepo, submissionService),
	}

	opts := router.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RequestTimeout: cfg.Capture.Timeout + cfg.Webhook.Timeout + 15*time.Second,
	}
	if cfg.Admin.Enabled() {
		opts.AdminCredentials = map[string]string{cfg.Admin.User: cfg.Admin.Password}
	}

	return router.NewRouter(controllers, opts), nil
}
