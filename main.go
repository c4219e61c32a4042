package main

import (
	"net/http"

	"fincas/config"
	"fincas/database"
	"fincas/handlers"
	"fincas/ingest"
	"fincas/middleware"
	"fincas/store"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		logrus.Fatalf("failed to initialize database: %v", err)
	}
	if err := database.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.CompanyID); err != nil {
		logrus.Fatalf("failed to seed admin user: %v", err)
	}

	db := database.GetDB()
	projectStore := store.NewProjectStore(db)
	recordStore := store.NewRecordStore(db)
	workerStore := store.NewWorkerStore(db)
	staging := ingest.NewStaging()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	projectHandler := handlers.NewProjectHandler(cfg, projectStore)
	recordHandler := handlers.NewRecordHandler(cfg, recordStore)
	uploadHandler := handlers.NewUploadHandler(cfg, staging, recordStore, projectStore)
	workerHandler := handlers.NewWorkerHandler(cfg, workerStore)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Post("/api/login", authHandler.Login)
	router.Post("/api/register", authHandler.Register)
	router.Post("/api/logout", authHandler.Logout)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Post("/api/change-password", authHandler.ChangePassword)

		r.Get("/api/projects", projectHandler.List)
		r.Post("/api/projects", projectHandler.Create)
		r.Get("/api/projects/{projectID}", projectHandler.Get)
		r.Put("/api/projects/{projectID}", projectHandler.Update)
		r.Delete("/api/projects/{projectID}", projectHandler.Delete)

		r.Get("/api/projects/{projectID}/records", recordHandler.List)
		r.Delete("/api/projects/{projectID}/records", recordHandler.DeleteRange)
		r.Put("/api/projects/{projectID}/records/{recordID}", recordHandler.Update)
		r.Delete("/api/projects/{projectID}/records/{recordID}", recordHandler.Delete)
		r.Get("/api/projects/{projectID}/records/export", recordHandler.ExportCSV)

		r.Post("/api/projects/{projectID}/upload", uploadHandler.Upload)
		r.Get("/api/projects/{projectID}/upload", uploadHandler.Staged)
		r.Post("/api/projects/{projectID}/upload/confirm", uploadHandler.Confirm)
		r.Delete("/api/projects/{projectID}/upload", uploadHandler.Discard)

		r.Get("/api/workers", workerHandler.List)
		r.Post("/api/workers", workerHandler.Create)
		r.Put("/api/workers/{workerID}", workerHandler.Update)
		r.Delete("/api/workers/{workerID}", workerHandler.Delete)
	})

	logrus.Infof("server starting on port %s", cfg.ServerPort)
	logrus.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
