package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/filestore"
	"github.com/phrazzld/tasks-api/internal/platform/postgres"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is only set for the postgres backend
	db *sql.DB

	backend     store.Backend
	taskStore   store.TaskStore
	taskService service.TaskService
	handler     *api.TaskHandler
}

// newApplication creates a new application instance with all dependencies
// initialized for the configured store backend.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Store.Backend {
	case config.BackendFile:
		fileBackend := filestore.New(cfg.Store.Path, logger)
		app.backend = fileBackend
		logger.Info("Using file store", "path", fileBackend.Path())

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.backend = postgres.NewBackend(db, cfg.Database.Collection, logger)
		logger.Info("Database connection established", "collection", cfg.Database.Collection)

	case config.BackendMemory:
		app.backend = store.NewMemoryBackend(nil)
		logger.Warn("Using in-memory store; tasks are lost on restart")

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	app.taskStore = store.NewJSONStore(app.backend, logger)

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, nil, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.handler = api.NewTaskHandler(app.taskService, cfg.Server.Label, nil, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// router returns the HTTP handler serving the API.
func (app *application) router() http.Handler {
	return api.NewRouter(app.handler, api.RouterConfig{BasePath: app.config.Server.BasePath}, app.logger)
}

// Run serves the API on the configured port until ctx is cancelled, then
// shuts down gracefully and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.router()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}
	app.logger.Info("Application shutdown completed")
}
