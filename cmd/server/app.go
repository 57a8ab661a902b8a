package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/workdeck/workdeck-api/internal/config"
	"github.com/workdeck/workdeck-api/internal/platform/mailer"
	"github.com/workdeck/workdeck-api/internal/platform/postgres"
	"github.com/workdeck/workdeck-api/internal/service"
	"github.com/workdeck/workdeck-api/internal/service/auth"
	"github.com/workdeck/workdeck-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore      store.UserStore
	workspaceStore store.WorkspaceStore
	taskStore      store.TaskStore
	tagStore       store.TagStore
	userTagStore   store.UserTagStore
	userTaskStore  store.UserTaskStore
	tokenStore     store.TokenStore

	// Services
	jwtService       auth.JWTService
	blacklistService *auth.BlacklistService
	userService      *service.UserService
	workspaceService *service.WorkspaceService
	taskService      *service.TaskService
	personalService  *service.PersonalService
}

// newApplication creates an application with all dependencies wired. It
// accepts the core dependencies that must be established before
// application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Stores
	app.userStore = postgres.NewUserStore(db, logger)
	app.workspaceStore = postgres.NewWorkspaceStore(db, logger)
	app.taskStore = postgres.NewTaskStore(db, logger)
	app.tagStore = postgres.NewTagStore(db, logger)
	app.userTagStore = postgres.NewUserTagStore(db, logger)
	app.userTaskStore = postgres.NewUserTaskStore(db, logger)
	app.tokenStore = postgres.NewTokenStore(db, logger)

	app.blacklistService = auth.NewBlacklistService(app.tokenStore, logger)

	// Outbound mail is optional; a nil mailer disables the welcome mail.
	var welcomeMailer service.Mailer
	if m := mailer.New(cfg.Mail, logger); m != nil {
		welcomeMailer = m
		logger.Info("Mailer initialized", "host", cfg.Mail.Host)
	}

	app.userService, err = service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		welcomeMailer,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.workspaceService, err = service.NewWorkspaceService(db, app.workspaceStore, app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace service: %w", err)
	}

	app.taskService, err = service.NewTaskService(
		db,
		app.taskStore,
		app.tagStore,
		app.workspaceStore,
		app.userStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.personalService, err = service.NewPersonalService(db, app.userTagStore, app.userTaskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create personal service: %w", err)
	}

	// One-shot superuser bootstrap; a lost race against a concurrent
	// bootstrap is tolerated.
	if err := app.userService.EnsureSuperuser(
		ctx,
		cfg.Bootstrap.AdminUsername,
		cfg.Bootstrap.AdminEmail,
		cfg.Bootstrap.AdminPassword,
	); err != nil {
		return nil, fmt.Errorf("failed to bootstrap superuser: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
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
	}

	app.logger.Info("Application shutdown completed")
}
