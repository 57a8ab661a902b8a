package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/workdeck/workdeck-api/internal/api"
	apiMiddleware "github.com/workdeck/workdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.blacklistService)
	workspaceHandler := api.NewWorkspaceHandler(app.workspaceService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	tagHandler := api.NewTagHandler(app.taskService, app.logger)
	personalHandler := api.NewPersonalHandler(app.personalService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.blacklistService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/token", authHandler.Token)

		// Protected routes. Logout sits here too: the middleware rejects
		// blacklisted tokens before any handler runs, so a revoked
		// session cannot log out again.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
			r.Delete("/users/{id}", authHandler.DeleteUser)

			r.Get("/workspaces", workspaceHandler.List)
			r.Post("/workspaces", workspaceHandler.Create)
			r.Get("/workspaces/{id}", workspaceHandler.Get)
			r.Delete("/workspaces/{id}", workspaceHandler.Delete)
			r.Post("/workspaces/{id}/add-user", workspaceHandler.AddUser)
			r.Post("/workspaces/{id}/remove-user", workspaceHandler.RemoveUser)

			r.Get("/workspaces/{id}/tasks", taskHandler.List)
			r.Post("/workspaces/{id}/tasks", taskHandler.Create)
			r.Get("/workspace/tasks/{id}", taskHandler.Get)
			r.Put("/workspace/tasks/{id}", taskHandler.Update)
			r.Delete("/workspace/tasks/{id}", taskHandler.Delete)
			r.Post("/workspace/tasks/{id}/add-user", taskHandler.Assign)
			r.Post("/workspace/tasks/{id}/complete", taskHandler.Complete)

			r.Get("/workspaces/{id}/tags", tagHandler.List)
			r.Post("/workspaces/{id}/tags", tagHandler.Create)

			r.Get("/user/tags", personalHandler.ListTags)
			r.Post("/user/tags", personalHandler.CreateTag)
			r.Get("/user/tasks", personalHandler.ListTasks)
			r.Post("/user/tasks", personalHandler.CreateTask)
			r.Get("/user/tasks/{id}", personalHandler.GetTask)
			r.Post("/user/tasks/{id}/complete", personalHandler.CompleteTask)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
