package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Todos          *handlers.TodosHandler
	AuthMiddleware *auth.Middleware
	StaticDir      string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.StaticDir != "" {
		app.Static("/static/uploads", cfg.StaticDir)
	}

	api := app.Group("/api/v1")
	api.Post("/register", cfg.Auth.Register)
	api.Post("/login/access-token", cfg.Auth.Login)
	api.Get("/users", cfg.Users.List)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/users/me", cfg.Users.Me)
	protected.Patch("/users/me", cfg.Users.UpdateMe)
	protected.Post("/users/me/image", cfg.Users.UploadImage)
	protected.Get("/activity", cfg.Users.Activity)

	protected.Get("/todos", cfg.Todos.List)
	protected.Post("/todos", cfg.Todos.Create)
	protected.Get("/todos/:id", cfg.Todos.Get)
	protected.Put("/todos/:id", cfg.Todos.Update)
	protected.Delete("/todos/:id", cfg.Todos.Delete)
}
