package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fronzypie/share-your-experience/internal/api/http/handlers"
	"github.com/fronzypie/share-your-experience/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Experiences    *handlers.ExperiencesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Health)
	api.Get("/health/ready", cfg.Health.Ready)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Auth.Me)

	experiences := api.Group("/experiences")
	experiences.Get("", cfg.Experiences.List)
	experiences.Get("/:id", cfg.Experiences.Get)
	experiences.Post("", cfg.AuthMiddleware.RequireAuth, cfg.Experiences.Create)
	experiences.Put("/:id", cfg.AuthMiddleware.RequireAuth, cfg.Experiences.Update)
	experiences.Delete("/:id", cfg.AuthMiddleware.RequireAuth, cfg.Experiences.Delete)
}
