package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/riadov001/Myjantesappv2/internal/api/http/handlers"
	"github.com/riadov001/Myjantesappv2/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	SessionMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The auth surface lives under /api/auth
// to match the paths the PWA proxy forwards.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/oauth/google", cfg.Auth.OAuthGoogle)
	authGroup.Post("/oauth/facebook", cfg.Auth.OAuthFacebook)
	authGroup.Post("/oauth/apple", cfg.Auth.OAuthApple)
	authGroup.Post("/logout", cfg.Auth.Logout)

	authGroup.Get("/user", cfg.SessionMiddleware.Handle, cfg.Auth.CurrentUser)
}
