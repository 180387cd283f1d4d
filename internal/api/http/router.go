package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/service-desk/internal/api/http/handlers"
	"github.com/spec-kit/service-desk/internal/auth"
	"github.com/spec-kit/service-desk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Requests       *handlers.RequestsHandler
	Board          *handlers.BoardHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes per role surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.ChangePassword)

	customer := app.Group("/customer", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleCustomer))
	customer.Post("/requests", cfg.Requests.Create)
	customer.Get("/requests", cfg.Requests.ListOwn)
	customer.Post("/requests/:id/pay", cfg.Requests.Pay)

	engineer := app.Group("/engineer", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleEngineer))
	engineer.Get("/requests", cfg.Board.ListOpen)
	engineer.Post("/requests/:id/take", cfg.Board.Take)
	engineer.Post("/requests/:id/complete", cfg.Board.Complete)

	manager := app.Group("/manager", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleManager))
	manager.Get("/requests", cfg.Board.ListAll)
	manager.Patch("/requests/:id", cfg.Board.AdminUpdate)
	manager.Get("/requests/:id/history", cfg.Board.History)

	leader := app.Group("/leader", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleLeader))
	leader.Get("/statistics", cfg.Stats.Statistics)
}
