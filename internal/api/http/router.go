package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CaioVictor3/Bus-Manager-App/internal/api/http/handlers"
	"github.com/CaioVictor3/Bus-Manager-App/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Students       *handlers.StudentsHandler
	Route          *handlers.RouteHandler
	Lookup         *handlers.LookupHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Roster and route endpoints sit
// behind the authenticated driver session.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Session.Register)
	authGroup.Post("/login", cfg.Session.Login)
	authGroup.Post("/logout", cfg.Session.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Session.Me)

	students := app.Group("/students", cfg.AuthMiddleware.Handle)
	students.Get("/", cfg.Students.List)
	students.Post("/", cfg.Students.Create)
	students.Patch("/:id", cfg.Students.Update)
	students.Delete("/:id", cfg.Students.Delete)
	students.Post("/:id/presence/toggle", cfg.Students.TogglePresence)

	route := app.Group("/route", cfg.AuthMiddleware.Handle)
	route.Get("/settings", cfg.Route.GetSettings)
	route.Put("/settings", cfg.Route.PutSettings)
	route.Get("/stops", cfg.Route.Stops)

	app.Get("/lookup/cep/:code", cfg.Lookup.Get)
}
