package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luca-defeo/progetto-zoo/internal/api/http/handlers"
	"github.com/luca-defeo/progetto-zoo/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Tickets    *handlers.TicketsHandler
	Users      *handlers.UsersHandler
	Animals    *handlers.AnimalsHandler
	Enclosures *handlers.EnclosuresHandler
	Gate       *auth.Gate
}

// RegisterRoutes wires HTTP routes. Everything under /api passes through the
// gate; the health probes do not.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.Gate.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	tickets := api.Group("/ticket")
	tickets.Post("/add", cfg.Tickets.Create)
	tickets.Get("/all", cfg.Tickets.ListAll)
	tickets.Get("/dashboard", cfg.Tickets.Dashboard)
	tickets.Get("/my-tickets", cfg.Tickets.MyTickets)
	tickets.Post("/:id/accept", cfg.Tickets.Accept)
	tickets.Post("/:id/complete", cfg.Tickets.Complete)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	users := api.Group("/user")
	users.Post("/add", cfg.Users.Create)
	users.Get("/list", cfg.Users.List)
	users.Get("/:id/animals", cfg.Users.Animals)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/update/:id", cfg.Users.Update)
	users.Delete("/delete/:id", cfg.Users.Delete)

	animals := api.Group("/animal")
	animals.Post("/add", cfg.Animals.Create)
	animals.Get("/list", cfg.Animals.List)
	animals.Get("/:id", cfg.Animals.Get)
	animals.Put("/update/:id", cfg.Animals.Update)
	animals.Delete("/delete/:id", cfg.Animals.Delete)

	enclosures := api.Group("/enclosure")
	enclosures.Post("/add", cfg.Enclosures.Create)
	enclosures.Get("/list", cfg.Enclosures.List)
	enclosures.Get("/:id/animals", cfg.Enclosures.Animals)
	enclosures.Get("/:id", cfg.Enclosures.Get)
	enclosures.Put("/update/:id", cfg.Enclosures.Update)
	enclosures.Delete("/delete/:id", cfg.Enclosures.Delete)
}
