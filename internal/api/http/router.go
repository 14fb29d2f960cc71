package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/http/handlers"
	"github.com/suportehub/chamados-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Tickets          *handlers.TicketsHandler
	CostCenters      *handlers.CostCentersHandler
	Sectors          *handlers.SectorsHandler
	Attendants       *handlers.AttendantsHandler
	SectorAttendants *handlers.SectorAttendantsHandler
	AuthMiddleware   *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/register", cfg.Auth.Register)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/logout/:id", cfg.Auth.Logout)
	protected.Get("/usuarios", cfg.Auth.ListUsers)

	costCenters := protected.Group("/centros_de_custo")
	costCenters.Get("/", cfg.CostCenters.List)
	costCenters.Post("/", cfg.CostCenters.Create)
	costCenters.Get("/:id", cfg.CostCenters.Get)
	costCenters.Put("/:id", cfg.CostCenters.Update)
	costCenters.Delete("/:id", cfg.CostCenters.Delete)

	sectors := protected.Group("/setores")
	sectors.Get("/", cfg.Sectors.List)
	sectors.Post("/", cfg.Sectors.Create)
	sectors.Get("/:id", cfg.Sectors.Get)
	sectors.Put("/:id", cfg.Sectors.Update)
	sectors.Delete("/:id", cfg.Sectors.Delete)

	attendants := protected.Group("/atendentes")
	attendants.Get("/", cfg.Attendants.List)
	attendants.Post("/", cfg.Attendants.Create)
	attendants.Get("/:id", cfg.Attendants.Get)
	attendants.Put("/:id", cfg.Attendants.Update)
	attendants.Delete("/:id", cfg.Attendants.Delete)

	assignments := protected.Group("/setores_atendentes")
	assignments.Get("/", cfg.SectorAttendants.List)
	assignments.Post("/", cfg.SectorAttendants.Create)
	assignments.Get("/:id", cfg.SectorAttendants.Get)
	assignments.Put("/:id", cfg.SectorAttendants.Update)
	assignments.Delete("/:id", cfg.SectorAttendants.Delete)

	tickets := protected.Group("/chamados")
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Post("/:id/transferir", cfg.Tickets.Transfer)
	tickets.Post("/:id/resolver", cfg.Tickets.Resolve)
	tickets.Get("/:id/historico", cfg.Tickets.History)
}
