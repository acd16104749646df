package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/message-admin/internal/api/http/handlers"
	"github.com/spec-kit/message-admin/internal/auth"
	"github.com/spec-kit/message-admin/internal/domain"
	"github.com/spec-kit/message-admin/internal/flash"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Staff   *handlers.StaffHandler
	Session *auth.SessionMiddleware
	Flash   *flash.Middleware
	Metrics fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	web := app.Group("", cfg.Flash.Handle, cfg.Session.Handle)
	web.Get("/", cfg.Auth.Home)
	web.Get(domain.LoginPath, cfg.Auth.LoginPage)
	web.Post(domain.LoginPath, cfg.Auth.Login)
	web.Post("/logout", cfg.Auth.Logout)

	requireAdmin := auth.RequireRole(domain.RoleAdmin)
	web.Get(domain.AdminLandingPath, requireAdmin, cfg.Admin.Dashboard)
	web.Get("/admin-dashboard", requireAdmin, cfg.Admin.Dashboard)
	web.Get("/admin/categories", requireAdmin, cfg.Admin.Categories)
	web.Post("/admin/categories", requireAdmin, cfg.Admin.CreateCategory)
	web.Get("/admin/message-categories", requireAdmin, cfg.Admin.Messages)
	web.Post("/admin/message-categories", requireAdmin, cfg.Admin.CreateMessage)

	web.Get(domain.StaffLandingPath, auth.RequireRole(domain.RoleStaff), cfg.Staff.Messages)
}
