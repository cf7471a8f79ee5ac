package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/timeclock-service/internal/api/http/handlers"
	"github.com/spec-kit/timeclock-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Clock   *handlers.ClockHandler
	Profile *handlers.ProfileHandler
	Admin   *handlers.AdminHandler
	Gate    *auth.Gate
}

// RegisterRoutes wires HTTP routes. Every protected route re-derives the
// session and role on each call; nothing is cached across requests.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	requireSession := cfg.Gate.RequireSession()
	requireAdmin := cfg.Gate.RequireAdmin()

	app.Get("/", cfg.Auth.Entry)
	app.Post("/", cfg.Auth.Entry)
	app.Get("/register", cfg.Auth.Register)
	app.Post("/register", cfg.Auth.Register)
	app.Get("/login", cfg.Auth.Login)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/logout", cfg.Auth.Logout)

	app.Get("/staff_dashboard", requireSession, cfg.Profile.StaffDashboard)
	app.Get("/clock-in-out", requireSession, cfg.Clock.ClockInOut)
	app.Post("/clock-in-out", requireSession, cfg.Clock.ClockInOut)
	app.Get("/profile", requireSession, cfg.Profile.Profile)
	app.Post("/profile", requireSession, cfg.Profile.Profile)
	app.Get("/history", requireSession, cfg.Clock.History)
	app.Get("/export-history", requireSession, cfg.Clock.ExportHistory)

	app.Get("/admin_register", cfg.Auth.AdminRegister)
	app.Post("/admin_register", cfg.Auth.AdminRegister)
	app.Get("/admin_login", cfg.Auth.AdminLogin)
	app.Post("/admin_login", cfg.Auth.AdminLogin)

	app.Get("/admin_clock_in_out", requireAdmin, cfg.Clock.AdminClockInOut)
	app.Post("/admin_clock_in_out", requireAdmin, cfg.Clock.AdminClockInOut)
	app.Get("/admin_dashboard", requireAdmin, cfg.Admin.Dashboard)
	app.Get("/edit_staff", requireAdmin, cfg.Admin.EditStaff)
	app.Post("/edit_staff", requireAdmin, cfg.Admin.EditStaff)
	app.Get("/add_staff", requireAdmin, cfg.Admin.AddStaff)
	app.Post("/add_staff", requireAdmin, cfg.Admin.AddStaff)
	app.Get("/delete_staff/:id", requireAdmin, cfg.Admin.DeleteStaff)

	// admin_profile carries a session requirement only; any signed-in user
	// edits their own row through it.
	app.Get("/admin_profile", requireSession, cfg.Profile.AdminProfile)
	app.Post("/admin_profile", requireSession, cfg.Profile.AdminProfile)
	app.Get("/admin_history", requireAdmin, cfg.Clock.AdminHistory)
	app.Get("/admin_export_history", requireAdmin, cfg.Clock.AdminExportHistory)
}
