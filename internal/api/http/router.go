package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/care-portal-service/internal/api/http/handlers"
	"github.com/spec-kit/care-portal-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Patients       *handlers.PatientsHandler
	Doctors        *handlers.DoctorsHandler
	Sessions       *handlers.SessionsHandler
	Appointments   *handlers.AppointmentsHandler
	Care           *handlers.CareHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Each protected route composes its
// own pipeline: full authentication, then the role policy it needs.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/patients/register", cfg.Patients.Register)
	authGroup.Post("/patients/login", cfg.Patients.Login)
	authGroup.Post("/doctors/login", cfg.Doctors.Login)

	authGroup.Get("/oauth/login", cfg.Sessions.OAuthLogin)
	authGroup.Get("/oauth/callback", cfg.Sessions.OAuthCallback)
	authGroup.Post("/logout", cfg.Sessions.Logout)

	// Accepts any valid token without an account lookup.
	authGroup.Get("/token", cfg.AuthMiddleware.HandleClaims, cfg.Sessions.Introspect)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Get("/patients/me", auth.RequirePatient(), cfg.Patients.Me)
	api.Patch("/patients/me", auth.RequirePatient(), cfg.Patients.UpdateMe)
	api.Get("/doctors", auth.RequireAuthenticated(), cfg.Doctors.List)
	api.Get("/doctors/me", auth.RequireDoctor(), cfg.Doctors.Me)
	api.Patch("/doctors/me", auth.RequireDoctor(), cfg.Doctors.UpdateMe)

	api.Post("/appointments", auth.RequirePatient(), cfg.Appointments.Book)
	api.Get("/appointments", auth.RequireAuthenticated(), cfg.Appointments.List)
	api.Post("/appointments/:id/confirm", auth.RequireDoctor(), cfg.Appointments.Confirm)
	api.Post("/appointments/:id/cancel", auth.RequireAuthenticated(), cfg.Appointments.Cancel)

	api.Post("/treatment-plans", auth.RequireDoctor(), cfg.Care.CreatePlan)
	api.Get("/treatment-plans", auth.RequireAuthenticated(), cfg.Care.ListPlans)
	api.Patch("/treatment-plans/:id/status", auth.RequireDoctor(), cfg.Care.UpdatePlanStatus)

	api.Post("/consents", auth.RequireDoctor(), cfg.Care.IssueConsent)
	api.Get("/consents", auth.RequireAuthenticated(), cfg.Care.ListConsents)
	api.Post("/consents/:id/sign", auth.RequirePatient(), cfg.Care.SignConsent)
}
