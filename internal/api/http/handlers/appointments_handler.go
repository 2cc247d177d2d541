package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/care-portal-service/internal/api/dto"
	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/service"
)

// AppointmentsHandler exposes appointment endpoints.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointmentService}
}

// Book handles POST /api/appointments (patient only).
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	patient, ok := principal.(auth.PatientPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Patient access required.")
	}

	var req dto.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.DoctorID == "" || req.ScheduledAt.IsZero() {
		return fiber.NewError(http.StatusBadRequest, "doctor_id and scheduled_at required")
	}

	appt, err := h.appointments.Book(c.UserContext(), patient, req.DoctorID, req.ScheduledAt, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": appt})
}

// List handles GET /api/appointments (any authenticated role).
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	appts, err := h.appointments.ListForPrincipal(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appts})
}

// Confirm handles POST /api/appointments/:id/confirm (doctor only).
func (h *AppointmentsHandler) Confirm(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	doctor, ok := principal.(auth.DoctorPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Doctor access required.")
	}

	var req dto.AppointmentActionRequest
	_ = c.BodyParser(&req)

	appt, err := h.appointments.Confirm(c.UserContext(), doctor, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appt})
}

// Cancel handles POST /api/appointments/:id/cancel (owner only).
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	var req dto.AppointmentActionRequest
	_ = c.BodyParser(&req)

	appt, err := h.appointments.Cancel(c.UserContext(), principal, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appt})
}
