package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/care-portal-service/internal/api/dto"
	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/domain"
	"github.com/spec-kit/care-portal-service/internal/service"
)

// CareHandler exposes treatment plan and consent form endpoints.
type CareHandler struct {
	care *service.CareService
}

// NewCareHandler constructs handler.
func NewCareHandler(careService *service.CareService) *CareHandler {
	return &CareHandler{care: careService}
}

// CreatePlan handles POST /api/treatment-plans (doctor only).
func (h *CareHandler) CreatePlan(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	doctor, ok := principal.(auth.DoctorPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Doctor access required.")
	}

	var req dto.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PatientID == "" || req.Title == "" || req.StartDate.IsZero() {
		return fiber.NewError(http.StatusBadRequest, "patient_id, title and start_date required")
	}

	plan, err := h.care.CreatePlan(c.UserContext(), doctor, req.PatientID, req.Title, req.Description, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": plan})
}

// ListPlans handles GET /api/treatment-plans (any authenticated role).
func (h *CareHandler) ListPlans(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	plans, err := h.care.ListPlans(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": plans})
}

// UpdatePlanStatus handles PATCH /api/treatment-plans/:id/status (doctor only).
func (h *CareHandler) UpdatePlanStatus(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	doctor, ok := principal.(auth.DoctorPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Doctor access required.")
	}

	var req dto.UpdatePlanStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	status := domain.TreatmentPlanStatus(req.Status)
	switch status {
	case domain.TreatmentPlanStatusActive, domain.TreatmentPlanStatusCompleted, domain.TreatmentPlanStatusDiscontinued:
	default:
		return fiber.NewError(http.StatusBadRequest, "unknown plan status")
	}

	plan, err := h.care.UpdatePlanStatus(c.UserContext(), doctor, c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": plan})
}

// IssueConsent handles POST /api/consents (doctor only).
func (h *CareHandler) IssueConsent(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	doctor, ok := principal.(auth.DoctorPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Doctor access required.")
	}

	var req dto.IssueConsentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.PatientID == "" || req.Title == "" {
		return fiber.NewError(http.StatusBadRequest, "patient_id and title required")
	}

	form, err := h.care.IssueConsent(c.UserContext(), doctor, req.PatientID, req.Title, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": form})
}

// ListConsents handles GET /api/consents (any authenticated role).
func (h *CareHandler) ListConsents(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied")
	}

	forms, err := h.care.ListConsents(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": forms})
}

// SignConsent handles POST /api/consents/:id/sign (patient only).
func (h *CareHandler) SignConsent(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	patient, ok := principal.(auth.PatientPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Patient access required.")
	}

	form, err := h.care.SignConsent(c.UserContext(), patient, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": form})
}
