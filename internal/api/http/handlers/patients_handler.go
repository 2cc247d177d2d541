package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/care-portal-service/internal/api/dto"
	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/service"
)

// PatientsHandler exposes auth and profile endpoints for patients.
type PatientsHandler struct {
	auth     *service.AuthService
	profiles *service.ProfileService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(authService *service.AuthService, profileService *service.ProfileService) *PatientsHandler {
	return &PatientsHandler{auth: authService, profiles: profileService}
}

// Register handles POST /auth/patients/register.
func (h *PatientsHandler) Register(c *fiber.Ctx) error {
	var req dto.PatientRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	patient, token, exp, err := h.auth.RegisterPatient(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"patient": fiber.Map{
				"id":    patient.ID,
				"name":  patient.Name,
				"email": patient.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/patients/login.
func (h *PatientsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	patient, token, exp, err := h.auth.LoginPatient(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"patient": fiber.Map{
				"id":    patient.ID,
				"name":  patient.Name,
				"email": patient.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /api/patients/me.
func (h *PatientsHandler) Me(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	patient, ok := principal.(auth.PatientPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Patient access required.")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"id":     patient.Patient.ID,
			"name":   patient.Patient.Name,
			"email":  patient.Patient.Email,
			"status": patient.Patient.Status,
		},
	})
}

// UpdateMe handles PATCH /api/patients/me.
func (h *PatientsHandler) UpdateMe(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	patient, ok := principal.(auth.PatientPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Patient access required.")
	}

	var req dto.UpdatePatientProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.profiles.UpdatePatientProfile(c.UserContext(), patient, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"id":     updated.ID,
			"name":   updated.Name,
			"email":  updated.Email,
			"status": updated.Status,
		},
	})
}
