package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/care-portal-service/internal/api/dto"
	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/repository"
	"github.com/spec-kit/care-portal-service/internal/service"
)

// DoctorsHandler exposes auth, directory and profile endpoints for
// doctors.
type DoctorsHandler struct {
	auth     *service.AuthService
	profiles *service.ProfileService
}

// NewDoctorsHandler constructs handler.
func NewDoctorsHandler(authService *service.AuthService, profileService *service.ProfileService) *DoctorsHandler {
	return &DoctorsHandler{auth: authService, profiles: profileService}
}

// Login handles POST /auth/doctors/login.
func (h *DoctorsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	doctor, token, exp, err := h.auth.LoginDoctor(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"doctor": fiber.Map{
				"id":        doctor.ID,
				"name":      doctor.Name,
				"email":     doctor.Email,
				"specialty": doctor.Specialty,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// List handles GET /api/doctors (any authenticated role). Patients use
// it to find a doctor to book with.
func (h *DoctorsHandler) List(c *fiber.Ctx) error {
	filter := repository.DoctorFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if specialty := c.Query("specialty"); specialty != "" {
		filter.Specialty = &specialty
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid active filter")
		}
		filter.Active = &active
	}

	doctors, err := h.profiles.ListDoctors(c.UserContext(), filter)
	if err != nil {
		return err
	}

	summaries := make([]dto.DoctorSummary, 0, len(doctors))
	for _, doctor := range doctors {
		summaries = append(summaries, dto.DoctorSummary{
			ID:        doctor.ID,
			Name:      doctor.Name,
			Specialty: doctor.Specialty,
			Active:    doctor.Active,
		})
	}
	return c.JSON(fiber.Map{"data": summaries})
}

// Me handles GET /api/doctors/me.
func (h *DoctorsHandler) Me(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	doctor, ok := principal.(auth.DoctorPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Doctor access required.")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"id":        doctor.Doctor.ID,
			"name":      doctor.Doctor.Name,
			"email":     doctor.Doctor.Email,
			"specialty": doctor.Doctor.Specialty,
			"active":    doctor.Doctor.Active,
		},
	})
}

// UpdateMe handles PATCH /api/doctors/me.
func (h *DoctorsHandler) UpdateMe(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	doctor, ok := principal.(auth.DoctorPrincipal)
	if !ok {
		return fiber.NewError(http.StatusForbidden, "Access denied. Doctor access required.")
	}

	var req dto.UpdateDoctorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.profiles.UpdateDoctorProfile(c.UserContext(), doctor, req.Name, req.Specialty)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"id":        updated.ID,
			"name":      updated.Name,
			"email":     updated.Email,
			"specialty": updated.Specialty,
			"active":    updated.Active,
		},
	})
}
