package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/care-portal-service/pkg/util"
)

// RequirePatient ensures the resolved principal is a patient.
func RequirePatient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewAccessDenied("Access denied")
		}
		if _, isPatient := principal.(PatientPrincipal); !isPatient {
			return apperrors.NewAccessDenied("Access denied. Patient access required.")
		}
		return c.Next()
	}
}

// RequireDoctor ensures the resolved principal is a doctor.
func RequireDoctor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewAccessDenied("Access denied")
		}
		if _, isDoctor := principal.(DoctorPrincipal); !isDoctor {
			return apperrors.NewAccessDenied("Access denied. Doctor access required.")
		}
		return c.Next()
	}
}

// RequireAuthenticated allows any resolved principal regardless of role.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewAccessDenied("Access denied")
		}
		return c.Next()
	}
}
