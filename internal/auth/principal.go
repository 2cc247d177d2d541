package auth

import "github.com/spec-kit/care-portal-service/internal/domain"

// Principal is the resolved, authoritative identity for a single
// request. It is constructed fresh per request, only after the backing
// account record has been confirmed to exist, and is never cached
// across requests.
type Principal interface {
	AccountID() string
	Role() domain.Role
}

// PatientPrincipal carries the full patient record.
type PatientPrincipal struct {
	Patient *domain.Patient
}

func (p PatientPrincipal) AccountID() string { return p.Patient.ID }

func (p PatientPrincipal) Role() domain.Role { return domain.RolePatient }

// DoctorPrincipal carries the full doctor record.
type DoctorPrincipal struct {
	Doctor *domain.Doctor
}

func (p DoctorPrincipal) AccountID() string { return p.Doctor.ID }

func (p DoctorPrincipal) Role() domain.Role { return domain.RoleDoctor }
