package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/domain"
	"github.com/spec-kit/care-portal-service/internal/repository"
	apperrors "github.com/spec-kit/care-portal-service/pkg/util"
)

// ProfileService serves the doctor directory and account profile
// updates.
type ProfileService struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

// NewProfileService builds the service.
func NewProfileService(patients repository.PatientRepository, doctors repository.DoctorRepository) *ProfileService {
	return &ProfileService{patients: patients, doctors: doctors}
}

// ListDoctors returns the doctor directory patients browse before
// booking.
func (s *ProfileService) ListDoctors(ctx context.Context, filter repository.DoctorFilter) ([]domain.Doctor, error) {
	return s.doctors.List(ctx, filter)
}

// UpdatePatientProfile renames the calling patient's account.
func (s *ProfileService) UpdatePatientProfile(ctx context.Context, principal auth.PatientPrincipal, name string) (*domain.Patient, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	patient := *principal.Patient
	patient.Name = name
	if err := s.patients.Update(ctx, &patient); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", nil)
		}
		return nil, err
	}
	return &patient, nil
}

// UpdateDoctorProfile updates the calling doctor's name and specialty.
// Empty fields keep their current value.
func (s *ProfileService) UpdateDoctorProfile(ctx context.Context, principal auth.DoctorPrincipal, name, specialty string) (*domain.Doctor, error) {
	if name == "" && specialty == "" {
		return nil, apperrors.NewValidationError("nothing to update", nil)
	}

	doctor := *principal.Doctor
	if name != "" {
		doctor.Name = name
	}
	if specialty != "" {
		doctor.Specialty = specialty
	}
	if err := s.doctors.Update(ctx, &doctor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", nil)
		}
		return nil, err
	}
	return &doctor, nil
}
