package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/care-portal-service/internal/domain"
	"github.com/spec-kit/care-portal-service/internal/repository"
)

type mockPatientRepo struct {
	mock.Mock
}

var _ repository.PatientRepository = (*mockPatientRepo)(nil)

func (m *mockPatientRepo) Create(ctx context.Context, patient *domain.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *mockPatientRepo) Update(ctx context.Context, patient *domain.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *mockPatientRepo) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func TestListDoctorsAppliesFilter(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	svc := NewProfileService(patients, doctors)

	specialty := "cardiology"
	active := true
	filter := repository.DoctorFilter{Specialty: &specialty, Active: &active, Limit: 10}
	listed := []domain.Doctor{{ID: "d1", Name: "Gregory", Specialty: "cardiology", Active: true}}
	doctors.On("List", mock.Anything, filter).Return(listed, nil)

	got, err := svc.ListDoctors(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, listed, got)
	doctors.AssertExpectations(t)
}

func TestUpdatePatientProfile(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	svc := NewProfileService(patients, doctors)

	patients.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Patient) bool {
		return p.ID == "p1" && p.Name == "Ada Lovelace"
	})).Return(nil)

	updated, err := svc.UpdatePatientProfile(context.Background(), activePatientPrincipal("p1"), "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	patients.AssertExpectations(t)
}

func TestUpdatePatientProfileRequiresName(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	svc := NewProfileService(patients, doctors)

	_, err := svc.UpdatePatientProfile(context.Background(), activePatientPrincipal("p1"), "")
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	patients.AssertNotCalled(t, "Update")
}

func TestUpdateDoctorProfile(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	svc := NewProfileService(patients, doctors)

	doctors.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Doctor) bool {
		return d.ID == "d1" && d.Name == "Gregory House" && d.Specialty == "diagnostics"
	})).Return(nil)

	updated, err := svc.UpdateDoctorProfile(context.Background(), activeDoctorPrincipal("d1"), "Gregory House", "diagnostics")
	require.NoError(t, err)
	assert.Equal(t, "diagnostics", updated.Specialty)
	doctors.AssertExpectations(t)
}

func TestUpdateDoctorProfileKeepsUnsetFields(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	svc := NewProfileService(patients, doctors)

	principal := activeDoctorPrincipal("d1")
	principal.Doctor.Name = "Gregory"
	principal.Doctor.Specialty = "cardiology"

	doctors.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Doctor) bool {
		return d.Name == "Gregory" && d.Specialty == "oncology"
	})).Return(nil)

	updated, err := svc.UpdateDoctorProfile(context.Background(), principal, "", "oncology")
	require.NoError(t, err)
	assert.Equal(t, "Gregory", updated.Name)
}

func TestUpdateDoctorProfileAccountGone(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	svc := NewProfileService(patients, doctors)

	doctors.On("Update", mock.Anything, mock.Anything).Return(pgx.ErrNoRows)

	_, err := svc.UpdateDoctorProfile(context.Background(), activeDoctorPrincipal("gone"), "New Name", "")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}
