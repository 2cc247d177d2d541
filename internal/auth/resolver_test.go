package auth

import (
	"context"
	"errors"
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

type mockDoctorRepo struct {
	mock.Mock
}

var _ repository.DoctorRepository = (*mockDoctorRepo)(nil)

func (m *mockDoctorRepo) Create(ctx context.Context, doctor *domain.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *mockDoctorRepo) Update(ctx context.Context, doctor *domain.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}

func (m *mockDoctorRepo) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}

func (m *mockDoctorRepo) List(ctx context.Context, filter repository.DoctorFilter) ([]domain.Doctor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Doctor), args.Error(1)
}

func TestResolveMissingClaims(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	resolver := NewIdentityResolver(patients, doctors)

	cases := []struct {
		name   string
		claims *Claims
	}{
		{"nil claims", nil},
		{"empty subject", &Claims{Role: domain.RolePatient}},
		{"missing role", &Claims{SubjectID: "u123"}},
		{"unknown role", &Claims{SubjectID: "u123", Role: "admin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			principal, err := resolver.Resolve(context.Background(), tc.claims)
			assert.Nil(t, principal)
			assert.ErrorIs(t, err, ErrMissingClaims)
		})
	}

	patients.AssertNotCalled(t, "GetByID")
	doctors.AssertNotCalled(t, "GetByID")
}

func TestResolvePatient(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	resolver := NewIdentityResolver(patients, doctors)

	record := &domain.Patient{ID: "p1", Name: "Ada", Status: domain.PatientStatusActive}
	patients.On("GetByID", mock.Anything, "p1").Return(record, nil)

	principal, err := resolver.Resolve(context.Background(), &Claims{SubjectID: "p1", Role: domain.RolePatient})
	require.NoError(t, err)

	patient, ok := principal.(PatientPrincipal)
	require.True(t, ok)
	assert.Equal(t, record, patient.Patient)
	assert.Equal(t, "p1", principal.AccountID())
	assert.Equal(t, domain.RolePatient, principal.Role())
	doctors.AssertNotCalled(t, "GetByID")
}

func TestResolveDoctor(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	resolver := NewIdentityResolver(patients, doctors)

	record := &domain.Doctor{ID: "d1", Name: "Gregory", Active: true}
	doctors.On("GetByID", mock.Anything, "d1").Return(record, nil)

	principal, err := resolver.Resolve(context.Background(), &Claims{SubjectID: "d1", Role: domain.RoleDoctor})
	require.NoError(t, err)

	doctor, ok := principal.(DoctorPrincipal)
	require.True(t, ok)
	assert.Equal(t, record, doctor.Doctor)
	assert.Equal(t, domain.RoleDoctor, principal.Role())
	patients.AssertNotCalled(t, "GetByID")
}

func TestResolveAccountNotFound(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	resolver := NewIdentityResolver(patients, doctors)

	patients.On("GetByID", mock.Anything, "gone").Return(nil, pgx.ErrNoRows)

	principal, err := resolver.Resolve(context.Background(), &Claims{SubjectID: "gone", Role: domain.RolePatient})
	assert.Nil(t, principal)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResolveStoreUnavailable(t *testing.T) {
	patients := new(mockPatientRepo)
	doctors := new(mockDoctorRepo)
	resolver := NewIdentityResolver(patients, doctors)

	doctors.On("GetByID", mock.Anything, "d1").Return(nil, errors.New("connection refused"))

	principal, err := resolver.Resolve(context.Background(), &Claims{SubjectID: "d1", Role: domain.RoleDoctor})
	assert.Nil(t, principal)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}
