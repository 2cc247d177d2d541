package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/config"
	"github.com/spec-kit/care-portal-service/internal/domain"
	"github.com/spec-kit/care-portal-service/internal/repository"
)

// AuthService coordinates registration, login and session flows.
type AuthService struct {
	patients   repository.PatientRepository
	doctors    repository.DoctorRepository
	tokenMgr   *auth.TokenManager
	sessions   *auth.SessionStore
	provider   auth.IdentityProvider
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the
// auth service.
type AuthDependencies struct {
	PatientRepo  repository.PatientRepository
	DoctorRepo   repository.DoctorRepository
	SessionStore *auth.SessionStore
	Provider     auth.IdentityProvider
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		patients:   deps.PatientRepo,
		doctors:    deps.DoctorRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		sessions:   deps.SessionStore,
		provider:   deps.Provider,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterPatient creates a new patient account and issues a token.
func (s *AuthService) RegisterPatient(ctx context.Context, name, email, password string) (*domain.Patient, string, time.Time, error) {
	if _, err := s.patients.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	patient := &domain.Patient{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.PatientStatusActive,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(patient.ID, domain.RolePatient)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return patient, token, exp, nil
}

// LoginPatient authenticates a patient.
func (s *AuthService) LoginPatient(ctx context.Context, email, password string) (*domain.Patient, string, time.Time, error) {
	patient, err := s.patients.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if patient.Status != domain.PatientStatusActive {
		return nil, "", time.Time{}, errors.New("account suspended")
	}
	if err := auth.ComparePassword(patient.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.Issue(patient.ID, domain.RolePatient)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return patient, token, exp, nil
}

// LoginDoctor authenticates a doctor and issues a role-bearing token.
func (s *AuthService) LoginDoctor(ctx context.Context, email, password string) (*domain.Doctor, string, time.Time, error) {
	doctor, err := s.doctors.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if !doctor.Active {
		return nil, "", time.Time{}, errors.New("doctor inactive")
	}
	if err := auth.ComparePassword(doctor.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	token, exp, err := s.tokenMgr.Issue(doctor.ID, domain.RoleDoctor)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return doctor, token, exp, nil
}

// OAuthCallback exchanges the provider code, matches (or creates) the
// patient account and opens a server-side session.
func (s *AuthService) OAuthCallback(ctx context.Context, code string) (*domain.Patient, *auth.Session, error) {
	if s.provider == nil {
		return nil, nil, errors.New("identity provider not configured")
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	patient, err := s.patients.GetByEmail(ctx, identity.Email)
	if err == pgx.ErrNoRows {
		patient = &domain.Patient{
			Name:   identity.Name,
			Email:  identity.Email,
			Status: domain.PatientStatusActive,
		}
		if err := s.patients.Create(ctx, patient); err != nil {
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	if patient.Status != domain.PatientStatusActive {
		return nil, nil, errors.New("account suspended")
	}

	session, err := s.sessions.Create(ctx, patient.ID, domain.RolePatient)
	if err != nil {
		return nil, nil, err
	}
	return patient, session, nil
}

// Logout destroys the server-side session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
