package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/care-portal-service/internal/auth"
	"github.com/spec-kit/care-portal-service/internal/domain"
	"github.com/spec-kit/care-portal-service/internal/events"
	"github.com/spec-kit/care-portal-service/internal/repository"
	apperrors "github.com/spec-kit/care-portal-service/pkg/util"
)

// CareService manages treatment plans and consent forms.
type CareService struct {
	plans      repository.TreatmentPlanRepository
	consents   repository.ConsentRepository
	patients   repository.PatientRepository
	dispatcher events.Dispatcher
}

// NewCareService builds the service.
func NewCareService(plans repository.TreatmentPlanRepository, consents repository.ConsentRepository, patients repository.PatientRepository, dispatcher events.Dispatcher) *CareService {
	return &CareService{plans: plans, consents: consents, patients: patients, dispatcher: dispatcher}
}

// CreatePlan lets a doctor open a treatment plan for a patient.
func (s *CareService) CreatePlan(ctx context.Context, principal auth.DoctorPrincipal, patientID, title, description string, startDate time.Time, endDate *time.Time) (*domain.TreatmentPlan, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", nil)
		}
		return nil, err
	}

	plan := &domain.TreatmentPlan{
		PatientID:   patientID,
		DoctorID:    principal.AccountID(),
		Title:       title,
		Description: description,
		Status:      domain.TreatmentPlanStatusActive,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTreatmentPlanCreated, plan.ID, principal, events.TreatmentPlanCreatedPayload{
		PatientID: plan.PatientID,
		DoctorID:  plan.DoctorID,
		Title:     plan.Title,
	})
	return plan, nil
}

// ListPlans returns the caller's own plans, scoped by principal variant.
func (s *CareService) ListPlans(ctx context.Context, principal auth.Principal) ([]domain.TreatmentPlan, error) {
	switch p := principal.(type) {
	case auth.PatientPrincipal:
		return s.plans.ListByPatient(ctx, p.AccountID())
	case auth.DoctorPrincipal:
		return s.plans.ListByDoctor(ctx, p.AccountID())
	default:
		return nil, apperrors.NewAccessDenied("Access denied")
	}
}

// UpdatePlanStatus transitions a plan; only the authoring doctor may.
func (s *CareService) UpdatePlanStatus(ctx context.Context, principal auth.DoctorPrincipal, planID string, status domain.TreatmentPlanStatus) (*domain.TreatmentPlan, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("treatment plan", nil)
		}
		return nil, err
	}
	if plan.DoctorID != principal.AccountID() {
		return nil, apperrors.NewNotFound("treatment plan", nil)
	}

	if err := s.plans.UpdateStatus(ctx, planID, status); err != nil {
		return nil, err
	}
	plan.Status = status
	return plan, nil
}

// IssueConsent lets a doctor issue a consent form for a patient.
func (s *CareService) IssueConsent(ctx context.Context, principal auth.DoctorPrincipal, patientID, title, body string) (*domain.ConsentForm, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", nil)
		}
		return nil, err
	}

	form := &domain.ConsentForm{
		PatientID: patientID,
		DoctorID:  principal.AccountID(),
		Title:     title,
		Body:      body,
	}
	if err := s.consents.Create(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// ListConsents returns the caller's own consent forms.
func (s *CareService) ListConsents(ctx context.Context, principal auth.Principal) ([]domain.ConsentForm, error) {
	switch p := principal.(type) {
	case auth.PatientPrincipal:
		return s.consents.ListByPatient(ctx, p.AccountID())
	case auth.DoctorPrincipal:
		return s.consents.ListByDoctor(ctx, p.AccountID())
	default:
		return nil, apperrors.NewAccessDenied("Access denied")
	}
}

// SignConsent records the patient's signature on their own form.
func (s *CareService) SignConsent(ctx context.Context, principal auth.PatientPrincipal, formID string) (*domain.ConsentForm, error) {
	form, err := s.consents.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("consent form", nil)
		}
		return nil, err
	}
	if form.PatientID != principal.AccountID() {
		return nil, apperrors.NewNotFound("consent form", nil)
	}
	if form.Signed {
		return nil, apperrors.NewConflict("consent form already signed", nil)
	}

	if err := s.consents.MarkSigned(ctx, formID); err != nil {
		return nil, err
	}

	now := time.Now()
	form.Signed = true
	form.SignedAt = &now
	s.publish(ctx, events.EventConsentSigned, form.ID, principal, events.ConsentSignedPayload{
		PatientID: form.PatientID,
		DoctorID:  form.DoctorID,
		SignedAt:  now,
	})
	return form, nil
}

func (s *CareService) publish(ctx context.Context, eventType events.EventType, subjectID string, principal auth.Principal, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     events.Actor{Role: principal.Role(), AccountID: principal.AccountID()},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
