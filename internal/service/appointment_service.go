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

// AppointmentService orchestrates appointment booking and transitions.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	dispatcher   events.Dispatcher
}

// NewAppointmentService builds the service.
func NewAppointmentService(appointments repository.AppointmentRepository, doctors repository.DoctorRepository, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{appointments: appointments, doctors: doctors, dispatcher: dispatcher}
}

// Book creates a requested appointment for the calling patient.
func (s *AppointmentService) Book(ctx context.Context, principal auth.PatientPrincipal, doctorID string, scheduledAt time.Time, reason string) (*domain.Appointment, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", nil)
		}
		return nil, err
	}
	if !doctor.Active {
		return nil, apperrors.NewValidationError("doctor is not accepting appointments", nil)
	}
	if scheduledAt.Before(time.Now()) {
		return nil, apperrors.NewValidationError("scheduled_at must be in the future", nil)
	}

	appt := &domain.Appointment{
		PatientID:   principal.AccountID(),
		DoctorID:    doctorID,
		ScheduledAt: scheduledAt,
		Reason:      reason,
		Status:      domain.AppointmentStatusRequested,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAppointmentBooked, appt.ID, principal, events.AppointmentBookedPayload{
		PatientID:   appt.PatientID,
		DoctorID:    appt.DoctorID,
		ScheduledAt: appt.ScheduledAt,
		Reason:      appt.Reason,
	})
	return appt, nil
}

// ListForPrincipal returns the caller's own appointments, scoped by the
// principal variant.
func (s *AppointmentService) ListForPrincipal(ctx context.Context, principal auth.Principal) ([]domain.Appointment, error) {
	switch p := principal.(type) {
	case auth.PatientPrincipal:
		return s.appointments.ListByPatient(ctx, p.AccountID())
	case auth.DoctorPrincipal:
		return s.appointments.ListByDoctor(ctx, p.AccountID())
	default:
		return nil, apperrors.NewAccessDenied("Access denied")
	}
}

// Confirm moves a requested appointment to confirmed. Only the
// assigned doctor may confirm.
func (s *AppointmentService) Confirm(ctx context.Context, principal auth.DoctorPrincipal, appointmentID string, notes *string) (*domain.Appointment, error) {
	appt, err := s.getOwned(ctx, appointmentID, principal)
	if err != nil {
		return nil, err
	}
	if appt.Status != domain.AppointmentStatusRequested {
		return nil, apperrors.NewConflict("appointment is not awaiting confirmation", nil)
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, domain.AppointmentStatusConfirmed, notes); err != nil {
		return nil, err
	}

	old := appt.Status
	appt.Status = domain.AppointmentStatusConfirmed
	s.publish(ctx, events.EventAppointmentConfirmed, appt.ID, principal, events.AppointmentStatusPayload{
		OldStatus: old,
		NewStatus: appt.Status,
	})
	return appt, nil
}

// Cancel cancels an appointment. The owning patient or the assigned
// doctor may cancel; completed appointments cannot be cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, principal auth.Principal, appointmentID string, notes *string) (*domain.Appointment, error) {
	appt, err := s.getOwned(ctx, appointmentID, principal)
	if err != nil {
		return nil, err
	}
	if appt.Status == domain.AppointmentStatusCompleted || appt.Status == domain.AppointmentStatusCancelled {
		return nil, apperrors.NewConflict("appointment can no longer be cancelled", nil)
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, domain.AppointmentStatusCancelled, notes); err != nil {
		return nil, err
	}

	old := appt.Status
	appt.Status = domain.AppointmentStatusCancelled
	s.publish(ctx, events.EventAppointmentCancelled, appt.ID, principal, events.AppointmentStatusPayload{
		OldStatus: old,
		NewStatus: appt.Status,
	})
	return appt, nil
}

func (s *AppointmentService) getOwned(ctx context.Context, appointmentID string, principal auth.Principal) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", nil)
		}
		return nil, err
	}

	switch principal.(type) {
	case auth.PatientPrincipal:
		if appt.PatientID != principal.AccountID() {
			return nil, apperrors.NewNotFound("appointment", nil)
		}
	case auth.DoctorPrincipal:
		if appt.DoctorID != principal.AccountID() {
			return nil, apperrors.NewNotFound("appointment", nil)
		}
	default:
		return nil, apperrors.NewAccessDenied("Access denied")
	}
	return appt, nil
}

func (s *AppointmentService) publish(ctx context.Context, eventType events.EventType, subjectID string, principal auth.Principal, payload interface{}) {
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
