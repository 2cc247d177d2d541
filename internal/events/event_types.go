package events

import (
	"time"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked    EventType = "appointment_booked"
	EventAppointmentConfirmed EventType = "appointment_confirmed"
	EventAppointmentCancelled EventType = "appointment_cancelled"
	EventTreatmentPlanCreated EventType = "treatment_plan_created"
	EventConsentSigned        EventType = "consent_signed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role      domain.Role `json:"role"`
	AccountID string      `json:"account_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	PatientID   string    `json:"patient_id"`
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason"`
}

// AppointmentStatusPayload payload for confirm/cancel transitions.
type AppointmentStatusPayload struct {
	OldStatus domain.AppointmentStatus `json:"old_status"`
	NewStatus domain.AppointmentStatus `json:"new_status"`
	Notes     string                   `json:"notes,omitempty"`
}

// TreatmentPlanCreatedPayload payload.
type TreatmentPlanCreatedPayload struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Title     string `json:"title"`
}

// ConsentSignedPayload payload.
type ConsentSignedPayload struct {
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	SignedAt  time.Time `json:"signed_at"`
}
