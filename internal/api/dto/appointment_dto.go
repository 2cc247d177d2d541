package dto

import "time"

// BookAppointmentRequest payload to request an appointment.
type BookAppointmentRequest struct {
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason"`
}

// AppointmentActionRequest payload for confirm/cancel transitions.
type AppointmentActionRequest struct {
	Notes *string `json:"notes,omitempty"`
}
