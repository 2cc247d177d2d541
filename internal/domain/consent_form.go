package domain

import "time"

// ConsentForm is issued by a doctor and signed by the patient before a
// procedure or treatment plan takes effect.
type ConsentForm struct {
	ID        string
	PatientID string
	DoctorID  string
	Title     string
	Body      string
	Signed    bool
	SignedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
