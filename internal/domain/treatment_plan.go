package domain

import "time"

// TreatmentPlanStatus enumerates plan lifecycle states.
type TreatmentPlanStatus string

const (
	TreatmentPlanStatusActive       TreatmentPlanStatus = "ACTIVE"
	TreatmentPlanStatusCompleted    TreatmentPlanStatus = "COMPLETED"
	TreatmentPlanStatusDiscontinued TreatmentPlanStatus = "DISCONTINUED"
)

// TreatmentPlan is authored by a doctor for a patient.
type TreatmentPlan struct {
	ID          string
	PatientID   string
	DoctorID    string
	Title       string
	Description string
	Status      TreatmentPlanStatus
	StartDate   time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
