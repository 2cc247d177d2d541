package dto

import "time"

// CreatePlanRequest payload for opening a treatment plan.
type CreatePlanRequest struct {
	PatientID   string     `json:"patient_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// UpdatePlanStatusRequest payload for plan transitions.
type UpdatePlanStatusRequest struct {
	Status string `json:"status"`
}

// IssueConsentRequest payload for issuing a consent form.
type IssueConsentRequest struct {
	PatientID string `json:"patient_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
