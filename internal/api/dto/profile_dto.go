package dto

// UpdatePatientProfileRequest payload for patient profile changes.
type UpdatePatientProfileRequest struct {
	Name string `json:"name"`
}

// UpdateDoctorProfileRequest payload for doctor profile changes.
type UpdateDoctorProfileRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// DoctorSummary is the directory view of a doctor.
type DoctorSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Active    bool   `json:"active"`
}
