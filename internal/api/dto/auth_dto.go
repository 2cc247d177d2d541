package dto

import "time"

// PatientRegisterRequest payload for new patients.
type PatientRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for patient and doctor login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenIntrospection echoes verified claims back to the caller.
type TokenIntrospection struct {
	SubjectID string    `json:"subject_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
