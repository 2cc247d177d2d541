package domain

import "time"

// Doctor models a practitioner who manages appointments and treatment
// plans.
type Doctor struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Specialty    string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
