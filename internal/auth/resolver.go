package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/care-portal-service/internal/domain"
	"github.com/spec-kit/care-portal-service/internal/repository"
)

// Resolution failures. ErrStoreUnavailable wraps the underlying store
// error and is the only non-denial outcome.
var (
	ErrMissingClaims    = errors.New("missing required claims")
	ErrAccountNotFound  = errors.New("account not found")
	ErrStoreUnavailable = errors.New("account store unavailable")
)

// IdentityResolver loads the canonical account record behind verified
// claims. Every request re-fetches the account: a deactivated or
// deleted account loses access on its very next request rather than
// only after token expiry.
type IdentityResolver struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

// NewIdentityResolver constructs the resolver.
func NewIdentityResolver(patients repository.PatientRepository, doctors repository.DoctorRepository) *IdentityResolver {
	return &IdentityResolver{patients: patients, doctors: doctors}
}

// Resolve maps claims to a Principal variant. The role selects the
// store: patient and doctor accounts are disjoint collections. This is
// the single dispatch point on the role field.
func (r *IdentityResolver) Resolve(ctx context.Context, claims *Claims) (Principal, error) {
	if claims == nil || claims.SubjectID == "" || !claims.Role.Valid() {
		return nil, ErrMissingClaims
	}

	switch claims.Role {
	case domain.RolePatient:
		patient, err := r.patients.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, mapStoreError(err)
		}
		return PatientPrincipal{Patient: patient}, nil
	case domain.RoleDoctor:
		doctor, err := r.doctors.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, mapStoreError(err)
		}
		return DoctorPrincipal{Doctor: doctor}, nil
	default:
		return nil, ErrMissingClaims
	}
}

// mapStoreError fails closed: a transient store fault is reported as
// unavailability, never as a successful resolution.
func mapStoreError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAccountNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
