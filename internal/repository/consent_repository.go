package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

// ConsentRepository handles persistence for consent forms.
type ConsentRepository interface {
	Create(ctx context.Context, form *domain.ConsentForm) error
	GetByID(ctx context.Context, id string) (*domain.ConsentForm, error)
	MarkSigned(ctx context.Context, id string) error
	ListByPatient(ctx context.Context, patientID string) ([]domain.ConsentForm, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.ConsentForm, error)
}

type consentRepository struct {
	pool *pgxpool.Pool
}

// NewConsentRepository instantiates the repository.
func NewConsentRepository(pool *pgxpool.Pool) ConsentRepository {
	return &consentRepository{pool: pool}
}

func (r *consentRepository) Create(ctx context.Context, form *domain.ConsentForm) error {
	const query = `
        INSERT INTO consent_forms (patient_id, doctor_id, title, body, signed_flag)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		form.PatientID,
		form.DoctorID,
		form.Title,
		form.Body,
		form.Signed,
	).Scan(&form.ID, &form.CreatedAt, &form.UpdatedAt)
}

func (r *consentRepository) GetByID(ctx context.Context, id string) (*domain.ConsentForm, error) {
	const query = `
        SELECT id, patient_id, doctor_id, title, body, signed_flag, signed_at, created_at, updated_at
        FROM consent_forms WHERE id=$1`

	var form domain.ConsentForm
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&form.ID,
		&form.PatientID,
		&form.DoctorID,
		&form.Title,
		&form.Body,
		&form.Signed,
		&form.SignedAt,
		&form.CreatedAt,
		&form.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *consentRepository) MarkSigned(ctx context.Context, id string) error {
	const query = `
        UPDATE consent_forms SET signed_flag=TRUE, signed_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND signed_flag=FALSE`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *consentRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.ConsentForm, error) {
	const query = `
        SELECT id, patient_id, doctor_id, title, body, signed_flag, signed_at, created_at, updated_at
        FROM consent_forms WHERE patient_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, patientID)
}

func (r *consentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.ConsentForm, error) {
	const query = `
        SELECT id, patient_id, doctor_id, title, body, signed_flag, signed_at, created_at, updated_at
        FROM consent_forms WHERE doctor_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, doctorID)
}

func (r *consentRepository) list(ctx context.Context, query string, arg any) ([]domain.ConsentForm, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ConsentForm
	for rows.Next() {
		var form domain.ConsentForm
		if err := rows.Scan(
			&form.ID,
			&form.PatientID,
			&form.DoctorID,
			&form.Title,
			&form.Body,
			&form.Signed,
			&form.SignedAt,
			&form.CreatedAt,
			&form.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, form)
	}
	return result, rows.Err()
}
