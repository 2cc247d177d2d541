package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

// TreatmentPlanRepository handles persistence for treatment plans.
type TreatmentPlanRepository interface {
	Create(ctx context.Context, plan *domain.TreatmentPlan) error
	GetByID(ctx context.Context, id string) (*domain.TreatmentPlan, error)
	UpdateStatus(ctx context.Context, id string, status domain.TreatmentPlanStatus) error
	ListByPatient(ctx context.Context, patientID string) ([]domain.TreatmentPlan, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.TreatmentPlan, error)
}

type treatmentPlanRepository struct {
	pool *pgxpool.Pool
}

// NewTreatmentPlanRepository instantiates the repository.
func NewTreatmentPlanRepository(pool *pgxpool.Pool) TreatmentPlanRepository {
	return &treatmentPlanRepository{pool: pool}
}

func (r *treatmentPlanRepository) Create(ctx context.Context, plan *domain.TreatmentPlan) error {
	const query = `
        INSERT INTO treatment_plans (patient_id, doctor_id, title, description, status, start_date, end_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		plan.PatientID,
		plan.DoctorID,
		plan.Title,
		plan.Description,
		plan.Status,
		plan.StartDate,
		plan.EndDate,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *treatmentPlanRepository) GetByID(ctx context.Context, id string) (*domain.TreatmentPlan, error) {
	const query = `
        SELECT id, patient_id, doctor_id, title, description, status, start_date, end_date, created_at, updated_at
        FROM treatment_plans WHERE id=$1`

	var plan domain.TreatmentPlan
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.PatientID,
		&plan.DoctorID,
		&plan.Title,
		&plan.Description,
		&plan.Status,
		&plan.StartDate,
		&plan.EndDate,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *treatmentPlanRepository) UpdateStatus(ctx context.Context, id string, status domain.TreatmentPlanStatus) error {
	const query = `
        UPDATE treatment_plans SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *treatmentPlanRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.TreatmentPlan, error) {
	const query = `
        SELECT id, patient_id, doctor_id, title, description, status, start_date, end_date, created_at, updated_at
        FROM treatment_plans WHERE patient_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, patientID)
}

func (r *treatmentPlanRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.TreatmentPlan, error) {
	const query = `
        SELECT id, patient_id, doctor_id, title, description, status, start_date, end_date, created_at, updated_at
        FROM treatment_plans WHERE doctor_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, doctorID)
}

func (r *treatmentPlanRepository) list(ctx context.Context, query string, arg any) ([]domain.TreatmentPlan, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TreatmentPlan
	for rows.Next() {
		var plan domain.TreatmentPlan
		if err := rows.Scan(
			&plan.ID,
			&plan.PatientID,
			&plan.DoctorID,
			&plan.Title,
			&plan.Description,
			&plan.Status,
			&plan.StartDate,
			&plan.EndDate,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}
