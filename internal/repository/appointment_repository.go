package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

// AppointmentRepository handles persistence for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes *string) error
	ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates the repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (patient_id, doctor_id, scheduled_at, reason, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		appt.PatientID,
		appt.DoctorID,
		appt.ScheduledAt,
		appt.Reason,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const query = `
        SELECT id, patient_id, doctor_id, scheduled_at, reason, status, notes, created_at, updated_at
        FROM appointments WHERE id=$1`

	var appt domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.ScheduledAt,
		&appt.Reason,
		&appt.Status,
		&appt.Notes,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes *string) error {
	const query = `
        UPDATE appointments SET status=$1, notes=COALESCE($2, notes), updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, status, notes, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	const query = `
        SELECT id, patient_id, doctor_id, scheduled_at, reason, status, notes, created_at, updated_at
        FROM appointments WHERE patient_id=$1 ORDER BY scheduled_at DESC`
	return r.list(ctx, query, patientID)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	const query = `
        SELECT id, patient_id, doctor_id, scheduled_at, reason, status, notes, created_at, updated_at
        FROM appointments WHERE doctor_id=$1 ORDER BY scheduled_at DESC`
	return r.list(ctx, query, doctorID)
}

func (r *appointmentRepository) list(ctx context.Context, query string, arg any) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.PatientID,
			&appt.DoctorID,
			&appt.ScheduledAt,
			&appt.Reason,
			&appt.Status,
			&appt.Notes,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, appt)
	}
	return result, rows.Err()
}
