package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/care-portal-service/internal/domain"
)

// DoctorRepository handles persistence for doctor accounts.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	Update(ctx context.Context, doctor *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	List(ctx context.Context, filter DoctorFilter) ([]domain.Doctor, error)
}

// DoctorFilter defines query params for doctor listing.
type DoctorFilter struct {
	Specialty *string
	Active    *bool
	Limit     int
	Offset    int
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository instantiates the repository.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        INSERT INTO doctors (name, email, password_hash, specialty, active_flag)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.PasswordHash,
		doctor.Specialty,
		doctor.Active,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        UPDATE doctors
        SET name=$1, email=$2, password_hash=$3, specialty=$4, active_flag=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		doctor.Name,
		doctor.Email,
		doctor.PasswordHash,
		doctor.Specialty,
		doctor.Active,
		doctor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	const query = `
        SELECT id, name, email, password_hash, specialty, active_flag, created_at, updated_at
        FROM doctors WHERE id=$1`

	var doctor domain.Doctor
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Email,
		&doctor.PasswordHash,
		&doctor.Specialty,
		&doctor.Active,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	const query = `
        SELECT id, name, email, password_hash, specialty, active_flag, created_at, updated_at
        FROM doctors WHERE email=$1`

	var doctor domain.Doctor
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Email,
		&doctor.PasswordHash,
		&doctor.Specialty,
		&doctor.Active,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, filter DoctorFilter) ([]domain.Doctor, error) {
	query := `
        SELECT id, name, email, password_hash, specialty, active_flag, created_at, updated_at
        FROM doctors`
	args := []any{}
	clauses := []string{}

	if filter.Specialty != nil {
		args = append(args, *filter.Specialty)
		clauses = append(clauses, fmt.Sprintf("specialty=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active_flag=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Doctor
	for rows.Next() {
		var doctor domain.Doctor
		if err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Email,
			&doctor.PasswordHash,
			&doctor.Specialty,
			&doctor.Active,
			&doctor.CreatedAt,
			&doctor.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, doctor)
	}
	return result, rows.Err()
}
