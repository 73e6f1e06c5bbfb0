package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"oncodx/internal/domain"
)

// DoctorRepository define el contrato de persistencia para doctores.
type DoctorRepository interface {
	Create(ctx context.Context, doctor domain.Doctor) error
	GetByEmail(ctx context.Context, email string) (domain.Doctor, error)
}

// PgDoctorRepository implementa DoctorRepository usando pgxpool.
type PgDoctorRepository struct {
	pool *pgxpool.Pool
}

func NewPgDoctorRepository(pool *pgxpool.Pool) *PgDoctorRepository {
	return &PgDoctorRepository{pool: pool}
}

func (r *PgDoctorRepository) Create(ctx context.Context, doctor domain.Doctor) error {
	const query = `
		INSERT INTO doctors (id, full_name, email, license_number, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		doctor.ID,
		doctor.FullName,
		doctor.Email,
		doctor.LicenseNumber,
		doctor.PasswordHash,
		doctor.CreatedAt,
	)
	return err
}

func (r *PgDoctorRepository) GetByEmail(ctx context.Context, email string) (domain.Doctor, error) {
	const query = `
		SELECT id, full_name, email, license_number, password_hash, created_at
		FROM doctors
		WHERE email = $1
	`
	var d domain.Doctor
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&d.ID,
		&d.FullName,
		&d.Email,
		&d.LicenseNumber,
		&d.PasswordHash,
		&d.CreatedAt,
	)
	if err != nil {
		return domain.Doctor{}, err
	}
	return d, nil
}
