package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"oncodx/internal/domain"
)

// DiagnosisRepository guarda el historial de predicciones por doctor.
type DiagnosisRepository interface {
	Create(ctx context.Context, diagnosis domain.Diagnosis) error
	ListByDoctor(ctx context.Context, doctorID string, limit int) ([]domain.Diagnosis, error)
	FindSimilar(ctx context.Context, features pgvector.Vector, k int) ([]domain.Diagnosis, error)
}

// PgDiagnosisRepository implementa DiagnosisRepository usando pgxpool.
// La columna features es vector(30) de pgvector.
type PgDiagnosisRepository struct {
	pool *pgxpool.Pool
}

func NewPgDiagnosisRepository(pool *pgxpool.Pool) *PgDiagnosisRepository {
	return &PgDiagnosisRepository{pool: pool}
}

func (r *PgDiagnosisRepository) Create(ctx context.Context, diagnosis domain.Diagnosis) error {
	const query = `
		INSERT INTO diagnoses (id, doctor_id, prediction, confidence, risk_level, features, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		diagnosis.ID,
		diagnosis.DoctorID,
		diagnosis.Prediction,
		diagnosis.Confidence,
		diagnosis.RiskLevel,
		diagnosis.Features,
		diagnosis.CreatedAt,
	)
	return err
}

func (r *PgDiagnosisRepository) ListByDoctor(ctx context.Context, doctorID string, limit int) ([]domain.Diagnosis, error) {
	const query = `
		SELECT id, doctor_id, prediction, confidence, risk_level, features, created_at
		FROM diagnoses
		WHERE doctor_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, doctorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDiagnoses(rows)
}

func (r *PgDiagnosisRepository) FindSimilar(ctx context.Context, features pgvector.Vector, k int) ([]domain.Diagnosis, error) {
	const query = `
		SELECT id, doctor_id, prediction, confidence, risk_level, features, created_at
		FROM diagnoses
		ORDER BY features <-> $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, features, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDiagnoses(rows)
}

func scanDiagnoses(rows pgx.Rows) ([]domain.Diagnosis, error) {
	var result []domain.Diagnosis
	for rows.Next() {
		var d domain.Diagnosis
		if err := rows.Scan(
			&d.ID,
			&d.DoctorID,
			&d.Prediction,
			&d.Confidence,
			&d.RiskLevel,
			&d.Features,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
