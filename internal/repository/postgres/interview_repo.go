package postgres

import (
	"context"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepository struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepository{db: db}
}

const interviewColumns = `id, candidate_id, stage, outcome, scheduled_at, created_by, created_at, updated_at`

func (r *interviewRepository) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`
	var iv domain.Interview
	err := r.db.QueryRow(ctx, query, id).Scan(
		&iv.ID, &iv.CandidateID, &iv.Stage, &iv.Outcome, &iv.ScheduledAt,
		&iv.CreatedBy, &iv.CreatedAt, &iv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepository) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE candidate_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := rows.Scan(
			&iv.ID, &iv.CandidateID, &iv.Stage, &iv.Outcome, &iv.ScheduledAt,
			&iv.CreatedBy, &iv.CreatedAt, &iv.UpdatedAt,
		); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

func (r *interviewRepository) Create(ctx context.Context, iv *domain.Interview) error {
	query := `
		INSERT INTO interviews (id, candidate_id, stage, outcome, scheduled_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		iv.ID, iv.CandidateID, iv.Stage, iv.Outcome, iv.ScheduledAt,
		iv.CreatedBy, iv.CreatedAt, iv.UpdatedAt,
	)
	return err
}

func (r *interviewRepository) Update(ctx context.Context, iv *domain.Interview) error {
	query := `UPDATE interviews SET outcome = $1, scheduled_at = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(ctx, query, iv.Outcome, iv.ScheduledAt, iv.ID)
	return err
}
