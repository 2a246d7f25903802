package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type consultantRepository struct {
	db *pgxpool.Pool
}

func NewConsultantRepository(db *pgxpool.Pool) domain.ConsultantRepository {
	return &consultantRepository{db: db}
}

const consultantColumns = `
	id, candidate_id, first_name, last_name, status, annual_salary,
	COALESCE(daily_rate, 0), hired_at, last_bonus, last_bonus_at,
	exited_at, exit_reason, created_at, updated_at`

func scanConsultant(row interface{ Scan(...any) error }) (*domain.Consultant, error) {
	var c domain.Consultant
	err := row.Scan(
		&c.ID, &c.CandidateID, &c.FirstName, &c.LastName, &c.Status, &c.AnnualSalary,
		&c.DailyRate, &c.HiredAt, &c.LastBonus, &c.LastBonusAt,
		&c.ExitedAt, &c.ExitReason, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consultantRepository) GetByID(ctx context.Context, id string) (*domain.Consultant, error) {
	query := `SELECT ` + consultantColumns + ` FROM consultants WHERE id = $1`
	return scanConsultant(r.db.QueryRow(ctx, query, id))
}

func (r *consultantRepository) GetByCandidateID(ctx context.Context, candidateID string) (*domain.Consultant, error) {
	query := `SELECT ` + consultantColumns + ` FROM consultants WHERE candidate_id = $1`
	consultant, err := scanConsultant(r.db.QueryRow(ctx, query, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return consultant, nil
}

func (r *consultantRepository) ExistsForCandidate(ctx context.Context, candidateID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM consultants WHERE candidate_id = $1)`, candidateID).Scan(&exists)
	return exists, err
}

func (r *consultantRepository) List(ctx context.Context, status domain.ConsultantStatus) ([]domain.Consultant, error) {
	query := `SELECT ` + consultantColumns + ` FROM consultants`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}
	defer rows.Close()

	var consultants []domain.Consultant
	for rows.Next() {
		c, err := scanConsultant(rows)
		if err != nil {
			return nil, err
		}
		consultants = append(consultants, *c)
	}
	return consultants, rows.Err()
}
