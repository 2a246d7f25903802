package postgres

import (
	"context"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type missionRepository struct {
	db *pgxpool.Pool
}

func NewMissionRepository(db *pgxpool.Pool) domain.MissionRepository {
	return &missionRepository{db: db}
}

const missionColumns = `
	id, consultant_id, customer_id, project_id, requirement_id, status,
	start_date, end_date, daily_rate, COALESCE(notes, ''),
	created_by, created_at, updated_at`

func scanMission(row interface{ Scan(...any) error }) (*domain.Mission, error) {
	var m domain.Mission
	err := row.Scan(
		&m.ID, &m.ConsultantID, &m.CustomerID, &m.ProjectID, &m.RequirementID, &m.Status,
		&m.StartDate, &m.EndDate, &m.DailyRate, &m.Notes,
		&m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *missionRepository) GetByID(ctx context.Context, id string) (*domain.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`
	return scanMission(r.db.QueryRow(ctx, query, id))
}

func (r *missionRepository) ListByConsultant(ctx context.Context, consultantID string) ([]domain.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM missions WHERE consultant_id = $1 ORDER BY start_date DESC`
	return r.list(ctx, query, consultantID)
}

func (r *missionRepository) List(ctx context.Context, status domain.MissionStatus) ([]domain.Mission, error) {
	if status == "" {
		return r.list(ctx, `SELECT `+missionColumns+` FROM missions ORDER BY start_date DESC`)
	}
	return r.list(ctx, `SELECT `+missionColumns+` FROM missions WHERE status = $1 ORDER BY start_date DESC`, status)
}

func (r *missionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Mission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	defer rows.Close()

	var missions []domain.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, *m)
	}
	return missions, rows.Err()
}
