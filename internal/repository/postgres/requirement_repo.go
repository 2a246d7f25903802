package postgres

import (
	"context"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type requirementRepository struct {
	db *pgxpool.Pool
}

func NewRequirementRepository(db *pgxpool.Pool) domain.RequirementRepository {
	return &requirementRepository{db: db}
}

const requirementColumns = `
	id, title, COALESCE(company_id, ''), COALESCE(customer_name, ''),
	project_type, status, is_bid, bid_status, go_nogo_decision,
	sc_metrics, sc_economic_buyer, sc_decision_criteria, sc_decision_process,
	sc_paper_process, sc_identify_pain, sc_champion, sc_competition,
	winning_candidate_id, project_id, created_by, created_at, updated_at`

func scanRequirement(row interface{ Scan(...any) error }) (*domain.Requirement, error) {
	var req domain.Requirement
	err := row.Scan(
		&req.ID, &req.Title, &req.CompanyID, &req.CustomerName,
		&req.ProjectType, &req.Status, &req.IsBid, &req.BidStatus, &req.GoNoGoDecision,
		&req.Scorecard.Metrics, &req.Scorecard.EconomicBuyer, &req.Scorecard.DecisionCriteria,
		&req.Scorecard.DecisionProcess, &req.Scorecard.PaperProcess, &req.Scorecard.IdentifyPain,
		&req.Scorecard.Champion, &req.Scorecard.Competition,
		&req.WinningCandidateID, &req.ProjectID, &req.CreatedBy, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requirementRepository) GetByID(ctx context.Context, id string) (*domain.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE id = $1`
	return scanRequirement(r.db.QueryRow(ctx, query, id))
}

func (r *requirementRepository) List(ctx context.Context, status domain.RequirementStatus) ([]domain.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer rows.Close()

	var requirements []domain.Requirement
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, *req)
	}
	return requirements, rows.Err()
}

func (r *requirementRepository) Create(ctx context.Context, req *domain.Requirement) error {
	query := `
		INSERT INTO requirements (
			id, title, company_id, customer_name, project_type, status,
			is_bid, bid_status, created_by, created_at, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		req.ID, req.Title, req.CompanyID, req.CustomerName, req.ProjectType, req.Status,
		req.IsBid, req.BidStatus, req.CreatedBy, req.CreatedAt, req.UpdatedAt,
	)
	return err
}
