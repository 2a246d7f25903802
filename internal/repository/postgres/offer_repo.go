package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type offerRepository struct {
	db *pgxpool.Pool
}

func NewOfferRepository(db *pgxpool.Pool) domain.OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `
	id, candidate_id, position_title, status, approver_id, requested_by,
	annual_salary, COALESCE(daily_rate, 0), rejection_reason, created_at, updated_at`

func scanOffer(row interface{ Scan(...any) error }) (*domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(
		&o.ID, &o.CandidateID, &o.PositionTitle, &o.Status, &o.ApproverID, &o.RequestedBy,
		&o.AnnualSalary, &o.DailyRate, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`
	return scanOffer(r.db.QueryRow(ctx, query, id))
}

// GetActiveByCandidate returns the candidate's live offer, or nil when every
// offer is terminal. No live offer is not an error.
func (r *offerRepository) GetActiveByCandidate(ctx context.Context, candidateID string) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers
		WHERE candidate_id = $1 AND status NOT IN ('rejected', 'converted', 'withdrawn')
		ORDER BY created_at DESC LIMIT 1`
	offer, err := scanOffer(r.db.QueryRow(ctx, query, candidateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return offer, nil
}

func (r *offerRepository) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE candidate_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

func (r *offerRepository) Create(ctx context.Context, o *domain.Offer) error {
	query := `
		INSERT INTO offers (
			id, candidate_id, position_title, status, approver_id, requested_by,
			annual_salary, daily_rate, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.CandidateID, o.PositionTitle, o.Status, o.ApproverID, o.RequestedBy,
		o.AnnualSalary, o.DailyRate, o.CreatedAt, o.UpdatedAt,
	)
	return err
}
