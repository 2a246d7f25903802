package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type hrTicketRepository struct {
	db *pgxpool.Pool
}

func NewHrTicketRepository(db *pgxpool.Pool) domain.HrTicketRepository {
	return &hrTicketRepository{db: db}
}

const ticketColumns = `id, offer_id, candidate_id, subject, status, created_at, updated_at`

func scanTicket(row interface{ Scan(...any) error }) (*domain.HrTicket, error) {
	var t domain.HrTicket
	err := row.Scan(&t.ID, &t.OfferID, &t.CandidateID, &t.Subject, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *hrTicketRepository) GetByID(ctx context.Context, id string) (*domain.HrTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM hr_tickets WHERE id = $1`
	return scanTicket(r.db.QueryRow(ctx, query, id))
}

// GetOpenByOffer returns the offer's ticket that is still being worked, or
// nil when every ticket reached completed or cancelled.
func (r *hrTicketRepository) GetOpenByOffer(ctx context.Context, offerID string) (*domain.HrTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM hr_tickets
		WHERE offer_id = $1 AND status NOT IN ('completed', 'cancelled')
		ORDER BY created_at DESC LIMIT 1`
	ticket, err := scanTicket(r.db.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ticket, nil
}

func (r *hrTicketRepository) List(ctx context.Context, status domain.HrTicketStatus) ([]domain.HrTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM hr_tickets`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list hr tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.HrTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}
