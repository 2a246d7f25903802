package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type approvalRepository struct {
	db *pgxpool.Pool
}

func NewApprovalRepository(db *pgxpool.Pool) domain.ApprovalRepository {
	return &approvalRepository{db: db}
}

const approvalColumns = `
	id, consultant_id, request_type, status, request_data,
	requested_by, decided_by, reason, created_at, updated_at`

func scanApproval(row interface{ Scan(...any) error }) (*domain.ApprovalRequest, error) {
	var req domain.ApprovalRequest
	var payload []byte
	err := row.Scan(
		&req.ID, &req.ConsultantID, &req.RequestType, &req.Status, &payload,
		&req.RequestedBy, &req.DecidedBy, &req.Reason, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode request data: %w", err)
		}
	}
	return &req, nil
}

func (r *approvalRepository) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1`
	return scanApproval(r.db.QueryRow(ctx, query, id))
}

func (r *approvalRepository) ListByConsultant(ctx context.Context, consultantID string) ([]domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE consultant_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, consultantID)
}

func (r *approvalRepository) ListPending(ctx context.Context, status domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE status = $1 ORDER BY created_at`
	return r.list(ctx, query, status)
}

func (r *approvalRepository) list(ctx context.Context, query string, args ...any) ([]domain.ApprovalRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ApprovalRequest
	for rows.Next() {
		req, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *approvalRepository) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode request data: %w", err)
	}
	query := `
		INSERT INTO approval_requests (
			id, consultant_id, request_type, status, request_data,
			requested_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.Exec(ctx, query,
		req.ID, req.ConsultantID, req.RequestType, req.Status, payload,
		req.RequestedBy, req.CreatedAt, req.UpdatedAt,
	)
	return err
}
