package postgres

import (
	"context"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''),
	skills, previous_companies, COALESCE(years_experience, 0),
	COALESCE(status, ''), cv_object_key,
	created_by, created_at, updated_at, deleted_at, deleted_by`

func scanCandidate(row interface{ Scan(...any) error }) (*domain.Candidate, error) {
	var c domain.Candidate
	var skills, companies []string
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		pq.Array(&skills), pq.Array(&companies), &c.YearsExperience,
		&c.Status, &c.CVObjectKey,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt, &c.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	c.Skills = skills
	c.PreviousCompanies = companies
	return &c, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return scanCandidate(r.db.QueryRow(ctx, query, id))
}

func (r *candidateRepository) List(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE 1=1`
	args := []any{}
	if !filter.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	if filter.Skill != "" {
		args = append(args, filter.Skill)
		query += fmt.Sprintf(` AND $%d = ANY(skills)`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, first_name, last_name, email, phone, skills, previous_companies,
			years_experience, status, cv_object_key, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone,
		pq.Array(c.Skills), pq.Array(c.PreviousCompanies),
		c.YearsExperience, c.Status, c.CVObjectKey,
		c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	query := `
		UPDATE candidates SET
			first_name = $1, last_name = $2, email = $3, phone = $4,
			skills = $5, previous_companies = $6, years_experience = $7,
			updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL`
	_, err := r.db.Exec(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone,
		pq.Array(c.Skills), pq.Array(c.PreviousCompanies), c.YearsExperience,
		c.ID,
	)
	return err
}

func (r *candidateRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	query := `UPDATE candidates SET deleted_at = NOW(), deleted_by = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	tag, err := r.db.Exec(ctx, query, actorID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("candidate %s not found or already deleted", id)
	}
	return nil
}

func (r *candidateRepository) Restore(ctx context.Context, id string) error {
	query := `UPDATE candidates SET deleted_at = NULL, deleted_by = NULL, updated_at = NOW() WHERE id = $1 AND deleted_at IS NOT NULL`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("candidate %s is not deleted", id)
	}
	return nil
}

func (r *candidateRepository) HardDelete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	return err
}
