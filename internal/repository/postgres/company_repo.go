package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepository struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, parent_id, financial_scoring, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.ParentID, &c.FinancialScoring, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.db.QueryRow(ctx, query, id))
}

// FindByName matches case-insensitively on the exact name. No match is not
// an error.
func (r *companyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE LOWER(name) = LOWER($1)`
	company, err := scanCompany(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func (r *companyRepository) Create(ctx context.Context, c *domain.Company) error {
	query := `
		INSERT INTO companies (id, name, parent_id, financial_scoring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.ParentID, c.FinancialScoring)
	return err
}

func (r *companyRepository) Update(ctx context.Context, c *domain.Company) error {
	query := `UPDATE companies SET name = $1, parent_id = $2, financial_scoring = $3, updated_at = NOW() WHERE id = $4`
	_, err := r.db.Exec(ctx, query, c.Name, c.ParentID, c.FinancialScoring, c.ID)
	return err
}
