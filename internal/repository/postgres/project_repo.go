package postgres

import (
	"context"

	"go-staffing-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type projectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, name, company_id, requirement_id, type, created_by, created_at`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Name, &p.CompanyID, &p.RequirementID, &p.Type, &p.CreatedBy, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRow(ctx, query, id))
}

func (r *projectRepository) GetByRequirementID(ctx context.Context, requirementID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE requirement_id = $1`
	return scanProject(r.db.QueryRow(ctx, query, requirementID))
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects (id, name, company_id, requirement_id, type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query, p.ID, p.Name, p.CompanyID, p.RequirementID, p.Type, p.CreatedBy, p.CreatedAt)
	return err
}
