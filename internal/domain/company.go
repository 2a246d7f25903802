package domain

import (
	"context"
	"time"
)

// Company is an entry in the customer registry. Subsidiaries reference
// their parent and never carry their own financial scoring; the scoring is
// held only at parent level.
type Company struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
	// FinancialScoring distinguishes "confirmed absent" (nil or empty) from
	// "not yet known": a failed fetch is an external error, never treated as
	// absent.
	FinancialScoring *string   `json:"financial_scoring,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasFinancialScoring reports whether a scoring value is confirmed present
func (c *Company) HasFinancialScoring() bool {
	return c.FinancialScoring != nil && *c.FinancialScoring != ""
}

// CompanyRepository defines record-store access for the customer registry
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
	FindByName(ctx context.Context, name string) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
}
