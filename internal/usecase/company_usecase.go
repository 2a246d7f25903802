package usecase

import (
	"context"
	"fmt"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/google/uuid"
)

// CompanyUsecase manages the customer registry
type CompanyUsecase interface {
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Company, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Company, error)
	Create(ctx context.Context, actor domain.Actor, name string, parentID, financialScoring *string) (*domain.Company, error)
	SetFinancialScoring(ctx context.Context, actor domain.Actor, id, scoring string) (*domain.Company, error)
}

type companyUsecase struct {
	companyRepo domain.CompanyRepository
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository) CompanyUsecase {
	return &companyUsecase{companyRepo: companyRepo}
}

func (uc *companyUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Company, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to view the customer registry")
	}
	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Company not found")
	}
	return company, nil
}

func (uc *companyUsecase) List(ctx context.Context, actor domain.Actor) ([]domain.Company, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to view the customer registry")
	}
	companies, err := uc.companyRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return companies, nil
}

// Create registers a customer. Subsidiaries never carry their own scoring;
// it lives on the parent.
func (uc *companyUsecase) Create(ctx context.Context, actor domain.Actor, name string, parentID, financialScoring *string) (*domain.Company, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to manage the customer registry")
	}
	if name == "" {
		return nil, apperror.Validation("Company name is required")
	}
	if parentID != nil && financialScoring != nil {
		return nil, apperror.Validation("A subsidiary cannot carry its own financial scoring; score the parent company")
	}
	if parentID != nil {
		parent, err := uc.companyRepo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, apperror.NotFound("Parent company not found")
		}
		if parent.ParentID != nil {
			return nil, apperror.Validation(fmt.Sprintf("Company %q is itself a subsidiary and cannot be a parent", parent.Name))
		}
	}
	if existing, err := uc.companyRepo.FindByName(ctx, name); err == nil && existing != nil {
		return nil, apperror.Conflict(fmt.Sprintf("A company named %q already exists", name))
	}

	now := time.Now()
	company := &domain.Company{
		ID:               uuid.NewString(),
		Name:             name,
		ParentID:         parentID,
		FinancialScoring: financialScoring,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, apperror.Internal(err)
	}
	return company, nil
}

func (uc *companyUsecase) SetFinancialScoring(ctx context.Context, actor domain.Actor, id, scoring string) (*domain.Company, error) {
	caps := actor.Capabilities()
	if !caps.IsAdmin && !caps.IsSuperAdmin && !caps.IsDirector {
		return nil, apperror.Permission("Only directors or administrators may set financial scoring")
	}
	if scoring == "" {
		return nil, apperror.Validation("Financial scoring value is required")
	}

	company, err := uc.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Company not found")
	}
	if company.ParentID != nil {
		return nil, apperror.Validation("Financial scoring lives on the parent company; score the parent instead")
	}

	company.FinancialScoring = &scoring
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(ctx, company); err != nil {
		return nil, apperror.Internal(err)
	}
	return company, nil
}
