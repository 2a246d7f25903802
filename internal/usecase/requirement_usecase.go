package usecase

import (
	"context"
	"fmt"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type requirementUsecase struct {
	requirementRepo domain.RequirementRepository
	projectRepo     domain.ProjectRepository
	companyRepo     domain.CompanyRepository
	candidateRepo   domain.CandidateRepository
	consultantRepo  domain.ConsultantRepository
	committer       domain.Committer
	notifier        Notifier
	validate        *validator.Validate
}

// NewRequirementUsecase creates the requirement/bid state machine
func NewRequirementUsecase(
	requirementRepo domain.RequirementRepository,
	projectRepo domain.ProjectRepository,
	companyRepo domain.CompanyRepository,
	candidateRepo domain.CandidateRepository,
	consultantRepo domain.ConsultantRepository,
	committer domain.Committer,
	notifier Notifier,
	validate *validator.Validate,
) domain.RequirementUsecase {
	return &requirementUsecase{
		requirementRepo: requirementRepo,
		projectRepo:     projectRepo,
		companyRepo:     companyRepo,
		candidateRepo:   candidateRepo,
		consultantRepo:  consultantRepo,
		committer:       committer,
		notifier:        notifier,
		validate:        validate,
	}
}

// Create opens a requirement: T&M starts active, Fixed-Price starts as an
// opportunity with the bid sub-workflow in qualifying
func (uc *requirementUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateRequirementInput) (*domain.Requirement, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to manage requirements")
	}

	if err := uc.validate.Struct(input); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return nil, apperror.Validation(fmt.Sprintf("Invalid requirement: %v", msgs))
	}
	if input.CompanyID == "" && input.CustomerName == "" {
		return nil, apperror.Validation("Either a company or a customer name is required")
	}
	if input.CompanyID != "" {
		if _, err := uc.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
			return nil, apperror.NotFound("Company not found")
		}
	}

	now := time.Now()
	req := &domain.Requirement{
		ID:           uuid.NewString(),
		Title:        input.Title,
		CompanyID:    input.CompanyID,
		CustomerName: input.CustomerName,
		ProjectType:  input.ProjectType,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch input.ProjectType {
	case domain.ProjectTypeFixedPrice:
		req.Status = domain.RequirementOpportunity
		req.IsBid = true
		qualifying := domain.BidQualifying
		req.BidStatus = &qualifying
	default:
		req.Status = domain.RequirementActive
	}

	if err := uc.requirementRepo.Create(ctx, req); err != nil {
		return nil, apperror.Internal(err)
	}
	return req, nil
}

// Get returns one requirement
func (uc *requirementUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Requirement, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to view requirements")
	}
	req, err := uc.requirementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Requirement not found")
	}
	return req, nil
}

// AdvanceBid moves the bid sub-state strictly forward. Winning the bid
// drives the parent requirement to won and therefore requires the winning
// candidate in the same step; losing drives it to lost.
func (uc *requirementUsecase) AdvanceBid(ctx context.Context, actor domain.Actor, requirementID string, to domain.BidStatus, winningCandidateID string) (*domain.Requirement, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to manage requirements")
	}
	if to.Rank() == 0 {
		return nil, apperror.Validation(fmt.Sprintf("Unknown bid status: %s", to))
	}

	req, err := uc.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, apperror.NotFound("Requirement not found")
	}
	if !req.IsBid || req.BidStatus == nil {
		return nil, apperror.Validation(fmt.Sprintf("Requirement %s is not a bid", requirementID))
	}
	cur := *req.BidStatus
	if cur == domain.BidWon || cur == domain.BidLost {
		return nil, apperror.Conflict(fmt.Sprintf("requirement %s: bid is terminal (%s)", requirementID, cur))
	}
	if to.Rank() <= cur.Rank() {
		return nil, apperror.Conflict(fmt.Sprintf("requirement %s: bid may only advance forward (current %s, requested %s)", requirementID, cur, to))
	}

	now := time.Now()
	set := map[string]any{
		"bid_status": to,
		"updated_at": now,
	}

	switch to {
	case domain.BidWon:
		if winningCandidateID == "" {
			return nil, apperror.Validation("Winning the bid requires a winning candidate")
		}
		if _, err := uc.candidateRepo.GetByID(ctx, winningCandidateID); err != nil {
			return nil, apperror.NotFound("Winning candidate not found")
		}
		set["status"] = domain.RequirementWon
		set["winning_candidate_id"] = winningCandidateID
	case domain.BidLost:
		set["status"] = domain.RequirementLost
	}

	var cs domain.ChangeSet
	cs.Updates = append(cs.Updates, domain.GuardedUpdate{
		Table:          domain.TableRequirements,
		ID:             req.ID,
		ExpectedStatus: string(cur),
		GuardColumn:    "bid_status",
		Set:            set,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	req.BidStatus = &to
	req.UpdatedAt = now
	switch to {
	case domain.BidWon:
		req.Status = domain.RequirementWon
		req.WinningCandidateID = &winningCandidateID
	case domain.BidLost:
		req.Status = domain.RequirementLost
	}
	return req, nil
}

// ScoreBid persists the go/no-go scorecard and returns the averaged score.
// When every dimension is nil the result is an explicit insufficient-data
// failure, never a default score.
func (uc *requirementUsecase) ScoreBid(ctx context.Context, actor domain.Actor, requirementID string, scorecard domain.BidScorecard) (float64, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return 0, apperror.Permission("You are not allowed to manage requirements")
	}

	req, err := uc.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return 0, apperror.NotFound("Requirement not found")
	}
	if !req.IsBid {
		return 0, apperror.Validation(fmt.Sprintf("Requirement %s is not a bid", requirementID))
	}

	score, ok := scorecard.Score()
	if !ok {
		return 0, apperror.Validation("Insufficient data: no scorecard dimensions have been filled in")
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableRequirements, req.ID, "", map[string]any{
		"sc_metrics":           scorecard.Metrics,
		"sc_economic_buyer":    scorecard.EconomicBuyer,
		"sc_decision_criteria": scorecard.DecisionCriteria,
		"sc_decision_process":  scorecard.DecisionProcess,
		"sc_paper_process":     scorecard.PaperProcess,
		"sc_identify_pain":     scorecard.IdentifyPain,
		"sc_champion":          scorecard.Champion,
		"sc_competition":       scorecard.Competition,
		"updated_at":           now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return 0, err
	}
	return score, nil
}

// SetWinningCandidate points a won requirement at a different candidate.
// Only legal once the requirement is already won or filled.
func (uc *requirementUsecase) SetWinningCandidate(ctx context.Context, actor domain.Actor, requirementID, candidateID string) (*domain.Requirement, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to manage requirements")
	}

	req, err := uc.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, apperror.NotFound("Requirement not found")
	}
	if req.Status != domain.RequirementWon && req.Status != domain.RequirementFilled {
		return nil, apperror.Conflict(fmt.Sprintf("requirement %s: winning candidate may only be set once won or filled, got %s", requirementID, req.Status))
	}
	if _, err := uc.candidateRepo.GetByID(ctx, candidateID); err != nil {
		return nil, apperror.NotFound("Winning candidate not found")
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableRequirements, req.ID, string(req.Status), map[string]any{
		"winning_candidate_id": candidateID,
		"updated_at":           now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	req.WinningCandidateID = &candidateID
	req.UpdatedAt = now
	return req, nil
}

// MarkWon closes a T&M requirement as won together with its winning
// candidate; the two are set atomically so a won requirement always names
// its candidate.
func (uc *requirementUsecase) MarkWon(ctx context.Context, actor domain.Actor, requirementID, winningCandidateID string) (*domain.Requirement, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to manage requirements")
	}
	if winningCandidateID == "" {
		return nil, apperror.Validation("Winning a requirement requires a winning candidate")
	}

	req, err := uc.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, apperror.NotFound("Requirement not found")
	}
	if req.IsBid {
		return nil, apperror.Validation("A bid requirement is won by advancing its bid")
	}
	if req.Status != domain.RequirementActive {
		return nil, stateConflict("requirement", requirementID, domain.RequirementActive, req.Status)
	}
	if _, err := uc.candidateRepo.GetByID(ctx, winningCandidateID); err != nil {
		return nil, apperror.NotFound("Winning candidate not found")
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableRequirements, req.ID, string(domain.RequirementActive), map[string]any{
		"status":               domain.RequirementWon,
		"winning_candidate_id": winningCandidateID,
		"updated_at":           now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	req.Status = domain.RequirementWon
	req.WinningCandidateID = &winningCandidateID
	req.UpdatedAt = now
	return req, nil
}

// MarkLost closes a requirement as lost
func (uc *requirementUsecase) MarkLost(ctx context.Context, actor domain.Actor, requirementID string) (*domain.Requirement, error) {
	return uc.close(ctx, actor, requirementID, domain.RequirementLost)
}

// Cancel closes a requirement as cancelled
func (uc *requirementUsecase) Cancel(ctx context.Context, actor domain.Actor, requirementID string) (*domain.Requirement, error) {
	return uc.close(ctx, actor, requirementID, domain.RequirementCancelled)
}

func (uc *requirementUsecase) close(ctx context.Context, actor domain.Actor, requirementID string, to domain.RequirementStatus) (*domain.Requirement, error) {
	caps := actor.Capabilities()
	if !caps.CanManageRequirements {
		return nil, apperror.Permission("You are not allowed to manage requirements")
	}

	req, err := uc.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, apperror.NotFound("Requirement not found")
	}
	switch req.Status {
	case domain.RequirementActive, domain.RequirementOpportunity:
	default:
		return nil, apperror.Conflict(fmt.Sprintf("requirement %s: cannot close from state %s", requirementID, req.Status))
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableRequirements, req.ID, string(req.Status), map[string]any{
		"status":     to,
		"updated_at": now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	req.Status = to
	req.UpdatedAt = now
	return req, nil
}

// CreateProject attaches a project to a won requirement, gated on the
// owning company's financial scoring
func (uc *requirementUsecase) CreateProject(ctx context.Context, actor domain.Actor, requirementID string) (*domain.Project, error) {
	caps := actor.Capabilities()
	if !caps.CanCreateProjects {
		return nil, apperror.Permission("You are not allowed to create projects")
	}

	req, err := uc.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, apperror.NotFound("Requirement not found")
	}
	if req.Status != domain.RequirementWon && req.Status != domain.RequirementFilled {
		return nil, apperror.Conflict(fmt.Sprintf("requirement %s: projects are only created once won, got %s", requirementID, req.Status))
	}
	if req.ProjectID != nil {
		return nil, apperror.Conflict(fmt.Sprintf("requirement %s already has project %s", requirementID, *req.ProjectID))
	}

	company, err := uc.resolveCompany(ctx, req)
	if err != nil {
		return nil, err
	}

	project, cs, err := uc.buildProject(ctx, req, company, actor)
	if err != nil {
		return nil, err
	}
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}
	return project, nil
}

// buildProject runs the financial-scoring gate and declares the project
// insert plus the requirement back-link. Scoring lives at parent level:
// subsidiaries are checked against their parent company, and the failure
// message names the company that must be fixed.
func (uc *requirementUsecase) buildProject(ctx context.Context, req *domain.Requirement, company *domain.Company, actor domain.Actor) (*domain.Project, domain.ChangeSet, error) {
	var cs domain.ChangeSet

	scoringCompany := company
	if company.ParentID != nil {
		parent, err := uc.companyRepo.GetByID(ctx, *company.ParentID)
		if err != nil {
			// Scoring is unknown, not confirmed absent; surface the fetch
			// failure instead of a misleading validation error
			return nil, cs, apperror.External(fmt.Errorf("parent company %s could not be fetched: %w", *company.ParentID, err))
		}
		scoringCompany = parent
	}
	if !scoringCompany.HasFinancialScoring() {
		if scoringCompany.ID != company.ID {
			return nil, cs, apperror.Validation(fmt.Sprintf(
				"Financial scoring is missing on parent company %q of subsidiary %q; projects cannot be created until the parent is scored",
				scoringCompany.Name, company.Name))
		}
		return nil, cs, apperror.Validation(fmt.Sprintf(
			"Financial scoring is missing on company %q; projects cannot be created until it is scored", company.Name))
	}

	now := time.Now()
	project := &domain.Project{
		ID:            uuid.NewString(),
		Name:          req.Title,
		CompanyID:     company.ID,
		RequirementID: req.ID,
		Type:          req.ProjectType,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
	}
	cs.Insert(domain.TableProjects, map[string]any{
		"id":             project.ID,
		"name":           project.Name,
		"company_id":     project.CompanyID,
		"requirement_id": project.RequirementID,
		"type":           project.Type,
		"created_by":     project.CreatedBy,
		"created_at":     now,
	})
	cs.Update(domain.TableRequirements, req.ID, string(req.Status), map[string]any{
		"project_id": project.ID,
		"updated_at": now,
	})
	return project, cs, nil
}

// CreateMission staffs a won requirement: it requires a converted
// consultant for the winning candidate, a resolved customer, and a project,
// creating the project transparently when none exists yet.
func (uc *requirementUsecase) CreateMission(ctx context.Context, actor domain.Actor, requirementID string, input domain.CreateMissionInput) (*domain.Mission, error) {
	caps := actor.Capabilities()
	if !caps.CanManageMissions {
		return nil, apperror.Permission("You are not allowed to manage missions")
	}

	if err := uc.validate.Struct(input); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return nil, apperror.Validation(fmt.Sprintf("Invalid mission: %v", msgs))
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, apperror.Validation("End date must not be before start date")
	}

	req, err := uc.requirementRepo.GetByID(ctx, requirementID)
	if err != nil {
		return nil, apperror.NotFound("Requirement not found")
	}
	if req.Status != domain.RequirementWon && req.Status != domain.RequirementFilled {
		return nil, apperror.Conflict(fmt.Sprintf("requirement %s: missions are only created once won, got %s", requirementID, req.Status))
	}
	if req.WinningCandidateID == nil {
		return nil, apperror.Validation(fmt.Sprintf("Requirement %s has no winning candidate", requirementID))
	}

	// (a) the winning candidate must already be a converted consultant
	consultant, err := uc.consultantRepo.GetByCandidateID(ctx, *req.WinningCandidateID)
	if err != nil || consultant == nil {
		return nil, apperror.Validation(fmt.Sprintf(
			"No consultant exists for winning candidate %s; convert the candidate before staffing the mission", *req.WinningCandidateID))
	}

	// (b) a resolved customer
	company, err := uc.resolveCompany(ctx, req)
	if err != nil {
		return nil, err
	}

	// (c) a project, created transparently through the scoring gate when
	// none is attached yet
	var cs domain.ChangeSet
	projectID := ""
	if req.ProjectID != nil {
		projectID = *req.ProjectID
	} else {
		project, projectCS, err := uc.buildProject(ctx, req, company, actor)
		if err != nil {
			return nil, err
		}
		projectID = project.ID
		cs.Inserts = append(cs.Inserts, projectCS.Inserts...)
		cs.Updates = append(cs.Updates, projectCS.Updates...)
	}

	now := time.Now()
	mission := &domain.Mission{
		ID:            uuid.NewString(),
		ConsultantID:  consultant.ID,
		CustomerID:    company.ID,
		ProjectID:     projectID,
		RequirementID: &req.ID,
		Status:        domain.MissionActive,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		DailyRate:     input.DailyRate,
		Notes:         input.Notes,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	cs.Insert(domain.TableMissions, map[string]any{
		"id":             mission.ID,
		"consultant_id":  mission.ConsultantID,
		"customer_id":    mission.CustomerID,
		"project_id":     mission.ProjectID,
		"requirement_id": mission.RequirementID,
		"status":         mission.Status,
		"start_date":     mission.StartDate,
		"end_date":       mission.EndDate,
		"daily_rate":     mission.DailyRate,
		"notes":          mission.Notes,
		"created_by":     mission.CreatedBy,
		"created_at":     now,
		"updated_at":     now,
	})
	cs.Update(domain.TableConsultants, consultant.ID, "", map[string]any{
		"status":     domain.ConsultantInMission,
		"updated_at": now,
	})
	cs.Update(domain.TableRequirements, req.ID, string(req.Status), map[string]any{
		"status":     domain.RequirementFilled,
		"updated_at": now,
	})

	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	uc.notifier.Notify("Mission staffed",
		fmt.Sprintf("Consultant %s %s is assigned to %s from %s.", consultant.FirstName, consultant.LastName, company.Name, input.StartDate.Format("2006-01-02")))

	return mission, nil
}

// resolveCompany resolves the requirement's customer either directly by id
// or by matching the free-text customer name against the registry
func (uc *requirementUsecase) resolveCompany(ctx context.Context, req *domain.Requirement) (*domain.Company, error) {
	if req.CompanyID != "" {
		company, err := uc.companyRepo.GetByID(ctx, req.CompanyID)
		if err != nil {
			return nil, apperror.NotFound(fmt.Sprintf("No customer found with id %s", req.CompanyID))
		}
		return company, nil
	}
	if req.CustomerName != "" {
		company, err := uc.companyRepo.FindByName(ctx, req.CustomerName)
		if err != nil || company == nil {
			return nil, apperror.NotFound(fmt.Sprintf("No customer found matching %q", req.CustomerName))
		}
		return company, nil
	}
	return nil, apperror.NotFound("No customer found: requirement names no company")
}
