package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/cvparse"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/storage"
	"go-staffing-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	interviewRepo domain.InterviewRepository
	cvStore       *storage.CVStore
	validate      *validator.Validate
}

// NewCandidateUsecase creates the candidate pipeline usecase
func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	interviewRepo domain.InterviewRepository,
	cvStore *storage.CVStore,
	validate *validator.Validate,
) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		interviewRepo: interviewRepo,
		cvStore:       cvStore,
		validate:      validate,
	}
}

// Create registers a candidate entered manually
func (uc *candidateUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateCandidateInput) (*domain.Candidate, error) {
	caps := actor.Capabilities()
	if !caps.CanManageCandidates {
		return nil, apperror.Permission("You are not allowed to manage candidates")
	}

	if err := uc.validate.Struct(input); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return nil, apperror.Validation(fmt.Sprintf("Invalid candidate: %v", msgs))
	}

	now := time.Now()
	candidate := &domain.Candidate{
		ID:                uuid.NewString(),
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Phone:             input.Phone,
		Skills:            input.Skills,
		PreviousCompanies: input.PreviousCompanies,
		YearsExperience:   input.YearsExperience,
		CreatedBy:         actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	candidate.Pipeline = uc.derive(nil, candidate.Status)
	return candidate, nil
}

// ImportFromCV parses a raw CV text, stores the artifact, and creates a
// candidate pre-filled with the extracted fields. The extraction is
// best-effort input, not authoritative data.
func (uc *candidateUsecase) ImportFromCV(ctx context.Context, actor domain.Actor, cvText string) (*domain.Candidate, error) {
	caps := actor.Capabilities()
	if !caps.CanManageCandidates {
		return nil, apperror.Permission("You are not allowed to manage candidates")
	}
	if strings.TrimSpace(cvText) == "" {
		return nil, apperror.Validation("Resume text is required")
	}

	parsed := cvparse.Parse(cvText)
	if parsed.FirstName == "" && parsed.LastName == "" {
		return nil, apperror.Validation("Could not extract a candidate name from the CV; enter the candidate manually")
	}

	now := time.Now()
	candidate := &domain.Candidate{
		ID:                uuid.NewString(),
		FirstName:         parsed.FirstName,
		LastName:          parsed.LastName,
		Email:             parsed.Email,
		Phone:             parsed.Phone,
		Skills:            parsed.Skills,
		PreviousCompanies: parsed.PreviousCompanies,
		YearsExperience:   parsed.YearsExperience,
		CreatedBy:         actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if uc.cvStore != nil {
		key, err := uc.cvStore.PutCV(ctx, candidate.ID, cvText)
		if err != nil {
			// The parsed fields are still useful without the artifact
			logger.Log.Warn("CV artifact upload failed", "candidate_id", candidate.ID, "error", err)
		} else {
			candidate.CVObjectKey = &key
		}
	}

	if err := uc.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	candidate.Pipeline = uc.derive(nil, candidate.Status)
	return candidate, nil
}

// Get returns one candidate with its derived pipeline status
func (uc *candidateUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Candidate, error) {
	caps := actor.Capabilities()
	if !caps.CanManageCandidates {
		return nil, apperror.Permission("You are not allowed to view candidates")
	}

	candidate, err := uc.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	interviews, err := uc.interviewRepo.ListByCandidate(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	candidate.Pipeline = uc.derive(interviews, candidate.Status)
	return candidate, nil
}

// List returns candidates with their derived pipeline statuses
func (uc *candidateUsecase) List(ctx context.Context, actor domain.Actor, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	caps := actor.Capabilities()
	if !caps.CanManageCandidates {
		return nil, apperror.Permission("You are not allowed to view candidates")
	}
	if filter.IncludeDeleted && !caps.CanSoftDelete {
		return nil, apperror.Permission("You are not allowed to view deleted candidates")
	}

	candidates, err := uc.candidateRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range candidates {
		interviews, err := uc.interviewRepo.ListByCandidate(ctx, candidates[i].ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		candidates[i].Pipeline = uc.derive(interviews, candidates[i].Status)
	}
	return candidates, nil
}

// Update edits the basic candidate fields
func (uc *candidateUsecase) Update(ctx context.Context, actor domain.Actor, id string, input domain.CreateCandidateInput) (*domain.Candidate, error) {
	caps := actor.Capabilities()
	if !caps.CanManageCandidates {
		return nil, apperror.Permission("You are not allowed to manage candidates")
	}
	if err := uc.validate.Struct(input); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return nil, apperror.Validation(fmt.Sprintf("Invalid candidate: %v", msgs))
	}

	candidate, err := uc.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	if candidate.DeletedAt != nil {
		return nil, apperror.Conflict("Candidate is deleted")
	}

	candidate.FirstName = input.FirstName
	candidate.LastName = input.LastName
	candidate.Email = input.Email
	candidate.Phone = input.Phone
	candidate.Skills = input.Skills
	candidate.PreviousCompanies = input.PreviousCompanies
	candidate.YearsExperience = input.YearsExperience
	candidate.UpdatedAt = time.Now()

	if err := uc.candidateRepo.Update(ctx, candidate); err != nil {
		return nil, apperror.Internal(err)
	}
	return candidate, nil
}

// SoftDelete marks a candidate deleted, recoverably, recording the actor
func (uc *candidateUsecase) SoftDelete(ctx context.Context, actor domain.Actor, id string) error {
	caps := actor.Capabilities()
	if !caps.CanSoftDelete {
		return apperror.Permission("You are not allowed to delete candidates")
	}
	if _, err := uc.candidateRepo.GetByID(ctx, id); err != nil {
		return apperror.NotFound("Candidate not found")
	}
	if err := uc.candidateRepo.SoftDelete(ctx, id, actor.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Restore clears a candidate's soft-delete marker
func (uc *candidateUsecase) Restore(ctx context.Context, actor domain.Actor, id string) error {
	caps := actor.Capabilities()
	if !caps.CanSoftDelete {
		return apperror.Permission("You are not allowed to restore candidates")
	}
	if err := uc.candidateRepo.Restore(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// HardDelete removes a candidate irreversibly; superadmin only
func (uc *candidateUsecase) HardDelete(ctx context.Context, actor domain.Actor, id string) error {
	caps := actor.Capabilities()
	if !caps.CanHardDelete {
		return apperror.Permission("Only a superadmin may permanently delete a candidate")
	}
	if _, err := uc.candidateRepo.GetByID(ctx, id); err != nil {
		return apperror.NotFound("Candidate not found")
	}
	if err := uc.candidateRepo.HardDelete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ScheduleInterview records a new assessment event for a candidate
func (uc *candidateUsecase) ScheduleInterview(ctx context.Context, actor domain.Actor, candidateID string, stage domain.InterviewStage, scheduledAt time.Time) (*domain.Interview, error) {
	caps := actor.Capabilities()
	if !caps.CanManageInterviews {
		return nil, apperror.Permission("You are not allowed to manage interviews")
	}
	if !stage.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("Unknown interview stage: %s", stage))
	}

	candidate, err := uc.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	if candidate.Status.IsOverride() {
		return nil, apperror.Conflict(fmt.Sprintf("Candidate is no longer in the interview pipeline (status %s)", candidate.Status))
	}

	now := time.Now()
	iv := &domain.Interview{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		Stage:       stage,
		Outcome:     domain.OutcomePending,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !scheduledAt.IsZero() {
		iv.ScheduledAt = &scheduledAt
	}

	if err := uc.interviewRepo.Create(ctx, iv); err != nil {
		return nil, apperror.Internal(err)
	}
	return iv, nil
}

// RecordInterviewOutcome records a pass or fail on a pending interview. The
// candidate's displayed status changes through derivation alone; nothing is
// persisted on the candidate.
func (uc *candidateUsecase) RecordInterviewOutcome(ctx context.Context, actor domain.Actor, interviewID string, outcome domain.InterviewOutcome) (*domain.Interview, error) {
	caps := actor.Capabilities()
	if !caps.CanManageInterviews {
		return nil, apperror.Permission("You are not allowed to manage interviews")
	}
	if outcome != domain.OutcomePass && outcome != domain.OutcomeFail {
		return nil, apperror.Validation("Outcome must be pass or fail")
	}

	iv, err := uc.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, apperror.NotFound("Interview not found")
	}
	if iv.Outcome != domain.OutcomePending {
		return nil, stateConflict("interview", interviewID, domain.OutcomePending, iv.Outcome)
	}

	iv.Outcome = outcome
	iv.UpdatedAt = time.Now()
	if err := uc.interviewRepo.Update(ctx, iv); err != nil {
		return nil, apperror.Internal(err)
	}
	return iv, nil
}

func (uc *candidateUsecase) derive(interviews []domain.Interview, explicit domain.CandidateStatus) *domain.PipelineStatus {
	ps := domain.ComputePipelineStatus(interviews, explicit)
	return &ps
}
