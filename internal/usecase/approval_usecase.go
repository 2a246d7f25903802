package usecase

import (
	"context"
	"fmt"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"

	"github.com/google/uuid"
)

type approvalUsecase struct {
	approvalRepo   domain.ApprovalRepository
	consultantRepo domain.ConsultantRepository
	committer      domain.Committer
	notifier       Notifier
}

// NewApprovalUsecase creates the two-stage approval chain engine
func NewApprovalUsecase(
	approvalRepo domain.ApprovalRepository,
	consultantRepo domain.ConsultantRepository,
	committer domain.Committer,
	notifier Notifier,
) domain.ApprovalUsecase {
	return &approvalUsecase{
		approvalRepo:   approvalRepo,
		consultantRepo: consultantRepo,
		committer:      committer,
		notifier:       notifier,
	}
}

// Submit opens an approval request against a consultant. The payload must
// match the request type; nothing is applied until HR approves.
func (uc *approvalUsecase) Submit(ctx context.Context, actor domain.Actor, consultantID string, reqType domain.ApprovalRequestType, payload domain.ApprovalPayload) (*domain.ApprovalRequest, error) {
	if !reqType.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("Unknown request type: %s", reqType))
	}
	if err := validatePayload(reqType, payload); err != nil {
		return nil, err
	}

	consultant, err := uc.consultantRepo.GetByID(ctx, consultantID)
	if err != nil {
		return nil, apperror.NotFound("Consultant not found")
	}
	if consultant.Status == domain.ConsultantTerminated {
		return nil, apperror.Conflict(fmt.Sprintf("consultant %s is terminated", consultantID))
	}

	now := time.Now()
	req := &domain.ApprovalRequest{
		ID:           uuid.NewString(),
		ConsultantID: consultantID,
		RequestType:  reqType,
		Status:       domain.ApprovalPendingDirector,
		Payload:      payload,
		RequestedBy:  actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.approvalRepo.Create(ctx, req); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.notifier.Notify("Approval request submitted",
		fmt.Sprintf("A %s request for %s %s is awaiting director approval.", reqType, consultant.FirstName, consultant.LastName))

	return req, nil
}

// Get returns one approval request
func (uc *approvalUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.ApprovalRequest, error) {
	req, err := uc.approvalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Approval request not found")
	}
	return req, nil
}

// DirectorApprove routes a pending request to HR. No payload effect is
// applied at this stage.
func (uc *approvalUsecase) DirectorApprove(ctx context.Context, actor domain.Actor, id string) (*domain.ApprovalRequest, error) {
	caps := actor.Capabilities()
	if !caps.CanDirectorApprove {
		return nil, apperror.Permission("Director approval requires a director role")
	}

	req, err := uc.approvalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Approval request not found")
	}
	if req.Status != domain.ApprovalPendingDirector {
		return nil, stateConflict("approval request", id, domain.ApprovalPendingDirector, req.Status)
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableApprovals, req.ID, string(domain.ApprovalPendingDirector), map[string]any{
		"status":     domain.ApprovalPendingHR,
		"updated_at": now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	req.Status = domain.ApprovalPendingHR
	req.UpdatedAt = now

	uc.notifier.Notify("Approval request escalated",
		fmt.Sprintf("A %s request passed director approval and is awaiting HR.", req.RequestType))

	return req, nil
}

// HRApprove finalizes the chain and applies the payload to the consultant
// in the same commit as the status change
func (uc *approvalUsecase) HRApprove(ctx context.Context, actor domain.Actor, id string) (*domain.ApprovalRequest, error) {
	caps := actor.Capabilities()
	if !caps.CanHRApprove {
		return nil, apperror.Permission("HR approval requires an HR role")
	}

	req, err := uc.approvalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Approval request not found")
	}
	if req.Status != domain.ApprovalPendingHR {
		return nil, stateConflict("approval request", id, domain.ApprovalPendingHR, req.Status)
	}
	// Re-check the stored payload: a row written outside Submit may be missing
	// the fields its request type needs.
	if err := validatePayload(req.RequestType, req.Payload); err != nil {
		return nil, apperror.Validation(fmt.Sprintf("Approval request %s carries a malformed payload and cannot be applied", id))
	}

	consultant, err := uc.consultantRepo.GetByID(ctx, req.ConsultantID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("consultant %s: %w", req.ConsultantID, err))
	}

	now := time.Now()
	effect := map[string]any{"updated_at": now}
	switch req.RequestType {
	case domain.RequestSalaryIncrease:
		effect["annual_salary"] = *req.Payload.NewSalary
	case domain.RequestBonusPayment:
		effect["last_bonus"] = *req.Payload.Amount
		effect["last_bonus_at"] = now
	case domain.RequestEmployeeExit:
		exitedAt := now
		if req.Payload.ExitDate != nil {
			exitedAt = *req.Payload.ExitDate
		}
		effect["status"] = domain.ConsultantTerminated
		effect["exited_at"] = exitedAt
		effect["exit_reason"] = *req.Payload.ExitReason
	}

	var cs domain.ChangeSet
	cs.Update(domain.TableApprovals, req.ID, string(domain.ApprovalPendingHR), map[string]any{
		"status":     domain.ApprovalApproved,
		"decided_by": actor.ID,
		"updated_at": now,
	})
	cs.Update(domain.TableConsultants, consultant.ID, "", effect)
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	req.Status = domain.ApprovalApproved
	req.DecidedBy = &actor.ID
	req.UpdatedAt = now

	uc.notifier.Notify("Approval request approved",
		fmt.Sprintf("A %s request for %s %s is fully approved and applied.", req.RequestType, consultant.FirstName, consultant.LastName))

	return req, nil
}

// Reject terminates the chain at either stage. The rejecting actor must
// hold the role matching the current stage, and a reason is mandatory.
func (uc *approvalUsecase) Reject(ctx context.Context, actor domain.Actor, id, reason string) (*domain.ApprovalRequest, error) {
	if reason == "" {
		return nil, apperror.Validation("A rejection reason is required")
	}

	req, err := uc.approvalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Approval request not found")
	}

	caps := actor.Capabilities()
	switch req.Status {
	case domain.ApprovalPendingDirector:
		if !caps.CanDirectorApprove {
			return nil, apperror.Permission("Rejecting at this stage requires a director role")
		}
	case domain.ApprovalPendingHR:
		if !caps.CanHRApprove {
			return nil, apperror.Permission("Rejecting at this stage requires an HR role")
		}
	default:
		return nil, apperror.Conflict(fmt.Sprintf("approval request %s is already decided (%s)", id, req.Status))
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableApprovals, req.ID, string(req.Status), map[string]any{
		"status":     domain.ApprovalRejected,
		"reason":     reason,
		"decided_by": actor.ID,
		"updated_at": now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	req.Status = domain.ApprovalRejected
	req.Reason = &reason
	req.DecidedBy = &actor.ID
	req.UpdatedAt = now
	return req, nil
}

// validatePayload checks that the payload carries exactly the data its
// request type needs
func validatePayload(reqType domain.ApprovalRequestType, payload domain.ApprovalPayload) error {
	switch reqType {
	case domain.RequestSalaryIncrease:
		if payload.NewSalary == nil || *payload.NewSalary <= 0 {
			return apperror.Validation("A salary increase requires a positive new salary")
		}
	case domain.RequestBonusPayment:
		if payload.Amount == nil || *payload.Amount <= 0 {
			return apperror.Validation("A bonus payment requires a positive amount")
		}
	case domain.RequestEmployeeExit:
		if payload.ExitReason == nil || *payload.ExitReason == "" {
			return apperror.Validation("An employee exit requires an exit reason")
		}
	}
	return nil
}
