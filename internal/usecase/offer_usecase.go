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

type offerUsecase struct {
	offerRepo      domain.OfferRepository
	candidateRepo  domain.CandidateRepository
	consultantRepo domain.ConsultantRepository
	ticketRepo     domain.HrTicketRepository
	committer      domain.Committer
	notifier       Notifier
	validate       *validator.Validate
}

// NewOfferUsecase creates the offer/contract state machine
func NewOfferUsecase(
	offerRepo domain.OfferRepository,
	candidateRepo domain.CandidateRepository,
	consultantRepo domain.ConsultantRepository,
	ticketRepo domain.HrTicketRepository,
	committer domain.Committer,
	notifier Notifier,
	validate *validator.Validate,
) domain.OfferUsecase {
	return &offerUsecase{
		offerRepo:      offerRepo,
		candidateRepo:  candidateRepo,
		consultantRepo: consultantRepo,
		ticketRepo:     ticketRepo,
		committer:      committer,
		notifier:       notifier,
		validate:       validate,
	}
}

// Create drafts a new offer in pending_approval and mirrors offer_pending
// onto the candidate
func (uc *offerUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateOfferInput) (*domain.Offer, error) {
	caps := actor.Capabilities()
	if !caps.CanManageOffers {
		return nil, apperror.Permission("You are not allowed to manage offers")
	}

	if err := uc.validate.Struct(input); err != nil {
		msgs := validation.FormatValidationErrors(err)
		return nil, apperror.Validation(fmt.Sprintf("Invalid offer: %v", msgs))
	}

	candidate, err := uc.candidateRepo.GetByID(ctx, input.CandidateID)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	if candidate.DeletedAt != nil {
		return nil, apperror.Conflict("Candidate is deleted")
	}
	if candidate.Status == domain.CandidateStatusConvertedToConsultant {
		return nil, apperror.Conflict("Candidate is already converted to a consultant")
	}

	// One offer per active hiring attempt; a live offer blocks a new one
	if active, err := uc.offerRepo.GetActiveByCandidate(ctx, input.CandidateID); err != nil {
		return nil, apperror.Internal(err)
	} else if active != nil {
		return nil, apperror.Conflict(fmt.Sprintf("Candidate already has an active offer (%s, status %s)", active.ID, active.Status))
	}

	now := time.Now()
	offer := &domain.Offer{
		ID:            uuid.NewString(),
		CandidateID:   input.CandidateID,
		PositionTitle: input.PositionTitle,
		Status:        domain.OfferPendingApproval,
		ApproverID:    input.ApproverID,
		RequestedBy:   actor.ID,
		AnnualSalary:  input.AnnualSalary,
		DailyRate:     input.DailyRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var cs domain.ChangeSet
	cs.Insert(domain.TableOffers, map[string]any{
		"id":             offer.ID,
		"candidate_id":   offer.CandidateID,
		"position_title": offer.PositionTitle,
		"status":         offer.Status,
		"approver_id":    offer.ApproverID,
		"requested_by":   offer.RequestedBy,
		"annual_salary":  offer.AnnualSalary,
		"daily_rate":     offer.DailyRate,
		"created_at":     now,
		"updated_at":     now,
	})
	cs.Update(domain.TableCandidates, candidate.ID, "", map[string]any{
		"status":     domain.CandidateStatusOfferPending,
		"updated_at": now,
	})

	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	uc.notifier.Notify("Offer awaiting approval",
		fmt.Sprintf("Offer %s for candidate %s %s is pending approval.", offer.ID, candidate.FirstName, candidate.LastName),
		fmt.Sprintf("Designated approver: %s", offer.ApproverID))

	return offer, nil
}

// Get returns one offer
func (uc *offerUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Offer, error) {
	caps := actor.Capabilities()
	offer, err := uc.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if !caps.CanManageOffers && offer.RequestedBy != actor.ID {
		return nil, apperror.Permission("You are not allowed to view this offer")
	}
	return offer, nil
}

// Approve moves pending_approval -> approved, mirrors offer_approved onto
// the candidate and opens a "send contract" HR ticket. Only the designated
// approver (or an approval override) may approve.
func (uc *offerUsecase) Approve(ctx context.Context, actor domain.Actor, offerID string) (*domain.Offer, error) {
	caps := actor.Capabilities()

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.Status != domain.OfferPendingApproval {
		return nil, stateConflict("offer", offerID, domain.OfferPendingApproval, offer.Status)
	}
	if actor.ID != offer.ApproverID && !caps.CanOverrideApprovals {
		return nil, apperror.Permission("Only the designated approver may approve this offer")
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableOffers, offer.ID, string(domain.OfferPendingApproval), map[string]any{
		"status":     domain.OfferApproved,
		"updated_at": now,
	})
	cs.Update(domain.TableCandidates, offer.CandidateID, "", map[string]any{
		"status":     domain.CandidateStatusOfferApproved,
		"updated_at": now,
	})
	cs.Insert(domain.TableHrTickets, map[string]any{
		"id":           uuid.NewString(),
		"offer_id":     offer.ID,
		"candidate_id": offer.CandidateID,
		"subject":      "Send contract",
		"status":       domain.TicketPending,
		"created_at":   now,
		"updated_at":   now,
	})

	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	offer.Status = domain.OfferApproved
	offer.UpdatedAt = now

	uc.notifier.Notify("Offer approved",
		fmt.Sprintf("Offer %s was approved by %s.", offer.ID, actor.ID),
		"An HR ticket to send the contract has been opened.")

	return offer, nil
}

// Reject moves pending_approval -> rejected with a mandatory reason and
// mirrors offer_rejected onto the candidate
func (uc *offerUsecase) Reject(ctx context.Context, actor domain.Actor, offerID, reason string) (*domain.Offer, error) {
	caps := actor.Capabilities()
	if !caps.CanManageOffers {
		return nil, apperror.Permission("You are not allowed to manage offers")
	}
	if reason == "" {
		return nil, apperror.Validation("Rejection reason is required")
	}

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.Status != domain.OfferPendingApproval {
		return nil, stateConflict("offer", offerID, domain.OfferPendingApproval, offer.Status)
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableOffers, offer.ID, string(domain.OfferPendingApproval), map[string]any{
		"status":           domain.OfferRejected,
		"rejection_reason": reason,
		"updated_at":       now,
	})
	cs.Update(domain.TableCandidates, offer.CandidateID, "", map[string]any{
		"status":     domain.CandidateStatusOfferRejected,
		"updated_at": now,
	})

	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	offer.Status = domain.OfferRejected
	offer.RejectionReason = &reason
	offer.UpdatedAt = now
	return offer, nil
}

// Withdraw moves any non-terminal state to withdrawn and mirrors it onto
// the candidate; an open HR ticket for the offer is cancelled.
func (uc *offerUsecase) Withdraw(ctx context.Context, actor domain.Actor, offerID string) (*domain.Offer, error) {
	caps := actor.Capabilities()
	if !caps.CanManageOffers {
		return nil, apperror.Permission("You are not allowed to manage offers")
	}

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.Status.IsTerminal() {
		return nil, apperror.Conflict(fmt.Sprintf("offer %s: cannot withdraw from terminal state %s", offerID, offer.Status))
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableOffers, offer.ID, string(offer.Status), map[string]any{
		"status":     domain.OfferWithdrawn,
		"updated_at": now,
	})
	cs.Update(domain.TableCandidates, offer.CandidateID, "", map[string]any{
		"status":     domain.CandidateStatusWithdrawn,
		"updated_at": now,
	})
	if ticket, err := uc.ticketRepo.GetOpenByOffer(ctx, offer.ID); err == nil && ticket != nil {
		cs.Update(domain.TableHrTickets, ticket.ID, "", map[string]any{
			"status":     domain.TicketCancelled,
			"updated_at": now,
		})
	}

	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	offer.Status = domain.OfferWithdrawn
	offer.UpdatedAt = now
	return offer, nil
}

// MarkContractSent moves approved -> contract_sent, mirroring the candidate
// and the HR ticket
func (uc *offerUsecase) MarkContractSent(ctx context.Context, actor domain.Actor, offerID string) (*domain.Offer, error) {
	return uc.advanceContract(ctx, actor, offerID,
		domain.OfferApproved, domain.OfferContractSent,
		domain.CandidateStatusContractSent, domain.TicketContractSent)
}

// MarkContractSigned moves contract_sent -> contract_signed, mirroring the
// candidate and the HR ticket
func (uc *offerUsecase) MarkContractSigned(ctx context.Context, actor domain.Actor, offerID string) (*domain.Offer, error) {
	return uc.advanceContract(ctx, actor, offerID,
		domain.OfferContractSent, domain.OfferContractSigned,
		domain.CandidateStatusContractSigned, domain.TicketContractSigned)
}

// advanceContract applies one step of the strict contract sequence
func (uc *offerUsecase) advanceContract(
	ctx context.Context,
	actor domain.Actor,
	offerID string,
	from, to domain.OfferState,
	candidateStatus domain.CandidateStatus,
	ticketStatus domain.HrTicketStatus,
) (*domain.Offer, error) {
	caps := actor.Capabilities()
	if !caps.CanManageOffers {
		return nil, apperror.Permission("You are not allowed to manage offers")
	}

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.Status != from {
		return nil, stateConflict("offer", offerID, from, offer.Status)
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableOffers, offer.ID, string(from), map[string]any{
		"status":     to,
		"updated_at": now,
	})
	cs.Update(domain.TableCandidates, offer.CandidateID, "", map[string]any{
		"status":     candidateStatus,
		"updated_at": now,
	})
	if ticket, err := uc.ticketRepo.GetOpenByOffer(ctx, offer.ID); err == nil && ticket != nil {
		cs.Update(domain.TableHrTickets, ticket.ID, "", map[string]any{
			"status":     ticketStatus,
			"updated_at": now,
		})
	}

	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	offer.Status = to
	offer.UpdatedAt = now
	return offer, nil
}

// ConvertToConsultant is the terminal, explicit conversion step. Legal only
// when the offer is contract_signed and no consultant exists yet for the
// candidate; a second attempt fails with a conflict.
func (uc *offerUsecase) ConvertToConsultant(ctx context.Context, actor domain.Actor, offerID string) (*domain.Consultant, error) {
	caps := actor.Capabilities()
	if !caps.CanConvertCandidates {
		return nil, apperror.Permission("You are not allowed to convert candidates")
	}

	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, apperror.NotFound("Offer not found")
	}
	if offer.Status != domain.OfferContractSigned {
		return nil, stateConflict("offer", offerID, domain.OfferContractSigned, offer.Status)
	}

	exists, err := uc.consultantRepo.ExistsForCandidate(ctx, offer.CandidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict(fmt.Sprintf("A consultant already exists for candidate %s", offer.CandidateID))
	}

	candidate, err := uc.candidateRepo.GetByID(ctx, offer.CandidateID)
	if err != nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	now := time.Now()
	consultant := &domain.Consultant{
		ID:           uuid.NewString(),
		CandidateID:  candidate.ID,
		FirstName:    candidate.FirstName,
		LastName:     candidate.LastName,
		Status:       domain.ConsultantBench,
		AnnualSalary: offer.AnnualSalary,
		DailyRate:    offer.DailyRate,
		HiredAt:      now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var cs domain.ChangeSet
	cs.Update(domain.TableOffers, offer.ID, string(domain.OfferContractSigned), map[string]any{
		"status":     domain.OfferConverted,
		"updated_at": now,
	})
	cs.Update(domain.TableCandidates, candidate.ID, "", map[string]any{
		"status":     domain.CandidateStatusConvertedToConsultant,
		"updated_at": now,
	})
	cs.Insert(domain.TableConsultants, map[string]any{
		"id":            consultant.ID,
		"candidate_id":  consultant.CandidateID,
		"first_name":    consultant.FirstName,
		"last_name":     consultant.LastName,
		"status":        consultant.Status,
		"annual_salary": consultant.AnnualSalary,
		"daily_rate":    consultant.DailyRate,
		"hired_at":      now,
		"created_at":    now,
		"updated_at":    now,
	})
	if ticket, err := uc.ticketRepo.GetOpenByOffer(ctx, offer.ID); err == nil && ticket != nil {
		cs.Update(domain.TableHrTickets, ticket.ID, "", map[string]any{
			"status":     domain.TicketCompleted,
			"updated_at": now,
		})
	}

	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	uc.notifier.Notify("Candidate converted to consultant",
		fmt.Sprintf("%s %s is now a consultant on the bench.", consultant.FirstName, consultant.LastName))

	return consultant, nil
}

// stateConflict builds the conflict error naming expected vs actual state
func stateConflict[T ~string](entity, id string, expected, actual T) error {
	return apperror.Conflict(fmt.Sprintf("%s %s: expected state %s, got %s", entity, id, expected, actual))
}
