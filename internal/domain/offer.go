package domain

import (
	"context"
	"time"
)

// OfferState is the state of an offer in the offer/contract machine.
// pending_approval -> {approved | rejected}; approved -> contract_sent ->
// contract_signed -> converted; any non-terminal state may move to withdrawn.
type OfferState string

const (
	OfferPendingApproval OfferState = "pending_approval"
	OfferApproved        OfferState = "approved"
	OfferRejected        OfferState = "rejected"
	OfferContractSent    OfferState = "contract_sent"
	OfferContractSigned  OfferState = "contract_signed"
	OfferConverted       OfferState = "converted"
	OfferWithdrawn       OfferState = "withdrawn"
)

// IsTerminal reports whether no further transition is legal from s
func (s OfferState) IsTerminal() bool {
	switch s {
	case OfferRejected, OfferConverted, OfferWithdrawn:
		return true
	}
	return false
}

// Offer is a compensation proposal for one candidate tied to one open
// position. Offers are never silently overwritten; rejection and withdrawal
// are explicit terminal states.
type Offer struct {
	ID              string     `json:"id"`
	CandidateID     string     `json:"candidate_id"`
	PositionTitle   string     `json:"position_title"`
	Status          OfferState `json:"status"`
	ApproverID      string     `json:"approver_id"`
	RequestedBy     string     `json:"requested_by"`
	AnnualSalary    float64    `json:"annual_salary"`
	DailyRate       float64    `json:"daily_rate"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// OfferRepository defines record-store access for offers
type OfferRepository interface {
	GetByID(ctx context.Context, id string) (*Offer, error)
	GetActiveByCandidate(ctx context.Context, candidateID string) (*Offer, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Offer, error)
	Create(ctx context.Context, o *Offer) error
}

// CreateOfferInput is the payload for drafting a new offer
type CreateOfferInput struct {
	CandidateID   string  `json:"candidate_id" validate:"required,uuid"`
	PositionTitle string  `json:"position_title" validate:"required,max=150"`
	ApproverID    string  `json:"approver_id" validate:"required"`
	AnnualSalary  float64 `json:"annual_salary" validate:"required,gt=0"`
	DailyRate     float64 `json:"daily_rate" validate:"omitempty,gt=0"`
}

// OfferUsecase governs the offer/contract state machine. Every transition
// validates the snapshot state, declares its mutations as a change set and
// commits them atomically; an entity that moved since the read surfaces a
// conflict instead of being overwritten.
type OfferUsecase interface {
	Create(ctx context.Context, actor Actor, input CreateOfferInput) (*Offer, error)
	Get(ctx context.Context, actor Actor, id string) (*Offer, error)
	Approve(ctx context.Context, actor Actor, offerID string) (*Offer, error)
	Reject(ctx context.Context, actor Actor, offerID, reason string) (*Offer, error)
	Withdraw(ctx context.Context, actor Actor, offerID string) (*Offer, error)
	MarkContractSent(ctx context.Context, actor Actor, offerID string) (*Offer, error)
	MarkContractSigned(ctx context.Context, actor Actor, offerID string) (*Offer, error)
	ConvertToConsultant(ctx context.Context, actor Actor, offerID string) (*Consultant, error)
}
