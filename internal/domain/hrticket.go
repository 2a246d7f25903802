package domain

import (
	"context"
	"time"
)

// HrTicketStatus is the state of an operational HR task
type HrTicketStatus string

const (
	TicketPending        HrTicketStatus = "pending"
	TicketInProgress     HrTicketStatus = "in_progress"
	TicketContractSent   HrTicketStatus = "contract_sent"
	TicketContractSigned HrTicketStatus = "contract_signed"
	TicketCompleted      HrTicketStatus = "completed"
	TicketCancelled      HrTicketStatus = "cancelled"
)

// HrTicket is an operational task queue item, e.g. "send contract". The
// offer machine opens one on approval and advances it alongside the
// contract states.
type HrTicket struct {
	ID          string         `json:"id"`
	OfferID     *string        `json:"offer_id,omitempty"`
	CandidateID string         `json:"candidate_id"`
	Subject     string         `json:"subject"`
	Status      HrTicketStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// HrTicketRepository defines record-store access for HR tickets
type HrTicketRepository interface {
	GetByID(ctx context.Context, id string) (*HrTicket, error)
	GetOpenByOffer(ctx context.Context, offerID string) (*HrTicket, error)
	List(ctx context.Context, status HrTicketStatus) ([]HrTicket, error)
}
