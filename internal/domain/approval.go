package domain

import (
	"context"
	"time"
)

// ApprovalRequestType identifies the sensitive HR/financial change requested
type ApprovalRequestType string

const (
	RequestSalaryIncrease ApprovalRequestType = "salary_increase"
	RequestBonusPayment   ApprovalRequestType = "bonus_payment"
	RequestEmployeeExit   ApprovalRequestType = "employee_exit"
)

// IsValid checks if the request type is known
func (t ApprovalRequestType) IsValid() bool {
	switch t {
	case RequestSalaryIncrease, RequestBonusPayment, RequestEmployeeExit:
		return true
	}
	return false
}

// ApprovalStatus is the state of an approval request in the two-stage chain
type ApprovalStatus string

const (
	ApprovalPendingDirector ApprovalStatus = "pending_director"
	ApprovalPendingHR       ApprovalStatus = "pending_hr"
	ApprovalApproved        ApprovalStatus = "approved"
	ApprovalRejected        ApprovalStatus = "rejected"
)

// ApprovalPayload is the type-specific request data. Only the fields
// matching the request type are set; HR approval applies them to the
// consultant record.
type ApprovalPayload struct {
	NewSalary  *float64   `json:"new_salary,omitempty"`  // salary_increase
	Amount     *float64   `json:"amount,omitempty"`      // bonus_payment
	ExitReason *string    `json:"exit_reason,omitempty"` // employee_exit
	ExitDate   *time.Time `json:"exit_date,omitempty"`   // employee_exit
}

// ApprovalRequest is a request for a sensitive HR/financial change against
// a consultant, routed director -> HR.
type ApprovalRequest struct {
	ID           string              `json:"id"`
	ConsultantID string              `json:"consultant_id"`
	RequestType  ApprovalRequestType `json:"request_type"`
	Status       ApprovalStatus      `json:"status"`
	Payload      ApprovalPayload     `json:"request_data"`
	RequestedBy  string              `json:"requested_by"`
	DecidedBy    *string             `json:"decided_by,omitempty"`
	Reason       *string             `json:"reason,omitempty"` // mandatory on rejection
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ApprovalRepository defines record-store access for approval requests
type ApprovalRepository interface {
	GetByID(ctx context.Context, id string) (*ApprovalRequest, error)
	ListByConsultant(ctx context.Context, consultantID string) ([]ApprovalRequest, error)
	ListPending(ctx context.Context, status ApprovalStatus) ([]ApprovalRequest, error)
	Create(ctx context.Context, r *ApprovalRequest) error
}

// ApprovalUsecase governs the two-stage approval chain. Director approval
// routes the request to HR without applying any effect; HR approval applies
// the payload to the consultant atomically with the status change.
type ApprovalUsecase interface {
	Submit(ctx context.Context, actor Actor, consultantID string, reqType ApprovalRequestType, payload ApprovalPayload) (*ApprovalRequest, error)
	Get(ctx context.Context, actor Actor, id string) (*ApprovalRequest, error)
	DirectorApprove(ctx context.Context, actor Actor, id string) (*ApprovalRequest, error)
	HRApprove(ctx context.Context, actor Actor, id string) (*ApprovalRequest, error)
	Reject(ctx context.Context, actor Actor, id, reason string) (*ApprovalRequest, error)
}
