package domain

import (
	"context"
	"time"
)

// CandidateStatus is the explicit terminal/override status of a candidate.
// It is only set for states that cannot be inferred from interview records
// (they originate in the offer/contract machine); everything else is derived
// on the fly by ComputePipelineStatus.
type CandidateStatus string

const (
	CandidateStatusNone                  CandidateStatus = ""
	CandidateStatusOfferPending          CandidateStatus = "offer_pending"
	CandidateStatusOfferApproved         CandidateStatus = "offer_approved"
	CandidateStatusOfferRejected         CandidateStatus = "offer_rejected"
	CandidateStatusContractSent          CandidateStatus = "contract_sent"
	CandidateStatusContractSigned        CandidateStatus = "contract_signed"
	CandidateStatusConvertedToConsultant CandidateStatus = "converted_to_consultant"
	CandidateStatusRejected              CandidateStatus = "rejected"
	CandidateStatusWithdrawn             CandidateStatus = "withdrawn"
)

// Candidate represents a person under recruitment
type Candidate struct {
	ID                string          `json:"id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Email             string          `json:"email,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Skills            []string        `json:"skills,omitempty"`
	PreviousCompanies []string        `json:"previous_companies,omitempty"`
	YearsExperience   int             `json:"years_experience,omitempty"`
	Status            CandidateStatus `json:"status,omitempty"`
	CVObjectKey       *string         `json:"cv_object_key,omitempty"` // raw CV artifact in object storage
	CreatedBy         string          `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy         *string         `json:"deleted_by,omitempty"`

	// Derived, never persisted
	Pipeline *PipelineStatus `json:"pipeline,omitempty"`
}

// CandidateFilter narrows candidate listings
type CandidateFilter struct {
	Skill          string
	IncludeDeleted bool
}

// CandidateRepository defines record-store access for candidates
type CandidateRepository interface {
	GetByID(ctx context.Context, id string) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
	Create(ctx context.Context, c *Candidate) error
	Update(ctx context.Context, c *Candidate) error
	SoftDelete(ctx context.Context, id, actorID string) error
	Restore(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

// CreateCandidateInput is the payload for manual or CV-import creation
type CreateCandidateInput struct {
	FirstName         string   `json:"first_name" validate:"required,valid_name,max=100"`
	LastName          string   `json:"last_name" validate:"required,valid_name,max=100"`
	Email             string   `json:"email" validate:"omitempty,email"`
	Phone             string   `json:"phone" validate:"omitempty,valid_phone"`
	Skills            []string `json:"skills"`
	PreviousCompanies []string `json:"previous_companies"`
	YearsExperience   int      `json:"years_experience" validate:"omitempty,min=0,max=60"`
}

// CandidateUsecase defines business logic for candidates and their
// interview pipeline
type CandidateUsecase interface {
	Create(ctx context.Context, actor Actor, input CreateCandidateInput) (*Candidate, error)
	ImportFromCV(ctx context.Context, actor Actor, cvText string) (*Candidate, error)
	Get(ctx context.Context, actor Actor, id string) (*Candidate, error)
	List(ctx context.Context, actor Actor, filter CandidateFilter) ([]Candidate, error)
	Update(ctx context.Context, actor Actor, id string, input CreateCandidateInput) (*Candidate, error)
	SoftDelete(ctx context.Context, actor Actor, id string) error
	Restore(ctx context.Context, actor Actor, id string) error
	HardDelete(ctx context.Context, actor Actor, id string) error

	ScheduleInterview(ctx context.Context, actor Actor, candidateID string, stage InterviewStage, scheduledAt time.Time) (*Interview, error)
	RecordInterviewOutcome(ctx context.Context, actor Actor, interviewID string, outcome InterviewOutcome) (*Interview, error)
}
