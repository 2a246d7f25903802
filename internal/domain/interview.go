package domain

import (
	"context"
	"time"
)

// InterviewStage identifies one of the three assessment stages
type InterviewStage string

const (
	StagePhoneQualification InterviewStage = "phone_qualification"
	StageTechnicalInterview InterviewStage = "technical_interview"
	StageDirectorInterview  InterviewStage = "director_interview"
)

// Rank orders stages for the pipeline scan; higher is more senior
func (s InterviewStage) Rank() int {
	switch s {
	case StagePhoneQualification:
		return 1
	case StageTechnicalInterview:
		return 2
	case StageDirectorInterview:
		return 3
	}
	return 0
}

// IsValid checks if the stage is a known stage
func (s InterviewStage) IsValid() bool {
	return s.Rank() > 0
}

// InterviewOutcome is the result of one interview
type InterviewOutcome string

const (
	OutcomePending InterviewOutcome = "pending"
	OutcomePass    InterviewOutcome = "pass"
	OutcomeFail    InterviewOutcome = "fail"
)

// IsValid checks if the outcome is a known outcome
func (o InterviewOutcome) IsValid() bool {
	switch o {
	case OutcomePending, OutcomePass, OutcomeFail:
		return true
	}
	return false
}

// Interview is one scheduled or completed assessment event for a candidate.
// Multiple interviews per stage can exist; derivation tolerates duplicates
// by taking the most decisive record per stage.
type Interview struct {
	ID          string           `json:"id"`
	CandidateID string           `json:"candidate_id"`
	Stage       InterviewStage   `json:"stage"`
	Outcome     InterviewOutcome `json:"outcome"`
	ScheduledAt *time.Time       `json:"scheduled_at,omitempty"`
	CreatedBy   string           `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// InterviewRepository defines record-store access for interviews
type InterviewRepository interface {
	GetByID(ctx context.Context, id string) (*Interview, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Interview, error)
	Create(ctx context.Context, iv *Interview) error
	Update(ctx context.Context, iv *Interview) error
}
