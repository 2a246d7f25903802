package domain

import (
	"context"
	"time"
)

// ConsultantStatus is the employment/deployment status of a consultant
type ConsultantStatus string

const (
	ConsultantBench      ConsultantStatus = "bench"
	ConsultantInMission  ConsultantStatus = "in_mission"
	ConsultantOnLeave    ConsultantStatus = "on_leave"
	ConsultantTerminated ConsultantStatus = "terminated"
)

// Consultant is an employed person, created exactly once per successfully
// converted candidate. Its existence implies the origin candidate's status
// is converted_to_consultant, and vice versa.
type Consultant struct {
	ID           string           `json:"id"`
	CandidateID  string           `json:"candidate_id"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Status       ConsultantStatus `json:"status"`
	AnnualSalary float64          `json:"annual_salary"`
	DailyRate    float64          `json:"daily_rate"`
	HiredAt      time.Time        `json:"hired_at"`
	LastBonus    *float64         `json:"last_bonus,omitempty"`
	LastBonusAt  *time.Time       `json:"last_bonus_at,omitempty"`
	ExitedAt     *time.Time       `json:"exited_at,omitempty"`
	ExitReason   *string          `json:"exit_reason,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ConsultantRepository defines record-store access for consultants
type ConsultantRepository interface {
	GetByID(ctx context.Context, id string) (*Consultant, error)
	GetByCandidateID(ctx context.Context, candidateID string) (*Consultant, error)
	ExistsForCandidate(ctx context.Context, candidateID string) (bool, error)
	List(ctx context.Context, status ConsultantStatus) ([]Consultant, error)
}
