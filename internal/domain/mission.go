package domain

import (
	"context"
	"time"
)

// MissionStatus is the state of a billable assignment
type MissionStatus string

const (
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
	MissionOnHold    MissionStatus = "on_hold"
	MissionCancelled MissionStatus = "cancelled"
)

// Mission is a billable assignment of exactly one consultant to one
// customer engagement for a date range and daily rate.
// Invariant: StartDate <= EndDate.
type Mission struct {
	ID            string        `json:"id"`
	ConsultantID  string        `json:"consultant_id"`
	CustomerID    string        `json:"customer_id"`
	ProjectID     string        `json:"project_id"`
	RequirementID *string       `json:"requirement_id,omitempty"`
	Status        MissionStatus `json:"status"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	DailyRate     float64       `json:"daily_rate"`
	Notes         string        `json:"notes,omitempty"`
	CreatedBy     string        `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// MissionRepository defines record-store access for missions
type MissionRepository interface {
	GetByID(ctx context.Context, id string) (*Mission, error)
	ListByConsultant(ctx context.Context, consultantID string) ([]Mission, error)
	List(ctx context.Context, status MissionStatus) ([]Mission, error)
}

// UpdateMissionInput carries the editable mission fields. Non-admin actors
// may only touch EndDate and Notes.
type UpdateMissionInput struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	DailyRate *float64   `json:"daily_rate,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// MissionUsecase governs the mission lifecycle and the reciprocal
// consultant bench/in-mission status.
type MissionUsecase interface {
	Get(ctx context.Context, actor Actor, id string) (*Mission, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateMissionInput) (*Mission, error)
	Complete(ctx context.Context, actor Actor, id string, endDate time.Time) (*Mission, error)
	Hold(ctx context.Context, actor Actor, id string) (*Mission, error)
	Cancel(ctx context.Context, actor Actor, id string) (*Mission, error)
	Reopen(ctx context.Context, actor Actor, id string) (*Mission, error)
}
