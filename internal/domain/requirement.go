package domain

import (
	"context"
	"time"
)

// RequirementStatus is the state of a customer staffing need
type RequirementStatus string

const (
	RequirementActive      RequirementStatus = "active"
	RequirementOpportunity RequirementStatus = "opportunity"
	RequirementWon         RequirementStatus = "won"
	RequirementFilled      RequirementStatus = "filled"
	RequirementLost        RequirementStatus = "lost"
	RequirementCancelled   RequirementStatus = "cancelled"
)

// BidStatus is the sub-state of the fixed-price bid workflow. It advances
// strictly forward: qualifying -> proposal -> submitted -> {won | lost}.
type BidStatus string

const (
	BidQualifying BidStatus = "qualifying"
	BidProposal   BidStatus = "proposal"
	BidSubmitted  BidStatus = "submitted"
	BidWon        BidStatus = "won"
	BidLost       BidStatus = "lost"
)

// Rank orders bid states for the forward-only check
func (b BidStatus) Rank() int {
	switch b {
	case BidQualifying:
		return 1
	case BidProposal:
		return 2
	case BidSubmitted:
		return 3
	case BidWon, BidLost:
		return 4
	}
	return 0
}

// ProjectType distinguishes time-and-materials staffing from fixed-price bids
type ProjectType string

const (
	ProjectTypeTM         ProjectType = "T&M"
	ProjectTypeFixedPrice ProjectType = "Fixed_Price"
)

// BidScorecard holds the go/no-go and MEDDPICC qualification inputs of a
// bid. Each dimension is nil until someone scores it.
type BidScorecard struct {
	Metrics          *float64 `json:"metrics,omitempty"`
	EconomicBuyer    *float64 `json:"economic_buyer,omitempty"`
	DecisionCriteria *float64 `json:"decision_criteria,omitempty"`
	DecisionProcess  *float64 `json:"decision_process,omitempty"`
	PaperProcess     *float64 `json:"paper_process,omitempty"`
	IdentifyPain     *float64 `json:"identify_pain,omitempty"`
	Champion         *float64 `json:"champion,omitempty"`
	Competition      *float64 `json:"competition,omitempty"`
}

// Score averages the dimensions that have been filled in. ok is false when
// every input is nil: the caller reports "insufficient data" instead of
// inventing a default.
func (sc BidScorecard) Score() (score float64, ok bool) {
	inputs := []*float64{
		sc.Metrics, sc.EconomicBuyer, sc.DecisionCriteria, sc.DecisionProcess,
		sc.PaperProcess, sc.IdentifyPain, sc.Champion, sc.Competition,
	}
	var sum float64
	var n int
	for _, v := range inputs {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Requirement is a customer staffing need, optionally carrying the bid
// sub-workflow for fixed-price engagements.
type Requirement struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	CompanyID          string            `json:"company_id"`
	CustomerName       string            `json:"customer_name,omitempty"` // free-text fallback when no company is linked yet
	ProjectType        ProjectType       `json:"project_type"`
	Status             RequirementStatus `json:"status"`
	IsBid              bool              `json:"is_bid"`
	BidStatus          *BidStatus        `json:"bid_status,omitempty"`
	GoNoGoDecision     *string           `json:"go_nogo_decision,omitempty"`
	Scorecard          BidScorecard      `json:"scorecard,omitempty"`
	WinningCandidateID *string           `json:"winning_candidate_id,omitempty"`
	ProjectID          *string           `json:"project_id,omitempty"`
	CreatedBy          string            `json:"created_by"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// Project is a customer engagement container, created once per won
// requirement and gated on the owning company's financial scoring.
type Project struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	CompanyID     string      `json:"company_id"`
	RequirementID string      `json:"requirement_id"`
	Type          ProjectType `json:"type"`
	CreatedBy     string      `json:"created_by"`
	CreatedAt     time.Time   `json:"created_at"`
}

// RequirementRepository defines record-store access for requirements
type RequirementRepository interface {
	GetByID(ctx context.Context, id string) (*Requirement, error)
	List(ctx context.Context, status RequirementStatus) ([]Requirement, error)
	Create(ctx context.Context, r *Requirement) error
}

// ProjectRepository defines record-store access for projects
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*Project, error)
	GetByRequirementID(ctx context.Context, requirementID string) (*Project, error)
	Create(ctx context.Context, p *Project) error
}

// CreateRequirementInput is the payload for opening a requirement
type CreateRequirementInput struct {
	Title        string      `json:"title" validate:"required,max=200"`
	CompanyID    string      `json:"company_id" validate:"omitempty,uuid"`
	CustomerName string      `json:"customer_name" validate:"omitempty,max=200"`
	ProjectType  ProjectType `json:"project_type" validate:"required,oneof=T&M Fixed_Price"`
}

// CreateMissionInput is the payload for staffing a won requirement
type CreateMissionInput struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	DailyRate float64   `json:"daily_rate" validate:"required,gt=0"`
	Notes     string    `json:"notes" validate:"omitempty,max=2000"`
}

// RequirementUsecase governs the requirement/bid state machine and the
// downstream project and mission creation sequence.
type RequirementUsecase interface {
	Create(ctx context.Context, actor Actor, input CreateRequirementInput) (*Requirement, error)
	Get(ctx context.Context, actor Actor, id string) (*Requirement, error)
	AdvanceBid(ctx context.Context, actor Actor, requirementID string, to BidStatus, winningCandidateID string) (*Requirement, error)
	ScoreBid(ctx context.Context, actor Actor, requirementID string, scorecard BidScorecard) (float64, error)
	SetWinningCandidate(ctx context.Context, actor Actor, requirementID, candidateID string) (*Requirement, error)
	MarkWon(ctx context.Context, actor Actor, requirementID, winningCandidateID string) (*Requirement, error)
	MarkLost(ctx context.Context, actor Actor, requirementID string) (*Requirement, error)
	Cancel(ctx context.Context, actor Actor, requirementID string) (*Requirement, error)
	CreateProject(ctx context.Context, actor Actor, requirementID string) (*Project, error)
	CreateMission(ctx context.Context, actor Actor, requirementID string, input CreateMissionInput) (*Mission, error)
}
