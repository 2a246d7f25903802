package domain

// PipelineStatus is a candidate's displayed pipeline stage. It is a pure
// projection of interview records plus the explicit override channel and is
// never persisted, so it cannot drift from the underlying data.
type PipelineStatus struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

// Derived pipeline status values (in addition to the CandidateStatus
// override values, which pass through unchanged)
const (
	PipelineSourced          = "sourced"
	PipelineRejected         = "rejected"
	PipelinePhoneDone        = "phone_done"
	PipelinePhonePlanned     = "phone_planned"
	PipelineTechnicalDone    = "technical_done"
	PipelineTechnicalPlanned = "technical_planned"
	PipelineDirectorDone     = "director_done"
	PipelineDirectorPlanned  = "director_planned"
)

var pipelineLabels = map[string]string{
	PipelineSourced:          "Sourced",
	PipelineRejected:         "Rejected",
	PipelinePhoneDone:        "Phone qualification done",
	PipelinePhonePlanned:     "Phone qualification planned",
	PipelineTechnicalDone:    "Technical interview done",
	PipelineTechnicalPlanned: "Technical interview planned",
	PipelineDirectorDone:     "Director interview done",
	PipelineDirectorPlanned:  "Director interview planned",

	string(CandidateStatusOfferPending):          "Offer pending approval",
	string(CandidateStatusOfferApproved):         "Offer approved",
	string(CandidateStatusOfferRejected):         "Offer rejected",
	string(CandidateStatusContractSent):          "Contract sent",
	string(CandidateStatusContractSigned):        "Contract signed",
	string(CandidateStatusConvertedToConsultant): "Converted to consultant",
	string(CandidateStatusWithdrawn):             "Withdrawn",
}

// overrideStatuses is the fixed set of explicit statuses that always take
// precedence over interview-derived stages. They represent states interview
// data cannot express.
var overrideStatuses = map[CandidateStatus]bool{
	CandidateStatusConvertedToConsultant: true,
	CandidateStatusContractSigned:        true,
	CandidateStatusContractSent:          true,
	CandidateStatusOfferApproved:         true,
	CandidateStatusOfferPending:          true,
	CandidateStatusOfferRejected:         true,
	CandidateStatusRejected:              true,
	CandidateStatusWithdrawn:             true,
}

// IsOverride reports whether s belongs to the fixed override set
func (s CandidateStatus) IsOverride() bool {
	return overrideStatuses[s]
}

var stageStatuses = map[InterviewStage]struct{ done, planned string }{
	StageDirectorInterview:  {PipelineDirectorDone, PipelineDirectorPlanned},
	StageTechnicalInterview: {PipelineTechnicalDone, PipelineTechnicalPlanned},
	StagePhoneQualification: {PipelinePhoneDone, PipelinePhonePlanned},
}

// ComputePipelineStatus derives a candidate's displayed pipeline stage from
// its interview history plus any terminal override. Priority order, first
// match wins:
//
//  1. A recognized explicit status passes through unchanged.
//  2. Stages are scanned in descending order (director, technical, phone);
//     the first stage with a decisive record determines the result: a fail
//     anywhere is globally terminal, a pass yields "<stage> done", a
//     scheduled pending interview yields "<stage> planned", and an
//     unscheduled pending record falls through to the next lower stage.
//  3. Absent any record, the candidate is "sourced".
func ComputePipelineStatus(interviews []Interview, explicit CandidateStatus) PipelineStatus {
	if overrideStatuses[explicit] {
		return statusOf(string(explicit))
	}

	for _, stage := range []InterviewStage{StageDirectorInterview, StageTechnicalInterview, StagePhoneQualification} {
		best, found := mostDecisive(interviews, stage)
		if !found {
			continue
		}
		switch {
		case best.Outcome == OutcomeFail:
			// A fail at any stage is terminal
			return statusOf(PipelineRejected)
		case best.Outcome == OutcomePass:
			return statusOf(stageStatuses[stage].done)
		case best.ScheduledAt != nil:
			return statusOf(stageStatuses[stage].planned)
		}
		// Unscheduled pending record: fall through to the lower stage
	}

	return statusOf(PipelineSourced)
}

// mostDecisive picks the most decisive record for a stage when duplicates
// exist: fail > pass > scheduled pending > unscheduled pending.
func mostDecisive(interviews []Interview, stage InterviewStage) (Interview, bool) {
	var best Interview
	bestRank := -1
	for _, iv := range interviews {
		if iv.Stage != stage {
			continue
		}
		rank := 0
		switch {
		case iv.Outcome == OutcomeFail:
			rank = 3
		case iv.Outcome == OutcomePass:
			rank = 2
		case iv.ScheduledAt != nil:
			rank = 1
		}
		if rank > bestRank {
			best = iv
			bestRank = rank
		}
	}
	return best, bestRank >= 0
}

func statusOf(status string) PipelineStatus {
	label, ok := pipelineLabels[status]
	if !ok {
		label = status
	}
	return PipelineStatus{Status: status, Label: label}
}
