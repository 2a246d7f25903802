package domain_test

import (
	"testing"
	"time"

	"go-staffing-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func scheduled(stage domain.InterviewStage) domain.Interview {
	at := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	return domain.Interview{Stage: stage, Outcome: domain.OutcomePending, ScheduledAt: &at}
}

func passed(stage domain.InterviewStage) domain.Interview {
	return domain.Interview{Stage: stage, Outcome: domain.OutcomePass}
}

func failed(stage domain.InterviewStage) domain.Interview {
	return domain.Interview{Stage: stage, Outcome: domain.OutcomeFail}
}

func unscheduled(stage domain.InterviewStage) domain.Interview {
	return domain.Interview{Stage: stage, Outcome: domain.OutcomePending}
}

func TestComputePipelineStatus(t *testing.T) {
	t.Run("Should default to sourced with no interview records", func(t *testing.T) {
		status := domain.ComputePipelineStatus(nil, domain.CandidateStatusNone)
		assert.Equal(t, domain.PipelineSourced, status.Status)
		assert.Equal(t, "Sourced", status.Label)
	})

	t.Run("Should pass an explicit override through unchanged", func(t *testing.T) {
		interviews := []domain.Interview{passed(domain.StagePhoneQualification), passed(domain.StageTechnicalInterview)}
		status := domain.ComputePipelineStatus(interviews, domain.CandidateStatusContractSent)
		assert.Equal(t, string(domain.CandidateStatusContractSent), status.Status)
		assert.Equal(t, "Contract sent", status.Label)
	})

	t.Run("Should report the highest decided stage", func(t *testing.T) {
		interviews := []domain.Interview{
			passed(domain.StagePhoneQualification),
			passed(domain.StageTechnicalInterview),
		}
		status := domain.ComputePipelineStatus(interviews, domain.CandidateStatusNone)
		assert.Equal(t, domain.PipelineTechnicalDone, status.Status)
	})

	t.Run("Should report planned for a scheduled pending interview", func(t *testing.T) {
		interviews := []domain.Interview{
			passed(domain.StagePhoneQualification),
			scheduled(domain.StageTechnicalInterview),
		}
		status := domain.ComputePipelineStatus(interviews, domain.CandidateStatusNone)
		assert.Equal(t, domain.PipelineTechnicalPlanned, status.Status)
	})

	t.Run("Should treat a fail at any stage as terminal rejection", func(t *testing.T) {
		interviews := []domain.Interview{
			passed(domain.StagePhoneQualification),
			failed(domain.StageTechnicalInterview),
			scheduled(domain.StageDirectorInterview),
		}
		status := domain.ComputePipelineStatus(interviews, domain.CandidateStatusNone)
		assert.Equal(t, domain.PipelineRejected, status.Status)
	})

	t.Run("Should let an unscheduled pending record fall through to the lower stage", func(t *testing.T) {
		interviews := []domain.Interview{
			passed(domain.StagePhoneQualification),
			unscheduled(domain.StageDirectorInterview),
		}
		status := domain.ComputePipelineStatus(interviews, domain.CandidateStatusNone)
		assert.Equal(t, domain.PipelinePhoneDone, status.Status)
	})

	t.Run("Should take the most decisive record when a stage has duplicates", func(t *testing.T) {
		interviews := []domain.Interview{
			unscheduled(domain.StageTechnicalInterview),
			scheduled(domain.StageTechnicalInterview),
			passed(domain.StageTechnicalInterview),
		}
		status := domain.ComputePipelineStatus(interviews, domain.CandidateStatusNone)
		assert.Equal(t, domain.PipelineTechnicalDone, status.Status)

		interviews = append(interviews, failed(domain.StageTechnicalInterview))
		status = domain.ComputePipelineStatus(interviews, domain.CandidateStatusNone)
		assert.Equal(t, domain.PipelineRejected, status.Status)
	})

	t.Run("Should ignore an unrecognized explicit status", func(t *testing.T) {
		interviews := []domain.Interview{passed(domain.StagePhoneQualification)}
		status := domain.ComputePipelineStatus(interviews, domain.CandidateStatus("archived"))
		assert.Equal(t, domain.PipelinePhoneDone, status.Status)
	})

	t.Run("Should be deterministic regardless of record order", func(t *testing.T) {
		a := []domain.Interview{
			passed(domain.StagePhoneQualification),
			scheduled(domain.StageDirectorInterview),
			passed(domain.StageTechnicalInterview),
		}
		b := []domain.Interview{a[2], a[0], a[1]}
		assert.Equal(t,
			domain.ComputePipelineStatus(a, domain.CandidateStatusNone),
			domain.ComputePipelineStatus(b, domain.CandidateStatusNone),
		)
	})
}

func TestIsOverride(t *testing.T) {
	overrides := []domain.CandidateStatus{
		domain.CandidateStatusOfferPending,
		domain.CandidateStatusOfferApproved,
		domain.CandidateStatusOfferRejected,
		domain.CandidateStatusContractSent,
		domain.CandidateStatusContractSigned,
		domain.CandidateStatusConvertedToConsultant,
		domain.CandidateStatusRejected,
		domain.CandidateStatusWithdrawn,
	}
	for _, s := range overrides {
		assert.True(t, s.IsOverride(), "%s should override derivation", s)
	}
	assert.False(t, domain.CandidateStatusNone.IsOverride())
	assert.False(t, domain.CandidateStatus("archived").IsOverride())
}
