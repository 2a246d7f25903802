package usecase

import (
	"context"
	"fmt"
	"time"

	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/apperror"
)

type missionUsecase struct {
	missionRepo    domain.MissionRepository
	consultantRepo domain.ConsultantRepository
	committer      domain.Committer
}

// NewMissionUsecase creates the mission lifecycle manager
func NewMissionUsecase(
	missionRepo domain.MissionRepository,
	consultantRepo domain.ConsultantRepository,
	committer domain.Committer,
) domain.MissionUsecase {
	return &missionUsecase{
		missionRepo:    missionRepo,
		consultantRepo: consultantRepo,
		committer:      committer,
	}
}

// Get returns one mission
func (uc *missionUsecase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Mission, error) {
	caps := actor.Capabilities()
	if !caps.CanManageMissions {
		return nil, apperror.Permission("You are not allowed to view missions")
	}
	mission, err := uc.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Mission not found")
	}
	return mission, nil
}

// Update edits mission fields. Admins may edit everything; everyone else is
// limited to the end date and notes, and only while the mission is active or
// on hold.
func (uc *missionUsecase) Update(ctx context.Context, actor domain.Actor, id string, input domain.UpdateMissionInput) (*domain.Mission, error) {
	caps := actor.Capabilities()
	if !caps.CanManageMissions {
		return nil, apperror.Permission("You are not allowed to manage missions")
	}

	mission, err := uc.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Mission not found")
	}

	isAdmin := caps.IsAdmin || caps.IsSuperAdmin
	if !isAdmin {
		if mission.Status != domain.MissionActive && mission.Status != domain.MissionOnHold {
			return nil, apperror.Conflict(fmt.Sprintf("mission %s: only active or on-hold missions can be edited, got %s", id, mission.Status))
		}
		if input.StartDate != nil || input.DailyRate != nil {
			return nil, apperror.Permission("Only administrators may change the start date or daily rate")
		}
	}

	start := mission.StartDate
	end := mission.EndDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if end.Before(start) {
		return nil, apperror.Validation("End date must not be before start date")
	}
	if input.DailyRate != nil && *input.DailyRate <= 0 {
		return nil, apperror.Validation("Daily rate must be positive")
	}

	now := time.Now()
	set := map[string]any{"updated_at": now}
	if input.StartDate != nil {
		set["start_date"] = *input.StartDate
		mission.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		set["end_date"] = *input.EndDate
		mission.EndDate = *input.EndDate
	}
	if input.DailyRate != nil {
		set["daily_rate"] = *input.DailyRate
		mission.DailyRate = *input.DailyRate
	}
	if input.Notes != nil {
		set["notes"] = *input.Notes
		mission.Notes = *input.Notes
	}

	var cs domain.ChangeSet
	cs.Update(domain.TableMissions, mission.ID, string(mission.Status), set)
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}
	mission.UpdatedAt = now
	return mission, nil
}

// Complete ends a mission and returns the consultant to the bench unless
// another active mission still holds them
func (uc *missionUsecase) Complete(ctx context.Context, actor domain.Actor, id string, endDate time.Time) (*domain.Mission, error) {
	caps := actor.Capabilities()
	if !caps.CanManageMissions {
		return nil, apperror.Permission("You are not allowed to manage missions")
	}

	mission, err := uc.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Mission not found")
	}
	if mission.Status != domain.MissionActive && mission.Status != domain.MissionOnHold {
		return nil, apperror.Conflict(fmt.Sprintf("mission %s: only active or on-hold missions can be completed, got %s", id, mission.Status))
	}
	if endDate.Before(mission.StartDate) {
		return nil, apperror.Validation("End date must not be before the mission start date")
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableMissions, mission.ID, string(mission.Status), map[string]any{
		"status":     domain.MissionCompleted,
		"end_date":   endDate,
		"updated_at": now,
	})
	if err := uc.applyBenchEffect(ctx, &cs, mission, now); err != nil {
		return nil, err
	}
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	mission.Status = domain.MissionCompleted
	mission.EndDate = endDate
	mission.UpdatedAt = now
	return mission, nil
}

// Hold pauses an active mission without touching the consultant status
func (uc *missionUsecase) Hold(ctx context.Context, actor domain.Actor, id string) (*domain.Mission, error) {
	caps := actor.Capabilities()
	if !caps.CanManageMissions {
		return nil, apperror.Permission("You are not allowed to manage missions")
	}

	mission, err := uc.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Mission not found")
	}
	if mission.Status != domain.MissionActive {
		return nil, stateConflict("mission", id, domain.MissionActive, mission.Status)
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableMissions, mission.ID, string(domain.MissionActive), map[string]any{
		"status":     domain.MissionOnHold,
		"updated_at": now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	mission.Status = domain.MissionOnHold
	mission.UpdatedAt = now
	return mission, nil
}

// Cancel aborts an active or on-hold mission with the same bench side
// effect as completion
func (uc *missionUsecase) Cancel(ctx context.Context, actor domain.Actor, id string) (*domain.Mission, error) {
	caps := actor.Capabilities()
	if !caps.CanManageMissions {
		return nil, apperror.Permission("You are not allowed to manage missions")
	}

	mission, err := uc.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Mission not found")
	}
	if mission.Status != domain.MissionActive && mission.Status != domain.MissionOnHold {
		return nil, apperror.Conflict(fmt.Sprintf("mission %s: only active or on-hold missions can be cancelled, got %s", id, mission.Status))
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableMissions, mission.ID, string(mission.Status), map[string]any{
		"status":     domain.MissionCancelled,
		"updated_at": now,
	})
	if err := uc.applyBenchEffect(ctx, &cs, mission, now); err != nil {
		return nil, err
	}
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	mission.Status = domain.MissionCancelled
	mission.UpdatedAt = now
	return mission, nil
}

// Reopen moves a completed mission back to active. Admin only, and the
// consultant goes back in mission.
func (uc *missionUsecase) Reopen(ctx context.Context, actor domain.Actor, id string) (*domain.Mission, error) {
	caps := actor.Capabilities()
	if !caps.IsAdmin && !caps.IsSuperAdmin {
		return nil, apperror.Permission("Only administrators may reopen missions")
	}

	mission, err := uc.missionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Mission not found")
	}
	if mission.Status != domain.MissionCompleted {
		return nil, stateConflict("mission", id, domain.MissionCompleted, mission.Status)
	}

	now := time.Now()
	var cs domain.ChangeSet
	cs.Update(domain.TableMissions, mission.ID, string(domain.MissionCompleted), map[string]any{
		"status":     domain.MissionActive,
		"updated_at": now,
	})
	cs.Update(domain.TableConsultants, mission.ConsultantID, "", map[string]any{
		"status":     domain.ConsultantInMission,
		"updated_at": now,
	})
	if err := uc.committer.Commit(ctx, cs); err != nil {
		return nil, err
	}

	mission.Status = domain.MissionActive
	mission.UpdatedAt = now
	return mission, nil
}

// applyBenchEffect declares the consultant status update that accompanies a
// mission ending: back to the bench unless another active mission remains.
// A terminated consultant is never revived.
func (uc *missionUsecase) applyBenchEffect(ctx context.Context, cs *domain.ChangeSet, ending *domain.Mission, now time.Time) error {
	consultant, err := uc.consultantRepo.GetByID(ctx, ending.ConsultantID)
	if err != nil {
		return apperror.Internal(fmt.Errorf("consultant %s: %w", ending.ConsultantID, err))
	}
	if consultant.Status == domain.ConsultantTerminated {
		return nil
	}

	others, err := uc.missionRepo.ListByConsultant(ctx, ending.ConsultantID)
	if err != nil {
		return apperror.Internal(err)
	}
	for _, m := range others {
		if m.ID != ending.ID && m.Status == domain.MissionActive {
			return nil
		}
	}

	cs.Update(domain.TableConsultants, ending.ConsultantID, "", map[string]any{
		"status":     domain.ConsultantBench,
		"updated_at": now,
	})
	return nil
}
