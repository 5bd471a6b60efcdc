package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/position"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/stage"
	"github.com/talentflowhq/talentflow/pkg/composables"
	"github.com/talentflowhq/talentflow/pkg/eventbus"
)

// StageColumn is one kanban column with its visible candidates, most
// recently moved first.
type StageColumn struct {
	Stage      stage.Stage
	Candidates []position.ViewEntry
}

type PipelineView struct {
	Stages []StageColumn
}

// PipelineService orchestrates stage reads and position writes. A
// recruiter may move candidates they own or unassigned pool candidates;
// any stage is reachable from any stage.
type PipelineService struct {
	candidates candidate.Repository
	stages     stage.Repository
	positions  position.Repository
	publisher  eventbus.EventBus
}

func NewPipelineService(
	candidates candidate.Repository,
	stages stage.Repository,
	positions position.Repository,
	publisher eventbus.EventBus,
) *PipelineService {
	return &PipelineService{
		candidates: candidates,
		stages:     stages,
		positions:  positions,
		publisher:  publisher,
	}
}

func (s *PipelineService) ListStages(ctx context.Context) ([]stage.Stage, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]stage.Stage, error) {
		return s.stages.GetAll(txCtx)
	})
}

// GetPipelineView composes the stage registry, visibility rules and
// position store into the board the caller may see.
func (s *PipelineService) GetPipelineView(ctx context.Context) (PipelineView, error) {
	recruiter, err := composables.UseRecruiter(ctx)
	if err != nil {
		return PipelineView{}, err
	}

	return composables.InTxResult(ctx, func(txCtx context.Context) (PipelineView, error) {
		stages, err := s.stages.GetAll(txCtx)
		if err != nil {
			return PipelineView{}, err
		}
		entries, err := s.positions.GetPipelineEntries(txCtx, recruiter.ID)
		if err != nil {
			return PipelineView{}, err
		}

		byStage := make(map[uuid.UUID][]position.ViewEntry, len(stages))
		for _, entry := range entries {
			byStage[entry.Position.StageID] = append(byStage[entry.Position.StageID], entry)
		}

		view := PipelineView{Stages: make([]StageColumn, 0, len(stages))}
		for _, st := range stages {
			candidates := byStage[st.ID()]
			if candidates == nil {
				candidates = make([]position.ViewEntry, 0)
			}
			view.Stages = append(view.Stages, StageColumn{Stage: st, Candidates: candidates})
		}
		return view, nil
	})
}

// MoveCandidate upserts the candidate's current position. Concurrent
// moves on the same candidate are last-write-wins snapshots.
func (s *PipelineService) MoveCandidate(ctx context.Context, candidateID, stageID uuid.UUID, notes string) error {
	recruiter, err := composables.UseRecruiter(ctx)
	if err != nil {
		return err
	}

	var owner uuid.NullUUID
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		entity, err := s.moveOne(txCtx, recruiter.ID, candidateID, stageID, notes)
		if err != nil {
			return err
		}
		owner = entity.RecruiterID()
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(candidate.MovedEvent{
		TenantID:    recruiter.TenantID,
		CandidateID: candidateID,
		StageID:     stageID,
		MovedBy:     recruiter.ID,
		OwnerID:     owner,
	})
	return nil
}

// BulkMoveCandidates moves every candidate or none: a single failure
// (unknown stage, unknown candidate, ownership violation) rolls back
// the whole batch.
func (s *PipelineService) BulkMoveCandidates(ctx context.Context, candidateIDs []uuid.UUID, stageID uuid.UUID) (int, error) {
	recruiter, err := composables.UseRecruiter(ctx)
	if err != nil {
		return 0, err
	}

	err = composables.InTx(ctx, func(txCtx context.Context) error {
		for _, id := range candidateIDs {
			if _, err := s.moveOne(txCtx, recruiter.ID, id, stageID, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publisher.Publish(candidate.BulkMovedEvent{
		TenantID:     recruiter.TenantID,
		CandidateIDs: candidateIDs,
		StageID:      stageID,
		MovedBy:      recruiter.ID,
	})
	return len(candidateIDs), nil
}

// moveOne enforces the coordinator-level ownership rule: the mover must
// own the candidate or be claiming a pool candidate's position.
func (s *PipelineService) moveOne(txCtx context.Context, moverID, candidateID, stageID uuid.UUID, notes string) (candidate.Candidate, error) {
	entity, err := s.candidates.GetByID(txCtx, candidateID)
	if err != nil {
		return candidate.Candidate{}, err
	}
	if entity.IsAssigned() && !entity.IsOwnedBy(moverID) {
		return candidate.Candidate{}, candidate.ErrNotOwned
	}
	err = s.positions.Upsert(txCtx, position.Position{
		CandidateID: candidateID,
		StageID:     stageID,
		MovedBy:     moverID,
		Notes:       notes,
	})
	if err != nil {
		return candidate.Candidate{}, err
	}
	return entity, nil
}
