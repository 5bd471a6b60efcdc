package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/assignmentlog"
	"github.com/talentflowhq/talentflow/pkg/composables"
	"github.com/talentflowhq/talentflow/pkg/eventbus"
)

// AssignmentService orchestrates the exclusive ownership operations.
// Every mutation runs in its own transaction; events go out strictly
// after commit so subscribers never hear about rolled-back work.
type AssignmentService struct {
	candidates candidate.Repository
	log        assignmentlog.Repository
	publisher  eventbus.EventBus
}

func NewAssignmentService(
	candidates candidate.Repository,
	log assignmentlog.Repository,
	publisher eventbus.EventBus,
) *AssignmentService {
	return &AssignmentService{
		candidates: candidates,
		log:        log,
		publisher:  publisher,
	}
}

func (s *AssignmentService) ListVisibleCandidates(ctx context.Context, params *candidate.FindParams) ([]candidate.Visible, error) {
	recruiter, err := composables.UseRecruiter(ctx)
	if err != nil {
		return nil, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]candidate.Visible, error) {
		return s.candidates.GetVisible(txCtx, recruiter.ID, params)
	})
}

// Assign claims an unassigned candidate for the caller. Claiming a
// candidate the caller already owns succeeds and is logged again.
func (s *AssignmentService) Assign(ctx context.Context, candidateID uuid.UUID) (candidate.Candidate, error) {
	recruiter, err := composables.UseRecruiter(ctx)
	if err != nil {
		return candidate.Candidate{}, err
	}

	entity, err := composables.InTxResult(ctx, func(txCtx context.Context) (candidate.Candidate, error) {
		entity, err := s.candidates.AssignOwner(txCtx, candidateID, recruiter.ID)
		if err != nil {
			return candidate.Candidate{}, err
		}
		err = s.log.Append(txCtx, assignmentlog.Entry{
			CandidateID: candidateID,
			RecruiterID: uuid.NullUUID{UUID: recruiter.ID, Valid: true},
			Action:      assignmentlog.ActionAssigned,
		})
		return entity, err
	})
	if err != nil {
		return candidate.Candidate{}, err
	}

	s.publisher.Publish(candidate.AssignedEvent{
		TenantID:    recruiter.TenantID,
		CandidateID: candidateID,
		RecruiterID: recruiter.ID,
		AssignedBy:  recruiter.ID,
		Result:      entity,
	})
	return entity, nil
}

// Reassign hands the caller's candidate to another recruiter.
func (s *AssignmentService) Reassign(ctx context.Context, candidateID, toRecruiterID uuid.UUID, reason string) (candidate.Candidate, error) {
	recruiter, err := composables.UseRecruiter(ctx)
	if err != nil {
		return candidate.Candidate{}, err
	}

	entity, err := composables.InTxResult(ctx, func(txCtx context.Context) (candidate.Candidate, error) {
		entity, err := s.candidates.TransferOwner(txCtx, candidateID, recruiter.ID, toRecruiterID)
		if err != nil {
			return candidate.Candidate{}, err
		}
		err = s.log.Append(txCtx, assignmentlog.Entry{
			CandidateID:         candidateID,
			RecruiterID:         uuid.NullUUID{UUID: toRecruiterID, Valid: true},
			PreviousRecruiterID: uuid.NullUUID{UUID: recruiter.ID, Valid: true},
			Action:              assignmentlog.ActionReassigned,
			Reason:              reason,
		})
		return entity, err
	})
	if err != nil {
		return candidate.Candidate{}, err
	}

	s.publisher.Publish(candidate.ReassignedEvent{
		TenantID:            recruiter.TenantID,
		CandidateID:         candidateID,
		PreviousRecruiterID: recruiter.ID,
		NewRecruiterID:      toRecruiterID,
		Reason:              reason,
		Result:              entity,
	})
	return entity, nil
}

// Unassign returns the caller's candidate to the unassigned pool.
func (s *AssignmentService) Unassign(ctx context.Context, candidateID uuid.UUID, reason string) (candidate.Candidate, error) {
	recruiter, err := composables.UseRecruiter(ctx)
	if err != nil {
		return candidate.Candidate{}, err
	}

	entity, err := composables.InTxResult(ctx, func(txCtx context.Context) (candidate.Candidate, error) {
		entity, err := s.candidates.ReleaseOwner(txCtx, candidateID, recruiter.ID)
		if err != nil {
			return candidate.Candidate{}, err
		}
		err = s.log.Append(txCtx, assignmentlog.Entry{
			CandidateID:         candidateID,
			PreviousRecruiterID: uuid.NullUUID{UUID: recruiter.ID, Valid: true},
			Action:              assignmentlog.ActionUnassigned,
			Reason:              reason,
		})
		return entity, err
	})
	if err != nil {
		return candidate.Candidate{}, err
	}

	s.publisher.Publish(candidate.UnassignedEvent{
		TenantID:            recruiter.TenantID,
		CandidateID:         candidateID,
		PreviousRecruiterID: recruiter.ID,
		Reason:              reason,
	})
	return entity, nil
}

type BulkAssignItem struct {
	CandidateID uuid.UUID `json:"candidateId"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
}

type BulkAssignResult struct {
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Items      []BulkAssignItem `json:"items"`
}

// BulkAssign claims each candidate independently: one candidate being
// owned elsewhere does not abort the rest. This is deliberately weaker
// than BulkMoveCandidates, which is all-or-nothing.
func (s *AssignmentService) BulkAssign(ctx context.Context, candidateIDs []uuid.UUID) (BulkAssignResult, error) {
	if _, err := composables.UseRecruiter(ctx); err != nil {
		return BulkAssignResult{}, err
	}

	result := BulkAssignResult{
		Total: len(candidateIDs),
		Items: make([]BulkAssignItem, 0, len(candidateIDs)),
	}
	for _, id := range candidateIDs {
		item := BulkAssignItem{CandidateID: id}
		if _, err := s.Assign(ctx, id); err != nil {
			item.Error = err.Error()
			result.Failed++
		} else {
			item.Success = true
			result.Successful++
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

// History returns the candidate's assignment audit trail, newest first.
func (s *AssignmentService) History(ctx context.Context, candidateID uuid.UUID) ([]assignmentlog.Entry, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]assignmentlog.Entry, error) {
		if _, err := s.candidates.GetByID(txCtx, candidateID); err != nil {
			return nil, err
		}
		return s.log.GetByCandidateID(txCtx, candidateID)
	})
}
