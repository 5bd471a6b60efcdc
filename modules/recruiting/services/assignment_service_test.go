package services_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/assignmentlog"
)

func TestAssign_Exclusivity(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	entity, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)
	require.True(t, entity.IsOwnedBy(f.recruiterOne))
	require.NotNil(t, entity.AssignedAt())

	_, err = f.assignments.Assign(f.env.Ctx(f.recruiterTwo), candidateID)
	require.ErrorIs(t, err, candidate.ErrAlreadyAssigned)

	// The loser must not have overwritten the winner.
	history, err := f.assignments.History(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, assignmentlog.ActionAssigned, history[0].Action)
	require.Equal(t, f.recruiterOne, history[0].RecruiterID.UUID)
	require.Empty(t, history[0].Reason)
}

func TestAssign_ConcurrentExclusivity(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	// Two recruiters race for the same pool candidate in parallel
	// transactions; the conditional UPDATE must admit exactly one.
	recruiters := []uuid.UUID{f.recruiterOne, f.recruiterTwo}
	errs := make([]error, len(recruiters))
	var wg sync.WaitGroup
	for i, recruiterID := range recruiters {
		wg.Add(1)
		go func(i int, recruiterID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = f.assignments.Assign(f.env.Ctx(recruiterID), candidateID)
		}(i, recruiterID)
	}
	wg.Wait()

	var winner uuid.NullUUID
	for i, err := range errs {
		if err == nil {
			require.False(t, winner.Valid, "both assigns succeeded")
			winner = uuid.NullUUID{UUID: recruiters[i], Valid: true}
			continue
		}
		require.ErrorIs(t, err, candidate.ErrAlreadyAssigned)
	}
	require.True(t, winner.Valid, "neither assign succeeded")

	// The loser's rolled-back claim leaves no trace in the audit trail.
	history, err := f.assignments.History(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, assignmentlog.ActionAssigned, history[0].Action)
	require.Equal(t, winner.UUID, history[0].RecruiterID.UUID)
}

func TestAssign_IdempotentSelfAssign(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})
	ctx := f.env.Ctx(f.recruiterOne)

	_, err := f.assignments.Assign(ctx, candidateID)
	require.NoError(t, err)
	entity, err := f.assignments.Assign(ctx, candidateID)
	require.NoError(t, err)
	require.True(t, entity.IsOwnedBy(f.recruiterOne))

	history, err := f.assignments.History(ctx, candidateID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestAssign_PublishesEventAfterCommit(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	var events []candidate.AssignedEvent
	f.env.EventBus.Subscribe(func(event candidate.AssignedEvent) {
		events = append(events, event)
	})

	_, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, candidateID, events[0].CandidateID)
	require.Equal(t, f.recruiterOne, events[0].RecruiterID)
	require.Equal(t, f.env.TenantID, events[0].TenantID)

	// A failed assign never publishes.
	_, err = f.assignments.Assign(f.env.Ctx(f.recruiterTwo), candidateID)
	require.Error(t, err)
	require.Len(t, events, 1)
}

func TestAssign_NotFound(t *testing.T) {
	f := setup(t)

	_, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), uuid.New())
	require.ErrorIs(t, err, candidate.ErrNotFound)
}

func TestReassign_FlipsOwnerAndLogs(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	_, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)

	entity, err := f.assignments.Reassign(f.env.Ctx(f.recruiterOne), candidateID, f.recruiterTwo, "workload")
	require.NoError(t, err)
	require.True(t, entity.IsOwnedBy(f.recruiterTwo))

	history, err := f.assignments.History(f.env.Ctx(f.recruiterTwo), candidateID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, assignmentlog.ActionReassigned, history[0].Action)
	require.Equal(t, f.recruiterTwo, history[0].RecruiterID.UUID)
	require.Equal(t, f.recruiterOne, history[0].PreviousRecruiterID.UUID)
	require.Equal(t, "workload", history[0].Reason)
}

func TestReassign_RejectsNonOwner(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	_, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)

	// recruiterTwo does not own the candidate, so they cannot hand it on.
	_, err = f.assignments.Reassign(f.env.Ctx(f.recruiterTwo), candidateID, f.recruiterTwo, "")
	require.ErrorIs(t, err, candidate.ErrNotOwned)

	// Unassigned candidates cannot be reassigned either.
	unowned := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})
	_, err = f.assignments.Reassign(f.env.Ctx(f.recruiterOne), unowned, f.recruiterTwo, "")
	require.ErrorIs(t, err, candidate.ErrNotOwned)
}

func TestUnassign_ReturnsToPool(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	_, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)

	var poolEvents []candidate.UnassignedEvent
	f.env.EventBus.Subscribe(func(event candidate.UnassignedEvent) {
		poolEvents = append(poolEvents, event)
	})

	entity, err := f.assignments.Unassign(f.env.Ctx(f.recruiterOne), candidateID, "left team")
	require.NoError(t, err)
	require.False(t, entity.IsAssigned())
	require.Nil(t, entity.AssignedAt())
	require.Len(t, poolEvents, 1)

	// Back in the pool: recruiterTwo can claim it now.
	_, err = f.assignments.Assign(f.env.Ctx(f.recruiterTwo), candidateID)
	require.NoError(t, err)
}

func TestUnassign_RejectsNonOwner(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	_, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)

	_, err = f.assignments.Unassign(f.env.Ctx(f.recruiterTwo), candidateID, "")
	require.ErrorIs(t, err, candidate.ErrNotOwned)
}

func TestBulkAssign_PartialSuccess(t *testing.T) {
	f := setup(t)
	free := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})
	taken := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{UUID: f.recruiterTwo, Valid: true})

	result, err := f.assignments.BulkAssign(f.env.Ctx(f.recruiterOne), []uuid.UUID{free, taken})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 1, result.Successful)
	require.Equal(t, 1, result.Failed)
	require.Len(t, result.Items, 2)
	require.True(t, result.Items[0].Success)
	require.False(t, result.Items[1].Success)
	require.NotEmpty(t, result.Items[1].Error)

	// The taken candidate is untouched.
	visible, err := f.assignments.ListVisibleCandidates(f.env.Ctx(f.recruiterTwo), nil)
	require.NoError(t, err)
	var found bool
	for _, v := range visible {
		if v.Candidate.ID() == taken {
			found = true
			require.True(t, v.Candidate.IsOwnedBy(f.recruiterTwo))
		}
	}
	require.True(t, found)
}

func TestTenantIsolation(t *testing.T) {
	f := setup(t)
	otherTenant := f.env.CreateTenant(t)
	otherRecruiter := f.env.CreateRecruiter(t, otherTenant)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	outsiderCtx := f.env.CtxForTenant(otherRecruiter, otherTenant)

	// Reads and writes across tenants both report "not found".
	_, err := f.assignments.Assign(outsiderCtx, candidateID)
	require.ErrorIs(t, err, candidate.ErrNotFound)
	_, err = f.assignments.History(outsiderCtx, candidateID)
	require.ErrorIs(t, err, candidate.ErrNotFound)

	visible, err := f.assignments.ListVisibleCandidates(outsiderCtx, nil)
	require.NoError(t, err)
	for _, v := range visible {
		require.NotEqual(t, candidateID, v.Candidate.ID())
	}
}

func TestPoolVisibility(t *testing.T) {
	f := setup(t)
	candidateID := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	seenBy := func(recruiterID uuid.UUID) (bool, candidate.Visible) {
		visible, err := f.assignments.ListVisibleCandidates(f.env.Ctx(recruiterID), nil)
		require.NoError(t, err)
		for _, v := range visible {
			if v.Candidate.ID() == candidateID {
				return true, v
			}
		}
		return false, candidate.Visible{}
	}

	// Unassigned: both recruiters see it with canAssign set.
	ok, v := seenBy(f.recruiterOne)
	require.True(t, ok)
	require.True(t, v.CanAssign)
	ok, _ = seenBy(f.recruiterTwo)
	require.True(t, ok)

	_, err := f.assignments.Assign(f.env.Ctx(f.recruiterOne), candidateID)
	require.NoError(t, err)

	// Assigned: only the owner sees it.
	ok, v = seenBy(f.recruiterOne)
	require.True(t, ok)
	require.True(t, v.IsMyCandidate)
	require.True(t, v.CanReassign)
	require.False(t, v.CanAssign)
	ok, _ = seenBy(f.recruiterTwo)
	require.False(t, ok)
}

func TestListVisibleCandidates_Filters(t *testing.T) {
	f := setup(t)
	ctx := f.env.Ctx(f.recruiterOne)

	matching := f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})
	f.env.CreateCandidate(t, f.env.TenantID, uuid.NullUUID{})

	stageID := f.env.CreateStage(t, f.env.TenantID, "Screening", 1)
	require.NoError(t, f.pipeline.MoveCandidate(ctx, matching, stageID, ""))

	visible, err := f.assignments.ListVisibleCandidates(ctx, &candidate.FindParams{StageID: stageID})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, matching, visible[0].Candidate.ID())

	visible, err = f.assignments.ListVisibleCandidates(ctx, &candidate.FindParams{MinScore: 90})
	require.NoError(t, err)
	require.Empty(t, visible)

	visible, err = f.assignments.ListVisibleCandidates(ctx, &candidate.FindParams{Location: "remo"})
	require.NoError(t, err)
	require.Len(t, visible, 2)
}
