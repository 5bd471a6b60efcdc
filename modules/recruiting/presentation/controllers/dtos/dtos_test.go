package dtos_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/controllers/dtos"
)

func TestMoveDTO_Validation(t *testing.T) {
	valid := dtos.MoveDTO{CandidateID: uuid.New(), StageID: uuid.New(), Notes: "intro call done"}
	require.NoError(t, valid.Ok())

	missingCandidate := dtos.MoveDTO{StageID: uuid.New()}
	require.Error(t, missingCandidate.Ok())

	missingStage := dtos.MoveDTO{CandidateID: uuid.New()}
	require.Error(t, missingStage.Ok())
}

func TestBulkMoveDTO_Validation(t *testing.T) {
	valid := dtos.BulkMoveDTO{CandidateIDs: []uuid.UUID{uuid.New()}, StageID: uuid.New()}
	require.NoError(t, valid.Ok())

	empty := dtos.BulkMoveDTO{CandidateIDs: []uuid.UUID{}, StageID: uuid.New()}
	require.Error(t, empty.Ok())

	withNilID := dtos.BulkMoveDTO{CandidateIDs: []uuid.UUID{uuid.Nil}, StageID: uuid.New()}
	require.Error(t, withNilID.Ok())
}

func TestReassignDTO_Validation(t *testing.T) {
	valid := dtos.ReassignDTO{ToRecruiterID: uuid.New(), Reason: "workload"}
	require.NoError(t, valid.Ok())

	missing := dtos.ReassignDTO{Reason: "workload"}
	require.Error(t, missing.Ok())
}

func TestBulkAssignDTO_Validation(t *testing.T) {
	valid := dtos.BulkAssignDTO{CandidateIDs: []uuid.UUID{uuid.New(), uuid.New()}}
	require.NoError(t, valid.Ok())

	var missing dtos.BulkAssignDTO
	require.Error(t, missing.Ok())
}
