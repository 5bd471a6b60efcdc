package candidate

import "github.com/google/uuid"

// Domain events published by the services strictly after their unit of
// work has committed. Payloads carry everything the broadcast layer
// needs so handlers never re-read state that may have moved on.

type AssignedEvent struct {
	TenantID    uuid.UUID
	CandidateID uuid.UUID
	RecruiterID uuid.UUID
	AssignedBy  uuid.UUID
	Reassigned  bool
	Reason      string
	Result      Candidate
}

type ReassignedEvent struct {
	TenantID            uuid.UUID
	CandidateID         uuid.UUID
	PreviousRecruiterID uuid.UUID
	NewRecruiterID      uuid.UUID
	Reason              string
	Result              Candidate
}

type UnassignedEvent struct {
	TenantID            uuid.UUID
	CandidateID         uuid.UUID
	PreviousRecruiterID uuid.UUID
	Reason              string
}

type MovedEvent struct {
	TenantID    uuid.UUID
	CandidateID uuid.UUID
	StageID     uuid.UUID
	MovedBy     uuid.UUID
	// OwnerID routes the broadcast: set when the candidate is owned,
	// empty when the move touched a pool candidate.
	OwnerID uuid.NullUUID
}

type BulkMovedEvent struct {
	TenantID     uuid.UUID
	CandidateIDs []uuid.UUID
	StageID      uuid.UUID
	MovedBy      uuid.UUID
}
