package candidate

import (
	"context"

	"github.com/google/uuid"
)

// FindParams filters the visibility list. Zero values mean "no filter".
type FindParams struct {
	StageID             uuid.UUID
	MinScore            int
	Location            string
	AssessmentCompleted *bool
	Limit               int
}

// Repository owns the exclusive ownership relation. The three owner
// mutations are conditional writes: the ownership precondition is part
// of the UPDATE itself, never a separate read, so concurrent callers
// race at the storage layer and exactly one wins.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	// GetVisible returns candidates the recruiter may see: the shared
	// unassigned pool plus their own assignments.
	GetVisible(ctx context.Context, recruiterID uuid.UUID, params *FindParams) ([]Visible, error)
	// AssignOwner claims an unassigned candidate. Re-assigning a
	// candidate already owned by recruiterID succeeds (idempotent).
	AssignOwner(ctx context.Context, candidateID, recruiterID uuid.UUID) (Candidate, error)
	// TransferOwner flips ownership from one recruiter to another.
	// Fails with ErrNotOwned unless `from` is the current owner.
	TransferOwner(ctx context.Context, candidateID, from, to uuid.UUID) (Candidate, error)
	// ReleaseOwner returns the candidate to the unassigned pool.
	ReleaseOwner(ctx context.Context, candidateID, recruiterID uuid.UUID) (Candidate, error)
}
