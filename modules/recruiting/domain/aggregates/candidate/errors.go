package candidate

import "github.com/talentflowhq/talentflow/pkg/serrors"

// Cross-tenant lookups intentionally report ErrNotFound so existence
// never leaks across organizations.
var (
	ErrNotFound        = serrors.NewError("CANDIDATE_NOT_FOUND", "Candidate not found", "")
	ErrAlreadyAssigned = serrors.NewError("ALREADY_ASSIGNED", "Candidate is already assigned to another recruiter", "")
	ErrNotOwned        = serrors.NewError("NOT_OWNED", "Candidate is not assigned to the caller", "")
)
