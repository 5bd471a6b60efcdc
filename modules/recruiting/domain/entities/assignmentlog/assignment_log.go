package assignmentlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionAssigned   Action = "assigned"
	ActionReassigned Action = "reassigned"
	ActionUnassigned Action = "unassigned"
)

// Entry is one append-only audit record. Entries are never mutated,
// never deleted, and never consulted for authorization decisions.
type Entry struct {
	ID                  int64
	TenantID            uuid.UUID
	CandidateID         uuid.UUID
	RecruiterID         uuid.NullUUID
	PreviousRecruiterID uuid.NullUUID
	Action              Action
	Reason              string
	CreatedAt           time.Time
}

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	// GetByCandidateID returns the candidate's audit trail, newest first.
	GetByCandidateID(ctx context.Context, candidateID uuid.UUID) ([]Entry, error)
}
