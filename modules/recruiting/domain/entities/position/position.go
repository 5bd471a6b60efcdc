package position

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
)

// Position is a candidate's current stage pointer: exactly zero or one
// row per candidate, overwritten on every move. A candidate with no row
// is not yet in the pipeline.
type Position struct {
	CandidateID uuid.UUID
	StageID     uuid.UUID
	MovedBy     uuid.UUID
	MovedAt     time.Time
	Notes       string
}

// AssessmentSummary is consumed from an external scoring collaborator;
// this core never computes or mutates it.
type AssessmentSummary struct {
	Status               string
	CompletionPercentage int
	CulturalFitScore     int
	TopStrength          string
}

// ViewEntry is one candidate card on the kanban board.
type ViewEntry struct {
	Candidate  candidate.Visible
	Position   Position
	Assessment AssessmentSummary
}

type Repository interface {
	// Upsert writes the candidate's current position, inserting or
	// overwriting the single row. The candidate must belong to the
	// caller's organization or the write affects nothing.
	Upsert(ctx context.Context, pos Position) error
	// GetByCandidateID returns the current position, or ErrNotInPipeline.
	GetByCandidateID(ctx context.Context, candidateID uuid.UUID) (Position, error)
	// GetPipelineEntries returns every positioned candidate visible to
	// the recruiter, most recently moved first, joined with the
	// assessment summary.
	GetPipelineEntries(ctx context.Context, recruiterID uuid.UUID) ([]ViewEntry, error)
}
