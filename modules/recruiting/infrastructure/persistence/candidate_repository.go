package persistence

import (
	"context"
	"errors"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/infrastructure/persistence/models"
	"github.com/talentflowhq/talentflow/pkg/composables"
	"github.com/talentflowhq/talentflow/pkg/configuration"
	"github.com/talentflowhq/talentflow/pkg/metrics"
	"github.com/talentflowhq/talentflow/pkg/repo"
)

const (
	candidateFindQuery = `
        SELECT
            c.id,
            c.tenant_id,
            c.recruiter_id,
            c.name,
            c.email,
            c.location,
            c.score,
            c.assessment_completed,
            c.created_at,
            c.assigned_at,
            c.updated_at
        FROM candidates c`

	candidateReturning = `
        RETURNING id, tenant_id, recruiter_id, name, email, location, score,
            assessment_completed, created_at, assigned_at, updated_at`

	// The ownership precondition is part of the UPDATE: under concurrent
	// assigns exactly one caller matches the row and the loser sees zero
	// rows affected instead of silently overwriting the winner.
	candidateAssignQuery = `
        UPDATE candidates
        SET recruiter_id = $1, assigned_at = NOW(), updated_at = NOW()
        WHERE id = $2 AND tenant_id = $3
            AND (recruiter_id IS NULL OR recruiter_id = $1)` + candidateReturning

	candidateTransferQuery = `
        UPDATE candidates
        SET recruiter_id = $1, assigned_at = NOW(), updated_at = NOW()
        WHERE id = $2 AND tenant_id = $3 AND recruiter_id = $4` + candidateReturning

	candidateReleaseQuery = `
        UPDATE candidates
        SET recruiter_id = NULL, assigned_at = NULL, updated_at = NOW()
        WHERE id = $1 AND tenant_id = $2 AND recruiter_id = $3` + candidateReturning
)

type PgCandidateRepository struct{}

func NewCandidateRepository() candidate.Repository {
	return &PgCandidateRepository{}
}

func (g *PgCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return candidate.Candidate{}, gerrors.Wrap(err, "failed to get tenant from context")
	}
	query := repo.Join(candidateFindQuery, "WHERE c.id = $1 AND c.tenant_id = $2")
	return g.queryOne(ctx, query, id, tenantID)
}

func (g *PgCandidateRepository) GetVisible(ctx context.Context, recruiterID uuid.UUID, params *candidate.FindParams) ([]candidate.Visible, error) {
	if params == nil {
		params = &candidate.FindParams{}
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to get tenant from context")
	}

	baseQuery := candidateFindQuery
	where := []string{
		"c.tenant_id = $1",
		"(c.recruiter_id IS NULL OR c.recruiter_id = $2)",
	}
	args := []interface{}{tenantID, recruiterID}

	if params.StageID != uuid.Nil {
		baseQuery += " JOIN pipeline_positions pp ON pp.candidate_id = c.id"
		where = append(where, fmt.Sprintf("pp.stage_id = $%d", len(args)+1))
		args = append(args, params.StageID)
	}
	if params.MinScore > 0 {
		where = append(where, fmt.Sprintf("c.score >= $%d", len(args)+1))
		args = append(args, params.MinScore)
	}
	if params.Location != "" {
		where = append(where, fmt.Sprintf("c.location ILIKE $%d", len(args)+1))
		args = append(args, "%"+params.Location+"%")
	}
	if params.AssessmentCompleted != nil {
		where = append(where, fmt.Sprintf("c.assessment_completed = $%d", len(args)+1))
		args = append(args, *params.AssessmentCompleted)
	}

	query := repo.Join(
		baseQuery,
		repo.JoinWhere(where...),
		"ORDER BY c.created_at DESC",
		repo.FormatLimitOffset(capLimit(params.Limit), 0),
	)

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list visible candidates")
	}
	defer rows.Close()

	out := make([]candidate.Visible, 0)
	for rows.Next() {
		row, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, candidate.Visibility(toDomainCandidate(row), recruiterID))
	}
	return out, rows.Err()
}

func (g *PgCandidateRepository) AssignOwner(ctx context.Context, candidateID, recruiterID uuid.UUID) (candidate.Candidate, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return candidate.Candidate{}, gerrors.Wrap(err, "failed to get tenant from context")
	}
	entity, err := g.queryOne(ctx, candidateAssignQuery, recruiterID, candidateID, tenantID)
	if errors.Is(err, candidate.ErrNotFound) {
		return candidate.Candidate{}, g.conflictOrNotFound(ctx, "assign", candidateID)
	}
	return entity, err
}

func (g *PgCandidateRepository) TransferOwner(ctx context.Context, candidateID, from, to uuid.UUID) (candidate.Candidate, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return candidate.Candidate{}, gerrors.Wrap(err, "failed to get tenant from context")
	}
	entity, err := g.queryOne(ctx, candidateTransferQuery, to, candidateID, tenantID, from)
	if errors.Is(err, candidate.ErrNotFound) {
		return candidate.Candidate{}, g.ownershipViolation(ctx, "reassign", candidateID)
	}
	return entity, err
}

func (g *PgCandidateRepository) ReleaseOwner(ctx context.Context, candidateID, recruiterID uuid.UUID) (candidate.Candidate, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return candidate.Candidate{}, gerrors.Wrap(err, "failed to get tenant from context")
	}
	entity, err := g.queryOne(ctx, candidateReleaseQuery, candidateID, tenantID, recruiterID)
	if errors.Is(err, candidate.ErrNotFound) {
		return candidate.Candidate{}, g.ownershipViolation(ctx, "unassign", candidateID)
	}
	return entity, err
}

// conflictOrNotFound disambiguates a zero-row conditional assign: the
// candidate is either absent (or cross-tenant, reported identically) or
// already owned by someone else.
func (g *PgCandidateRepository) conflictOrNotFound(ctx context.Context, operation string, candidateID uuid.UUID) error {
	if _, err := g.GetByID(ctx, candidateID); err != nil {
		return err
	}
	metrics.RecordAssignmentConflict(operation)
	return candidate.ErrAlreadyAssigned
}

// ownershipViolation disambiguates a zero-row transfer or release: the
// candidate is absent, or held by someone other than the expected owner.
func (g *PgCandidateRepository) ownershipViolation(ctx context.Context, operation string, candidateID uuid.UUID) error {
	if _, err := g.GetByID(ctx, candidateID); err != nil {
		return err
	}
	metrics.RecordAssignmentConflict(operation)
	return candidate.ErrNotOwned
}

func (g *PgCandidateRepository) queryOne(ctx context.Context, query string, args ...interface{}) (candidate.Candidate, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return candidate.Candidate{}, err
	}
	row, err := scanCandidate(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	return toDomainCandidate(row), nil
}

func scanCandidate(row pgx.Row) (models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.RecruiterID,
		&c.Name,
		&c.Email,
		&c.Location,
		&c.Score,
		&c.AssessmentCompleted,
		&c.CreatedAt,
		&c.AssignedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func capLimit(limit int) int {
	maxPageSize := configuration.Use().MaxPageSize
	if limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
