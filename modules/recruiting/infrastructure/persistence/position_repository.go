package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/position"
	"github.com/talentflowhq/talentflow/modules/recruiting/infrastructure/persistence/models"
	"github.com/talentflowhq/talentflow/pkg/composables"
)

const (
	// Insert-or-overwrite of the single current-position row. Sourcing
	// the row from a tenant-scoped candidates lookup keeps cross-tenant
	// candidate ids from ever landing a position.
	positionUpsertQuery = `
        INSERT INTO pipeline_positions (candidate_id, stage_id, moved_by, moved_at, notes)
        SELECT c.id, $2, $3, NOW(), $4
        FROM candidates c
        WHERE c.id = $1 AND c.tenant_id = $5
        ON CONFLICT (candidate_id) DO UPDATE
        SET stage_id = EXCLUDED.stage_id,
            moved_by = EXCLUDED.moved_by,
            moved_at = EXCLUDED.moved_at,
            notes = EXCLUDED.notes`

	positionGetQuery = `
        SELECT pp.candidate_id, pp.stage_id, pp.moved_by, pp.moved_at, pp.notes
        FROM pipeline_positions pp
        JOIN candidates c ON c.id = pp.candidate_id
        WHERE pp.candidate_id = $1 AND c.tenant_id = $2`

	pipelineEntriesQuery = `
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
            c.updated_at,
            pp.candidate_id,
            pp.stage_id,
            pp.moved_by,
            pp.moved_at,
            pp.notes,
            COALESCE(ca.status, ''),
            COALESCE(ca.completion_percentage, 0),
            COALESCE(ca.cultural_fit_score, 0),
            COALESCE(ca.top_strength, '')
        FROM pipeline_positions pp
        JOIN candidates c ON c.id = pp.candidate_id
        LEFT JOIN candidate_assessments ca ON ca.candidate_id = c.id
        WHERE c.tenant_id = $1 AND (c.recruiter_id IS NULL OR c.recruiter_id = $2)
        ORDER BY pp.moved_at DESC`
)

type PgPositionRepository struct{}

func NewPositionRepository() position.Repository {
	return &PgPositionRepository{}
}

func (g *PgPositionRepository) Upsert(ctx context.Context, pos position.Position) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return gerrors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, positionUpsertQuery, pos.CandidateID, pos.StageID, pos.MovedBy, pos.Notes, tenantID)
	if err != nil {
		return mapPgError(err, "failed to upsert pipeline position")
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (g *PgPositionRepository) GetByCandidateID(ctx context.Context, candidateID uuid.UUID) (position.Position, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return position.Position{}, gerrors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return position.Position{}, err
	}

	var row models.PipelinePosition
	err = tx.QueryRow(ctx, positionGetQuery, candidateID, tenantID).
		Scan(&row.CandidateID, &row.StageID, &row.MovedBy, &row.MovedAt, &row.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrNotInPipeline
		}
		return position.Position{}, err
	}
	return toDomainPosition(row), nil
}

func (g *PgPositionRepository) GetPipelineEntries(ctx context.Context, recruiterID uuid.UUID) ([]position.ViewEntry, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, pipelineEntriesQuery, tenantID, recruiterID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to load pipeline entries")
	}
	defer rows.Close()

	out := make([]position.ViewEntry, 0)
	for rows.Next() {
		var (
			c  models.Candidate
			p  models.PipelinePosition
			ca models.CandidateAssessment
		)
		err := rows.Scan(
			&c.ID, &c.TenantID, &c.RecruiterID, &c.Name, &c.Email, &c.Location,
			&c.Score, &c.AssessmentCompleted, &c.CreatedAt, &c.AssignedAt, &c.UpdatedAt,
			&p.CandidateID, &p.StageID, &p.MovedBy, &p.MovedAt, &p.Notes,
			&ca.Status, &ca.CompletionPercentage, &ca.CulturalFitScore, &ca.TopStrength,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, position.ViewEntry{
			Candidate:  candidate.Visibility(toDomainCandidate(c), recruiterID),
			Position:   toDomainPosition(p),
			Assessment: toDomainAssessment(ca),
		})
	}
	return out, rows.Err()
}
