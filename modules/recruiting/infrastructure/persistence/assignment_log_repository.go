package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/assignmentlog"
	"github.com/talentflowhq/talentflow/modules/recruiting/infrastructure/persistence/models"
	"github.com/talentflowhq/talentflow/pkg/composables"
)

const (
	logAppendQuery = `
        INSERT INTO assignment_log
            (tenant_id, candidate_id, recruiter_id, previous_recruiter_id, action, reason, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())`

	logByCandidateQuery = `
        SELECT
            l.id,
            l.tenant_id,
            l.candidate_id,
            l.recruiter_id,
            l.previous_recruiter_id,
            l.action,
            l.reason,
            l.created_at
        FROM assignment_log l
        WHERE l.candidate_id = $1 AND l.tenant_id = $2
        ORDER BY l.created_at DESC, l.id DESC`
)

// PgAssignmentLogRepository only ever inserts and reads; the table has
// no UPDATE or DELETE path anywhere in the codebase.
type PgAssignmentLogRepository struct{}

func NewAssignmentLogRepository() assignmentlog.Repository {
	return &PgAssignmentLogRepository{}
}

func (g *PgAssignmentLogRepository) Append(ctx context.Context, entry assignmentlog.Entry) error {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return gerrors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, logAppendQuery,
		tenantID,
		entry.CandidateID,
		entry.RecruiterID,
		entry.PreviousRecruiterID,
		string(entry.Action),
		entry.Reason,
	)
	if err != nil {
		return mapPgError(err, "failed to append assignment log entry")
	}
	return nil
}

func (g *PgAssignmentLogRepository) GetByCandidateID(ctx context.Context, candidateID uuid.UUID) ([]assignmentlog.Entry, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, logByCandidateQuery, candidateID, tenantID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to load assignment history")
	}
	defer rows.Close()

	out := make([]assignmentlog.Entry, 0)
	for rows.Next() {
		var row models.AssignmentLogEntry
		err := rows.Scan(
			&row.ID,
			&row.TenantID,
			&row.CandidateID,
			&row.RecruiterID,
			&row.PreviousRecruiterID,
			&row.Action,
			&row.Reason,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, toDomainLogEntry(row))
	}
	return out, rows.Err()
}
