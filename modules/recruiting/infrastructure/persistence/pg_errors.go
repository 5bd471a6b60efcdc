package persistence

import (
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/stage"
)

// mapPgError translates constraint violations into domain errors so
// callers never match on Postgres error codes.
func mapPgError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return gerrors.Wrap(err, msg)
	}

	switch pgErr.Code {
	case "23503": // foreign_key_violation
		switch pgErr.ConstraintName {
		case "pipeline_positions_stage_id_fkey":
			return stage.ErrNotFound
		case "pipeline_positions_candidate_id_fkey", "assignment_log_candidate_id_fkey":
			return candidate.ErrNotFound
		}
	}
	return gerrors.Wrap(err, msg)
}
