package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/entities/stage"
	"github.com/talentflowhq/talentflow/modules/recruiting/infrastructure/persistence/models"
	"github.com/talentflowhq/talentflow/pkg/composables"
)

const (
	stageFindQuery = `
        SELECT
            s.id,
            s.tenant_id,
            s.name,
            s.order_position,
            s.color,
            s.created_at
        FROM pipeline_stages s`

	// order_position is unique per tenant, so this ordering is total.
	stageGetAllQuery  = stageFindQuery + ` WHERE s.tenant_id = $1 ORDER BY s.order_position ASC`
	stageGetByIDQuery = stageFindQuery + ` WHERE s.id = $1 AND s.tenant_id = $2`
)

type PgStageRepository struct{}

func NewStageRepository() stage.Repository {
	return &PgStageRepository{}
}

func (g *PgStageRepository) GetAll(ctx context.Context) ([]stage.Stage, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, stageGetAllQuery, tenantID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list pipeline stages")
	}
	defer rows.Close()

	out := make([]stage.Stage, 0)
	for rows.Next() {
		var row models.PipelineStage
		if err := rows.Scan(&row.ID, &row.TenantID, &row.Name, &row.OrderPosition, &row.Color, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, toDomainStage(row))
	}
	return out, rows.Err()
}

func (g *PgStageRepository) GetByID(ctx context.Context, id uuid.UUID) (stage.Stage, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return stage.Stage{}, gerrors.Wrap(err, "failed to get tenant from context")
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return stage.Stage{}, err
	}

	var row models.PipelineStage
	err = tx.QueryRow(ctx, stageGetByIDQuery, id, tenantID).
		Scan(&row.ID, &row.TenantID, &row.Name, &row.OrderPosition, &row.Color, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return stage.Stage{}, stage.ErrNotFound
		}
		return stage.Stage{}, err
	}
	return toDomainStage(row), nil
}
