package stage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/pkg/serrors"
)

var ErrNotFound = serrors.NewError("STAGE_NOT_FOUND", "Pipeline stage not found", "")

// Stage is one ordered kanban column. Stages are seeded at setup time;
// this core only reads them.
type Stage struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	name          string
	orderPosition int
	color         string
	createdAt     time.Time
}

func Hydrate(id, tenantID uuid.UUID, name string, orderPosition int, color string, createdAt time.Time) Stage {
	return Stage{
		id:            id,
		tenantID:      tenantID,
		name:          name,
		orderPosition: orderPosition,
		color:         color,
		createdAt:     createdAt,
	}
}

func (s Stage) ID() uuid.UUID        { return s.id }
func (s Stage) TenantID() uuid.UUID  { return s.tenantID }
func (s Stage) Name() string         { return s.name }
func (s Stage) OrderPosition() int   { return s.orderPosition }
func (s Stage) Color() string        { return s.color }
func (s Stage) CreatedAt() time.Time { return s.createdAt }

type Repository interface {
	// GetAll returns the caller's stages sorted ascending by order position.
	GetAll(ctx context.Context) ([]Stage, error)
	GetByID(ctx context.Context, id uuid.UUID) (Stage, error)
}
