package itf

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func (e *TestEnvironment) createTenant(tb testing.TB) uuid.UUID {
	tb.Helper()
	id := uuid.New()
	_, err := e.Pool.Exec(context.Background(),
		`INSERT INTO tenants (id, name) VALUES ($1, $2)`,
		id, "test tenant "+id.String()[:8],
	)
	if err != nil {
		tb.Fatal(err)
	}
	return id
}

// CreateTenant seeds an additional organization for isolation tests.
func (e *TestEnvironment) CreateTenant(tb testing.TB) uuid.UUID {
	tb.Helper()
	return e.createTenant(tb)
}

func (e *TestEnvironment) CreateRecruiter(tb testing.TB, tenantID uuid.UUID) uuid.UUID {
	tb.Helper()
	id := uuid.New()
	_, err := e.Pool.Exec(context.Background(),
		`INSERT INTO recruiters (id, tenant_id, email, name) VALUES ($1, $2, $3, $4)`,
		id, tenantID, id.String()[:8]+"@example.com", "Recruiter "+id.String()[:8],
	)
	if err != nil {
		tb.Fatal(err)
	}
	return id
}

func (e *TestEnvironment) CreateCandidate(tb testing.TB, tenantID uuid.UUID, recruiterID uuid.NullUUID) uuid.UUID {
	tb.Helper()
	id := uuid.New()
	_, err := e.Pool.Exec(context.Background(),
		`INSERT INTO candidates (id, tenant_id, recruiter_id, name, email, location, score)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, tenantID, recruiterID, "Candidate "+id.String()[:8], id.String()[:8]+"@example.com", "Remote", 75,
	)
	if err != nil {
		tb.Fatal(err)
	}
	return id
}

func (e *TestEnvironment) CreateStage(tb testing.TB, tenantID uuid.UUID, name string, orderPosition int) uuid.UUID {
	tb.Helper()
	id := uuid.New()
	_, err := e.Pool.Exec(context.Background(),
		`INSERT INTO pipeline_stages (id, tenant_id, name, order_position, color)
         VALUES ($1, $2, $3, $4, $5)`,
		id, tenantID, name, orderPosition, "#94a3b8",
	)
	if err != nil {
		tb.Fatal(err)
	}
	return id
}
