package itf

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentflowhq/talentflow/pkg/application"
	"github.com/talentflowhq/talentflow/pkg/composables"
	"github.com/talentflowhq/talentflow/pkg/configuration"
	"github.com/talentflowhq/talentflow/pkg/eventbus"
)

// EnvVar names the connection string for DB-backed tests. Tests that
// need a database skip when it is unset, so the unit suite stays green
// without infrastructure.
const EnvVar = "TALENTFLOW_TEST_DB"

// TestEnvironment is a live application wired against the test
// database. Every test gets its own tenant, so isolation comes from
// tenancy rather than truncation.
type TestEnvironment struct {
	App      application.Application
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	TenantID uuid.UUID

	ctx context.Context
}

type TestContext struct {
	modules []application.Module
}

func NewTestContext() *TestContext {
	return &TestContext{}
}

func (tc *TestContext) WithModules(modules ...application.Module) *TestContext {
	tc.modules = append(tc.modules, modules...)
	return tc
}

func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	dsn := os.Getenv(EnvVar)
	if dsn == "" {
		tb.Skipf("%s is not set, skipping database-backed test", EnvVar)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(pool.Close)

	logger := configuration.Use().Logger()
	bus := eventbus.NewEventPublisher(logger)
	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: bus,
		Logger:   logger,
		Huber:    application.NewHub(&application.HuberOptions{Logger: logger}),
	})
	for _, module := range tc.modules {
		if err := module.Register(app); err != nil {
			tb.Fatal(err)
		}
	}
	if err := app.Migrations().Run(ctx); err != nil {
		tb.Fatal(err)
	}

	env := &TestEnvironment{
		App:      app,
		Pool:     pool,
		EventBus: bus,
		ctx:      composables.WithPool(ctx, pool),
	}
	env.TenantID = env.createTenant(tb)
	return env
}

// Ctx returns a request-like context for the given recruiter, the same
// shape the auth middleware produces.
func (e *TestEnvironment) Ctx(recruiterID uuid.UUID) context.Context {
	return composables.WithRecruiter(e.ctx, &composables.Recruiter{
		ID:       recruiterID,
		TenantID: e.TenantID,
		Email:    "fixture@example.com",
		Role:     "recruiter",
	})
}

// CtxForTenant is Ctx for a recruiter belonging to another tenant.
func (e *TestEnvironment) CtxForTenant(recruiterID, tenantID uuid.UUID) context.Context {
	return composables.WithRecruiter(e.ctx, &composables.Recruiter{
		ID:       recruiterID,
		TenantID: tenantID,
		Email:    "fixture@example.com",
		Role:     "recruiter",
	})
}
