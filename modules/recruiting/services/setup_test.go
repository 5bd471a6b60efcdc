package services_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/talentflowhq/talentflow/modules/recruiting"
	"github.com/talentflowhq/talentflow/modules/recruiting/services"
	"github.com/talentflowhq/talentflow/pkg/itf"
)

type fixture struct {
	env         *itf.TestEnvironment
	assignments *services.AssignmentService
	pipeline    *services.PipelineService

	recruiterOne uuid.UUID
	recruiterTwo uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	env := itf.NewTestContext().
		WithModules(recruiting.NewModule()).
		Build(t)

	return &fixture{
		env:          env,
		assignments:  env.App.Service(services.AssignmentService{}).(*services.AssignmentService),
		pipeline:     env.App.Service(services.PipelineService{}).(*services.PipelineService),
		recruiterOne: env.CreateRecruiter(t, env.TenantID),
		recruiterTwo: env.CreateRecruiter(t, env.TenantID),
	}
}
