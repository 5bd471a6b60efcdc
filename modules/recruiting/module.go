package recruiting

import (
	"embed"

	"github.com/talentflowhq/talentflow/modules/recruiting/handlers"
	"github.com/talentflowhq/talentflow/modules/recruiting/infrastructure/persistence"
	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/controllers"
	"github.com/talentflowhq/talentflow/modules/recruiting/services"
	"github.com/talentflowhq/talentflow/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(migrationFiles, "infrastructure/persistence/schema")

	candidateRepo := persistence.NewCandidateRepository()
	stageRepo := persistence.NewStageRepository()
	positionRepo := persistence.NewPositionRepository()
	logRepo := persistence.NewAssignmentLogRepository()

	app.RegisterServices(
		services.NewAssignmentService(candidateRepo, logRepo, app.EventPublisher()),
		services.NewPipelineService(candidateRepo, stageRepo, positionRepo, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewPipelineController(app),
		controllers.NewAssignmentController(app),
		controllers.NewWebSocketController(app),
	)

	handlers.RegisterBroadcastHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "recruiting"
}
