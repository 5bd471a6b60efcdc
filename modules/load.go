package modules

import (
	"github.com/talentflowhq/talentflow/modules/recruiting"
	"github.com/talentflowhq/talentflow/pkg/application"
)

var BuiltInModules = []application.Module{
	recruiting.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
