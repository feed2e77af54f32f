package dbfx

import (
	"go.uber.org/fx"

	"fundhub/internal/infra"
)

var Module = fx.Provide(infra.InitPostgresql)
