package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"lakbay/internal/infra"
)

var Module = fx.Provide(provideDatabase)

func provideDatabase(lc fx.Lifecycle) *gorm.DB {
	db := infra.InitPostgresql()
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db
}
