package storage

import (
	"context"

	"roscon_orders/internal/config"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

func Module() fx.Option {
	return fx.Module(
		"storage",
		fx.Provide(
			func(lc fx.Lifecycle, cfg config.Config) (*gorm.DB, error) {
				db, err := Open(cfg)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStop: func(_ context.Context) error {
						sqlDB, err := db.DB()
						if err != nil {
							return err
						}
						return sqlDB.Close()
					},
				})
				return db, nil
			},
			NewKV,
		),
	)
}
