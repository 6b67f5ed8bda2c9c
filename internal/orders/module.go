package orders

import (
	"context"

	"roscon_orders/internal/storage"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"orders",
		fx.Provide(
			func(kv *storage.KV) KV { return kv },
			NewStore,
		),
		fx.Invoke(func(lc fx.Lifecycle, store *Store) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return store.Load(ctx)
				},
			})
		}),
	)
}
