package logging

import (
	"context"
	"os"

	"roscon_orders/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module tees every logger in the app into the log file. It is a plain
// option group rather than an fx.Module so the decorator reaches the root
// scope.
func Module() fx.Option {
	return fx.Options(
		fx.Provide(func(cfg config.Config) (*os.File, error) {
			return OpenLogFile(cfg.LogFile)
		}),
		fx.Decorate(func(base *zap.Logger, cfg config.Config, file *os.File) *zap.Logger {
			return AttachFileLogger(base, file, cfg.Debug)
		}),
		fx.Invoke(func(lc fx.Lifecycle, file *os.File) {
			if file == nil {
				return
			}
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					if err := file.Sync(); err != nil {
						return err
					}
					return file.Close()
				},
			})
		}),
	)
}
