package internal

import (
	"context"

	"roscon_orders/internal/cli"
	"roscon_orders/internal/config"
	"roscon_orders/internal/logging"
	"roscon_orders/internal/orders"
	"roscon_orders/internal/printer"
	"roscon_orders/internal/storage"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Run() error {
	var runner *cli.Runner

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		storage.Module(),
		orders.Module(),
		printer.Module(),
		cli.Module(),
		fx.Populate(&runner),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	return runner.Execute()
}
