package printer

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module(
		"printer",
		fx.Provide(NewPrinter),
	)
}
