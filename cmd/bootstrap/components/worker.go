package components

import (
	"context"

	"rinto/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewSweeper,
	),
	fx.Invoke(registerSweeper),
)

func registerSweeper(lc fx.Lifecycle, sweeper *worker.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sweeper.Stop(ctx)
		},
	})
}
