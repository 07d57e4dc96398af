package components

import (
	"context"

	"bookcars/internal/infra/jobs"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		jobs.NewOutboxDispatcher,
		jobs.NewCompletionSweep,
		jobs.NewRunner,
	),
	fx.Invoke(startJobs),
)

func startJobs(lc fx.Lifecycle, runner *jobs.Runner) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return runner.Start()
		},
		OnStop: func(_ context.Context) error {
			runner.Stop()
			return nil
		},
	})
}
