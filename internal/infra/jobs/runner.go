package jobs

import (
	"context"
	"log/slog"

	"bookcars/internal/pkg/config"
	"bookcars/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Runner owns the cron scheduler for background work: outbox dispatch and
// the booking completion sweep.
type Runner struct {
	cron       *cron.Cron
	dispatcher *OutboxDispatcher
	sweep      *CompletionSweep
	cfg        config.JobsConfig
}

func NewRunner(dispatcher *OutboxDispatcher, sweep *CompletionSweep, cfg config.Config) *Runner {
	return &Runner{
		cron:       cron.New(),
		dispatcher: dispatcher,
		sweep:      sweep,
		cfg:        cfg.Jobs,
	}
}

func (r *Runner) Start() error {
	_, err := r.cron.AddFunc(r.cfg.OutboxSchedule, func() {
		if err := r.dispatcher.DispatchOnce(context.Background()); err != nil {
			slog.Error("outbox dispatch failed", "error", err.Error())
		}
	})
	if err != nil {
		return errs.Wrap(err, "failed to schedule outbox dispatch")
	}

	_, err = r.cron.AddFunc(r.cfg.CompletionSchedule, func() {
		if err := r.sweep.SweepOnce(context.Background()); err != nil {
			slog.Error("completion sweep failed", "error", err.Error())
		}
	})
	if err != nil {
		return errs.Wrap(err, "failed to schedule completion sweep")
	}

	r.cron.Start()
	return nil
}

// Stop waits for in-flight jobs before returning.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
}
