package jobs

import (
	"context"
	"log/slog"

	"bookcars/internal/infra/db"
	"bookcars/internal/infra/repository"
	"bookcars/internal/pkg/clock"

	"github.com/jackc/pgx/v5/pgxpool"
)

const completionBatchSize = 100

// CompletionSweep moves confirmed bookings whose dropoff time has passed to
// completed, which makes them eligible for review.
type CompletionSweep struct {
	pool     *pgxpool.Pool
	bookings *repository.BookingRepository
	clock    clock.Clock
}

func NewCompletionSweep(pool *pgxpool.Pool, bookings *repository.BookingRepository, clk clock.Clock) *CompletionSweep {
	return &CompletionSweep{pool: pool, bookings: bookings, clock: clk}
}

func (s *CompletionSweep) SweepOnce(ctx context.Context) error {
	return db.RunInTx(ctx, s.pool, func(ctx context.Context, tx db.DBTX) error {
		now := s.clock.Now()
		ended, err := s.bookings.ListEndedConfirmed(ctx, tx, now, completionBatchSize)
		if err != nil {
			return err
		}

		for _, b := range ended {
			if err := b.Complete(now); err != nil {
				slog.Warn("skipping uncompletable booking", "booking_id", b.ID(), "error", err.Error())
				continue
			}
			if err := s.bookings.UpdateStatus(ctx, tx, b); err != nil {
				return err
			}
		}

		if len(ended) > 0 {
			slog.Info("completed ended bookings", "count", len(ended))
		}
		return nil
	})
}
