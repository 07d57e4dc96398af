package readstore

import (
	"context"

	"bookcars/internal/infra"
	"bookcars/internal/infra/db"
	"bookcars/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminReadStore struct {
	db db.DBTX
}

func NewAdminReadStore(pool *pgxpool.Pool) *AdminReadStore {
	return &AdminReadStore{db: pool}
}

// Revenue counts confirmed and completed bookings; pending ones have not been
// paid and canceled ones were refunded.
const dashboardSQL = `
SELECT
    (SELECT count(*) FROM users),
    (SELECT count(*) FROM listings),
    (SELECT count(*) FROM bookings),
    (SELECT count(*) FROM bookings WHERE status IN ('pending', 'confirmed')),
    (SELECT count(*) FROM bookings WHERE status = 'completed'),
    (SELECT count(*) FROM bookings WHERE status = 'canceled'),
    (SELECT coalesce(sum(price_cents), 0) FROM bookings WHERE status IN ('confirmed', 'completed')),
    (SELECT avg(rating)::float8 FROM reviews)
`

func (s *AdminReadStore) Aggregate(ctx context.Context) (*queries.DashboardView, error) {
	var v queries.DashboardView
	err := s.db.QueryRow(ctx, dashboardSQL).Scan(
		&v.TotalUsers, &v.TotalListings, &v.TotalBookings,
		&v.ActiveBookings, &v.CompletedBookings, &v.CanceledBookings,
		&v.RevenueCents, &v.AvgRating,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate dashboard", err)
	}
	return &v, nil
}
