package readstore

import (
	"context"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/listing"
	"bookcars/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityReadStore adapts the write-side repositories for read-only
// snapshot loading outside a transaction.
type AvailabilityReadStore struct {
	pool        *pgxpool.Pool
	listingRepo *repository.ListingRepository
	bookingRepo *repository.BookingRepository
}

func NewAvailabilityReadStore(pool *pgxpool.Pool, listingRepo *repository.ListingRepository, bookingRepo *repository.BookingRepository) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		pool:        pool,
		listingRepo: listingRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *AvailabilityReadStore) ListingSnapshot(ctx context.Context, listingID uuid.UUID) (*listing.Listing, error) {
	return s.listingRepo.FindByID(ctx, s.pool, listingID)
}

func (s *AvailabilityReadStore) ActiveIntervals(ctx context.Context, listingID uuid.UUID) ([]availability.Interval, error) {
	return s.bookingRepo.ActiveIntervals(ctx, s.pool, listingID)
}
