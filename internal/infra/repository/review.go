package repository

import (
	"context"

	"bookcars/internal/domain/review"
	"bookcars/internal/infra"
	"bookcars/internal/infra/db"

	"github.com/google/uuid"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

const insertReviewSQL = `
INSERT INTO reviews (id, user_id, listing_id, booking_id, rating, comment, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Create hits the booking_id unique constraint on a second review of the same
// booking, surfacing as KindDuplicateKey.
func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rv *review.Review) error {
	_, err := tx.Exec(ctx, insertReviewSQL,
		rv.ID(), rv.UserID(), rv.ListingID(), rv.BookingID(),
		rv.Rating().Value(), rv.Comment().String(), rv.CreatedAt(), rv.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create review", err)
	}
	return nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check review existence", err)
	}
	return exists, nil
}
