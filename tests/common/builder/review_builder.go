//go:build unit || e2e

package builder

import (
	"time"

	domreview "bookcars/internal/domain/review"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	UserID    uuid.UUID
	ListingID uuid.UUID
	BookingID uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		UserID:    uuid.New(),
		ListingID: uuid.New(),
		BookingID: uuid.New(),
		Rating:    5,
		Comment:   "Smooth ride, clean car!",
		CreatedAt: time.Now(),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(uuid.Nil, r.UserID, r.ListingID, r.BookingID, r.Rating, r.Comment, r.CreatedAt)
}

func (r *ReviewBuilder) WithUserID(userID uuid.UUID) *ReviewBuilder {
	r.UserID = userID
	return r
}

func (r *ReviewBuilder) WithListingID(listingID uuid.UUID) *ReviewBuilder {
	r.ListingID = listingID
	return r
}

func (r *ReviewBuilder) WithBookingID(bookingID uuid.UUID) *ReviewBuilder {
	r.BookingID = bookingID
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}
