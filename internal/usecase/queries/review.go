package queries

import (
	"context"

	"github.com/google/uuid"
)

type ReviewQueries interface {
	ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*ReviewView, error)
}

type ReviewViewRepo interface {
	FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*ReviewView, error)
}

type reviewQueriesImpl struct {
	repo ReviewViewRepo
}

func NewReviewQueries(repo ReviewViewRepo) ReviewQueries {
	return &reviewQueriesImpl{repo: repo}
}

func (q *reviewQueriesImpl) ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*ReviewView, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByListingID(ctx, listingID, limit, offset)
}
