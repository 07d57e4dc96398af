package readstore

import (
	"context"

	"bookcars/internal/infra"
	"bookcars/internal/infra/db"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(pool *pgxpool.Pool) *ReviewReadStore {
	return &ReviewReadStore{db: pool}
}

const listReviewsSQL = `
SELECT r.id, r.user_id, u.name, r.rating, r.comment, r.created_at
FROM reviews r
JOIN users u ON u.id = r.user_id
WHERE r.listing_id = $1
ORDER BY r.created_at DESC, r.id
LIMIT $2 OFFSET $3
`

func (s *ReviewReadStore) FindByListingID(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*queries.ReviewView, error) {
	rows, err := s.db.Query(ctx, listReviewsSQL, listingID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	defer rows.Close()

	var views []*queries.ReviewView
	for rows.Next() {
		var v queries.ReviewView
		if err := rows.Scan(&v.ID, &v.UserID, &v.UserName, &v.Rating, &v.Comment, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read review rows", err)
	}
	return views, nil
}
