package readstore

import (
	"context"

	"bookcars/internal/infra"
	"bookcars/internal/infra/db"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(pool *pgxpool.Pool) *ListingReadStore {
	return &ListingReadStore{db: pool}
}

const findListingViewSQL = `
SELECT l.id, l.owner_id, u.name, l.brand, l.model, l.year, l.fuel_type, l.transmission,
       l.capacity, l.city, l.price_cents, l.image_url, l.window_from, l.window_till,
       avg(r.rating)::float8, count(r.id), l.created_at, l.updated_at
FROM listings l
JOIN users u ON u.id = l.owner_id
LEFT JOIN reviews r ON r.listing_id = l.id
WHERE l.id = $1
GROUP BY l.id, u.name
`

func (s *ListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	var v queries.ListingView
	err := s.db.QueryRow(ctx, findListingViewSQL, id).Scan(
		&v.ID, &v.OwnerID, &v.OwnerName, &v.Brand, &v.Model, &v.Year, &v.FuelType,
		&v.Transmission, &v.Capacity, &v.City, &v.PriceCents, &v.ImageURL,
		&v.WindowFrom, &v.WindowTill, &v.AvgRating, &v.ReviewCount,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find listing view", err)
	}
	return &v, nil
}

// Date-constrained searches exclude listings with an active booking
// overlapping the requested period, so results are bookable as shown.
const searchListingsSQL = `
SELECT l.id, l.brand, l.model, l.year, l.fuel_type, l.capacity, l.city,
       l.price_cents, l.image_url, avg(r.rating)::float8, count(r.id)
FROM listings l
LEFT JOIN reviews r ON r.listing_id = l.id
WHERE ($1::text IS NULL OR l.city = $1)
  AND ($2::timestamptz IS NULL OR l.window_from <= $2)
  AND ($3::timestamptz IS NULL OR l.window_till >= $3)
  AND ($4::int IS NULL OR l.capacity >= $4)
  AND ($5::text IS NULL OR l.fuel_type = $5)
  AND ($2::timestamptz IS NULL OR $3::timestamptz IS NULL OR NOT EXISTS (
        SELECT 1 FROM bookings b
        WHERE b.listing_id = l.id
          AND b.status IN ('pending', 'confirmed')
          AND b.start_at < $3 AND $2 < b.end_at))
GROUP BY l.id
ORDER BY l.created_at DESC, l.id
LIMIT $6 OFFSET $7
`

func (s *ListingReadStore) Search(ctx context.Context, params queries.SearchListingsParams) ([]*queries.ListingListItem, error) {
	rows, err := s.db.Query(ctx, searchListingsSQL,
		params.City, params.From, params.Till, params.MinCapacity, params.FuelType,
		params.Limit, params.Offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search listings", err)
	}
	defer rows.Close()

	var items []*queries.ListingListItem
	for rows.Next() {
		var it queries.ListingListItem
		err := rows.Scan(
			&it.ID, &it.Brand, &it.Model, &it.Year, &it.FuelType, &it.Capacity,
			&it.City, &it.PriceCents, &it.ImageURL, &it.AvgRating, &it.ReviewCount,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan listing row", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read listing rows", err)
	}
	return items, nil
}
