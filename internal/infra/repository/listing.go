package repository

import (
	"context"
	"time"

	"bookcars/internal/domain/listing"
	"bookcars/internal/infra"
	"bookcars/internal/infra/db"

	"github.com/google/uuid"
)

type ListingRepository struct{}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{}
}

const insertListingSQL = `
INSERT INTO listings (
    id, owner_id, brand, model, year, fuel_type, transmission, capacity,
    city, price_cents, image_url, window_from, window_till, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
`

func (r *ListingRepository) Create(ctx context.Context, tx db.DBTX, l *listing.Listing, now time.Time) error {
	_, err := tx.Exec(ctx, insertListingSQL,
		l.ID(), l.OwnerID(), l.Brand(), l.Model(), l.Year(),
		string(l.FuelType()), string(l.Transmission()), l.Capacity(),
		l.City().String(), l.PriceCents(), l.ImageURL(),
		l.Window().From, l.Window().Till, now,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create listing", err)
	}
	return nil
}

const selectListingColumns = `
SELECT id, owner_id, brand, model, year, fuel_type, transmission, capacity,
       city, price_cents, image_url, window_from, window_till, created_at, updated_at
FROM listings
`

func (r *ListingRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error) {
	row := tx.QueryRow(ctx, selectListingColumns+"WHERE id = $1", id)

	var lr listingRow
	err := row.Scan(
		&lr.ID, &lr.OwnerID, &lr.Brand, &lr.Model, &lr.Year,
		&lr.FuelType, &lr.Transmission, &lr.Capacity, &lr.City,
		&lr.PriceCents, &lr.ImageURL, &lr.WindowFrom, &lr.WindowTill,
		&lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find listing", err)
	}

	l, err := lr.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rebuild listing", err)
	}
	return l, nil
}

// FindByIDForUpdate locks the listing row for the rest of the transaction so
// concurrent bookings of the same listing serialize on the availability check.
func (r *ListingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*listing.Listing, error) {
	row := tx.QueryRow(ctx, selectListingColumns+"WHERE id = $1 FOR UPDATE", id)

	var lr listingRow
	err := row.Scan(
		&lr.ID, &lr.OwnerID, &lr.Brand, &lr.Model, &lr.Year,
		&lr.FuelType, &lr.Transmission, &lr.Capacity, &lr.City,
		&lr.PriceCents, &lr.ImageURL, &lr.WindowFrom, &lr.WindowTill,
		&lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock listing", err)
	}

	l, err := lr.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rebuild listing", err)
	}
	return l, nil
}

const updateListingSQL = `
UPDATE listings
SET price_cents = $2, window_from = $3, window_till = $4, updated_at = $5
WHERE id = $1
`

func (r *ListingRepository) Update(ctx context.Context, tx db.DBTX, l *listing.Listing) error {
	tag, err := tx.Exec(ctx, updateListingSQL,
		l.ID(), l.PriceCents(), l.Window().From, l.Window().Till, l.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "listing not found")
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "listing not found")
	}
	return nil
}
