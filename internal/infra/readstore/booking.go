package readstore

import (
	"context"

	"bookcars/internal/infra"
	"bookcars/internal/infra/db"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{db: pool}
}

const findBookingViewSQL = `
SELECT b.id, b.listing_id, l.brand, l.model, l.owner_id, b.renter_id,
       b.start_at, b.end_at, b.pickup_point, b.dropoff_point,
       b.contact_name, b.contact_email, b.contact_phone,
       b.status, b.price_cents, b.payment_ref, b.created_at, b.updated_at
FROM bookings b
JOIN listings l ON l.id = b.listing_id
WHERE b.id = $1
`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, uuid.UUID, error) {
	var v queries.BookingView
	var ownerID uuid.UUID
	err := s.db.QueryRow(ctx, findBookingViewSQL, id).Scan(
		&v.ID, &v.ListingID, &v.ListingBrand, &v.ListingModel, &ownerID, &v.RenterID,
		&v.StartAt, &v.EndAt, &v.PickupPoint, &v.DropoffPoint,
		&v.ContactName, &v.ContactEmail, &v.ContactPhone,
		&v.Status, &v.PriceCents, &v.PaymentRef, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, uuid.Nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return &v, ownerID, nil
}

const bookingListColumns = `
SELECT b.id, b.listing_id, l.brand, l.model, b.start_at, b.end_at,
       b.status, b.price_cents, b.created_at
FROM bookings b
JOIN listings l ON l.id = b.listing_id
`

func (s *BookingReadStore) FindByRenterID(ctx context.Context, renterID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx,
		bookingListColumns+`WHERE b.renter_id = $1 ORDER BY b.created_at DESC, b.id LIMIT $2 OFFSET $3`,
		renterID, limit, offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list renter bookings", err)
	}
	return scanBookingList(rows)
}

func (s *BookingReadStore) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx,
		bookingListColumns+`WHERE l.owner_id = $1 ORDER BY b.created_at DESC, b.id LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list owner bookings", err)
	}
	return scanBookingList(rows)
}

type bookingRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

func scanBookingList(rows bookingRows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var it queries.BookingListItem
		err := rows.Scan(
			&it.ID, &it.ListingID, &it.ListingBrand, &it.ListingModel,
			&it.StartAt, &it.EndAt, &it.Status, &it.PriceCents, &it.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}
