package repository

import (
	"context"
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/booking"
	"bookcars/internal/infra"
	"bookcars/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const insertBookingSQL = `
INSERT INTO bookings (
    id, listing_id, renter_id, start_at, end_at,
    pickup_point, dropoff_point, contact_name, contact_email, contact_phone,
    status, price_cents, payment_ref, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
`

// Create relies on the bookings_no_overlap exclusion constraint: an
// overlapping active booking makes the insert fail with KindConflict.
func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, insertBookingSQL,
		b.ID(), b.ListingID(), b.RenterID(), b.Interval().Start, b.Interval().End,
		b.Route().PickupPoint(), b.Route().DropoffPoint(),
		b.Contact().Name(), b.Contact().Email(), b.Contact().Phone(),
		string(b.Status()), b.PriceCents(), b.PaymentRef(), b.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

const selectBookingColumns = `
SELECT b.id, b.listing_id, b.renter_id, b.start_at, b.end_at, l.city,
       b.pickup_point, b.dropoff_point, b.contact_name, b.contact_email, b.contact_phone,
       b.status, b.price_cents, b.payment_ref, b.created_at, b.updated_at
FROM bookings b
JOIN listings l ON l.id = b.listing_id
`

func (r *BookingRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row := tx.QueryRow(ctx, selectBookingColumns+"WHERE b.id = $1", id)

	var br bookingRow
	err := row.Scan(
		&br.ID, &br.ListingID, &br.RenterID, &br.StartAt, &br.EndAt, &br.City,
		&br.PickupPoint, &br.DropoffPoint, &br.ContactName, &br.ContactEmail, &br.ContactPhone,
		&br.Status, &br.PriceCents, &br.PaymentRef, &br.CreatedAt, &br.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	b, err := br.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rebuild booking", err)
	}
	return b, nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, payment_ref = $3, updated_at = $4
WHERE id = $1
`

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL,
		b.ID(), string(b.Status()), b.PaymentRef(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return nil
}

const activeIntervalsSQL = `
SELECT start_at, end_at
FROM bookings
WHERE listing_id = $1 AND status IN ('pending', 'confirmed')
ORDER BY start_at
`

// ActiveIntervals is the reservation snapshot availability checks run against.
func (r *BookingRepository) ActiveIntervals(ctx context.Context, tx db.DBTX, listingID uuid.UUID) ([]availability.Interval, error) {
	rows, err := tx.Query(ctx, activeIntervalsSQL, listingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active intervals", err)
	}
	defer rows.Close()

	var intervals []availability.Interval
	for rows.Next() {
		var iv availability.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interval", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read intervals", err)
	}
	return intervals, nil
}

const endedConfirmedSQL = selectBookingColumns + `
WHERE b.status = 'confirmed' AND b.end_at <= $1
ORDER BY b.end_at
LIMIT $2
`

// ListEndedConfirmed feeds the completion job: confirmed bookings whose
// dropoff time has passed.
func (r *BookingRepository) ListEndedConfirmed(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]*booking.Booking, error) {
	rows, err := tx.Query(ctx, endedConfirmedSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ended bookings", err)
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		var br bookingRow
		err := rows.Scan(
			&br.ID, &br.ListingID, &br.RenterID, &br.StartAt, &br.EndAt, &br.City,
			&br.PickupPoint, &br.DropoffPoint, &br.ContactName, &br.ContactEmail, &br.ContactPhone,
			&br.Status, &br.PriceCents, &br.PaymentRef, &br.CreatedAt, &br.UpdatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		b, err := br.toDomain()
		if err != nil {
			return nil, infra.WrapRepoErr("failed to rebuild booking", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return bookings, nil
}
