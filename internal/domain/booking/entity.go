package booking

import (
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice     = errs.New("price cannot be negative")
	ErrNotPending        = errs.New("booking is not awaiting payment")
	ErrAlreadyCanceled   = errs.New("booking is already canceled")
	ErrNotCancelable     = errs.New("booking can no longer be canceled")
	ErrNotCompletable    = errs.New("booking has not ended yet")
	ErrInactiveForReview = errs.New("only completed bookings can be reviewed")
)

// Cancellation closes no earlier than this before pickup.
const cancelCutoff = 12 * time.Hour

type Booking struct {
	id         uuid.UUID
	listingID  uuid.UUID
	renterID   uuid.UUID
	interval   availability.Interval
	route      Route
	contact    Contact
	status     Status
	priceCents int64
	paymentRef string
	createdAt  time.Time
	updatedAt  time.Time
}

type NewBookingParams struct {
	ListingID  uuid.UUID
	RenterID   uuid.UUID
	Interval   availability.Interval
	Route      Route
	Contact    Contact
	PriceCents int64
}

// NewBooking assumes the interval already passed availability validation
// against the listing's window and reservation snapshot; it enforces only
// booking-local invariants.
func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if !p.Interval.End.After(p.Interval.Start) {
		return nil, availability.ErrInvalidInterval
	}
	if p.PriceCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:         uuid.New(),
		listingID:  p.ListingID,
		renterID:   p.RenterID,
		interval:   p.Interval,
		route:      p.Route,
		contact:    p.Contact,
		status:     StatusPending,
		priceCents: p.PriceCents,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructBooking(
	id, listingID, renterID uuid.UUID,
	interval availability.Interval,
	route Route,
	contact Contact,
	status Status,
	priceCents int64,
	paymentRef string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		listingID:  listingID,
		renterID:   renterID,
		interval:   interval,
		route:      route,
		contact:    contact,
		status:     status,
		priceCents: priceCents,
		paymentRef: paymentRef,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) ListingID() uuid.UUID            { return b.listingID }
func (b *Booking) RenterID() uuid.UUID             { return b.renterID }
func (b *Booking) Interval() availability.Interval { return b.interval }
func (b *Booking) Route() Route                    { return b.route }
func (b *Booking) Contact() Contact                { return b.contact }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) PriceCents() int64               { return b.priceCents }
func (b *Booking) PaymentRef() string              { return b.paymentRef }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }

// Confirm records a successful payment and moves the booking to confirmed.
func (b *Booking) Confirm(paymentRef string, now time.Time) error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = StatusConfirmed
	b.paymentRef = paymentRef
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	if !b.status.IsActive() {
		return ErrNotCancelable
	}
	if b.interval.Start.Sub(now) < cancelCutoff {
		return ErrNotCancelable
	}
	b.status = StatusCanceled
	b.updatedAt = now
	return nil
}

// Complete marks a confirmed booking whose dropoff has passed.
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotCompletable
	}
	if now.Before(b.interval.End) {
		return ErrNotCompletable
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

func (b *Booking) HasEnded(now time.Time) bool {
	return !now.Before(b.interval.End)
}
