//go:build unit || e2e

package builder

import (
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/booking"
	"bookcars/internal/domain/listing"
	reqdto "bookcars/internal/handler/dto/request"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ListingID    uuid.UUID
	RenterID     uuid.UUID
	Start        time.Time
	End          time.Time
	City         string
	PickupPoint  string
	DropoffPoint string
	ContactName  string
	ContactEmail string
	ContactPhone string
	PriceCents   int64
	Now          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ListingID:    uuid.New(),
		RenterID:     uuid.New(),
		Start:        time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC),
		City:         "Hyderabad",
		PickupPoint:  "Gachibowli",
		DropoffPoint: "Madhapur",
		ContactName:  "Asha Rao",
		ContactEmail: "asha@example.com",
		ContactPhone: "+91 9876543210",
		PriceCents:   200000,
		Now:          time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	city, err := listing.NewCity(b.City)
	if err != nil {
		return nil, err
	}

	route, err := booking.NewRoute(city, b.PickupPoint, b.DropoffPoint)
	if err != nil {
		return nil, err
	}

	contact, err := booking.NewContact(b.ContactName, b.ContactEmail, b.ContactPhone)
	if err != nil {
		return nil, err
	}

	return booking.NewBooking(booking.NewBookingParams{
		ListingID:  b.ListingID,
		RenterID:   b.RenterID,
		Interval:   availability.Interval{Start: b.Start, End: b.End},
		Route:      route,
		Contact:    contact,
		PriceCents: b.PriceCents,
	}, b.Now)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ListingID:    b.ListingID,
		StartAt:      b.Start,
		EndAt:        b.End,
		PickupPoint:  b.PickupPoint,
		DropoffPoint: b.DropoffPoint,
		ContactName:  b.ContactName,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:           uuid.New(),
		ListingID:    b.ListingID,
		ListingBrand: "Hyundai",
		ListingModel: "Creta",
		RenterID:     b.RenterID,
		StartAt:      b.Start,
		EndAt:        b.End,
		PickupPoint:  b.PickupPoint,
		DropoffPoint: b.DropoffPoint,
		ContactName:  b.ContactName,
		ContactEmail: b.ContactEmail,
		ContactPhone: b.ContactPhone,
		Status:       string(booking.StatusPending),
		PriceCents:   b.PriceCents,
		CreatedAt:    b.Now,
		UpdatedAt:    b.Now,
	}
}

func (b *BookingBuilder) WithListingID(id uuid.UUID) *BookingBuilder {
	b.ListingID = id
	return b
}

func (b *BookingBuilder) WithRenterID(id uuid.UUID) *BookingBuilder {
	b.RenterID = id
	return b
}

func (b *BookingBuilder) WithInterval(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithRoute(pickup, dropoff string) *BookingBuilder {
	b.PickupPoint = pickup
	b.DropoffPoint = dropoff
	return b
}

func (b *BookingBuilder) WithPriceCents(cents int64) *BookingBuilder {
	b.PriceCents = cents
	return b
}
