package repository

import (
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/booking"
	"bookcars/internal/domain/listing"
	"bookcars/internal/domain/user"
	"bookcars/internal/pkg/errs"

	"github.com/google/uuid"
)

// Row structs mirror table columns; converters rebuild domain entities through
// their value objects so a corrupt row fails loudly instead of leaking.

type userRow struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Role         string
	LastLogin    *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r userRow) toDomain() (*user.User, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return nil, errs.Wrap(err, "stored email is invalid")
	}
	name, err := user.NewName(r.Name)
	if err != nil {
		return nil, errs.Wrap(err, "stored name is invalid")
	}
	phone, err := user.NewPhone(r.Phone)
	if err != nil {
		return nil, errs.Wrap(err, "stored phone is invalid")
	}
	role, err := user.NewRole(r.Role)
	if err != nil {
		return nil, errs.Wrap(err, "stored role is invalid")
	}
	return user.ReconstructUser(
		r.ID, email, r.PasswordHash, name, phone, role,
		r.LastLogin, r.IsActive, r.CreatedAt, r.UpdatedAt,
	), nil
}

type listingRow struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Brand        string
	Model        string
	Year         int
	FuelType     string
	Transmission string
	Capacity     int
	City         string
	PriceCents   int64
	ImageURL     string
	WindowFrom   time.Time
	WindowTill   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r listingRow) toDomain() (*listing.Listing, error) {
	city, err := listing.NewCity(r.City)
	if err != nil {
		return nil, errs.Wrap(err, "stored city is invalid")
	}
	return listing.ReconstructListing(
		r.ID, r.OwnerID, r.Brand, r.Model, r.Year,
		listing.FuelType(r.FuelType), listing.Transmission(r.Transmission),
		r.Capacity, city, r.PriceCents, r.ImageURL,
		availability.Window{From: r.WindowFrom, Till: r.WindowTill},
		r.CreatedAt, r.UpdatedAt,
	), nil
}

type bookingRow struct {
	ID           uuid.UUID
	ListingID    uuid.UUID
	RenterID     uuid.UUID
	StartAt      time.Time
	EndAt        time.Time
	City         string
	PickupPoint  string
	DropoffPoint string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Status       string
	PriceCents   int64
	PaymentRef   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r bookingRow) toDomain() (*booking.Booking, error) {
	city, err := listing.NewCity(r.City)
	if err != nil {
		return nil, errs.Wrap(err, "stored city is invalid")
	}
	route, err := booking.NewRoute(city, r.PickupPoint, r.DropoffPoint)
	if err != nil {
		return nil, errs.Wrap(err, "stored route is invalid")
	}
	contact, err := booking.NewContact(r.ContactName, r.ContactEmail, r.ContactPhone)
	if err != nil {
		return nil, errs.Wrap(err, "stored contact is invalid")
	}
	status := booking.Status(r.Status)
	if !status.IsValid() {
		return nil, errs.New("stored booking status is invalid")
	}
	return booking.ReconstructBooking(
		r.ID, r.ListingID, r.RenterID,
		availability.Interval{Start: r.StartAt, End: r.EndAt},
		route, contact, status, r.PriceCents, r.PaymentRef,
		r.CreatedAt, r.UpdatedAt,
	), nil
}
