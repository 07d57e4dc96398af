package booking

import (
	"strings"

	"bookcars/internal/domain/listing"
	"bookcars/internal/pkg/errs"
)

var (
	ErrMissingContact = errs.New("contact details are incomplete")
	ErrBadPickupPoint = errs.New("pickup or dropoff point is not served")
)

// Contact is the personal-details step of the booking flow, captured with the
// booking so owners can reach the renter without a user lookup.
type Contact struct {
	name  string
	email string
	phone string
}

func NewContact(name, email, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return Contact{}, ErrMissingContact
	}
	return Contact{name: name, email: email, phone: phone}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Email() string { return c.email }
func (c Contact) Phone() string { return c.phone }

// Route is the pickup/dropoff point pair, both drawn from the listing city's
// served points.
type Route struct {
	pickupPoint  string
	dropoffPoint string
}

func NewRoute(city listing.City, pickupPoint, dropoffPoint string) (Route, error) {
	pickupPoint = strings.TrimSpace(pickupPoint)
	dropoffPoint = strings.TrimSpace(dropoffPoint)
	if !city.ServesPoint(pickupPoint) || !city.ServesPoint(dropoffPoint) {
		return Route{}, ErrBadPickupPoint
	}
	return Route{pickupPoint: pickupPoint, dropoffPoint: dropoffPoint}, nil
}

func (r Route) PickupPoint() string  { return r.pickupPoint }
func (r Route) DropoffPoint() string { return r.dropoffPoint }
