package listing

import (
	"strings"

	"bookcars/internal/pkg/errs"
)

var (
	ErrUnknownCity     = errs.New("city is not served")
	ErrUnknownLocation = errs.New("pickup point is not served in this city")
)

// Served cities and their pickup/dropoff points. Bookings may only start and
// end at a point belonging to the listing's city.
var cityPoints = map[string][]string{
	"Hyderabad": {
		"Ameerpet", "Miyapur", "Gachibowli", "LB Nagar", "Uppal", "Tarnaka", "Madhapur",
		"Secunderabad", "Paradise", "Malakpet", "Nampally", "Khairatabad", "Kukatpally", "JNTU",
	},
	"Chennai": {
		"Tambaram", "Meenambakkam", "Pallavaram", "Chrompet", "Anna Nagar", "Guduvanchery",
		"T. Nagar", "Guindy", "Velachery", "Adyar", "Perambur",
	},
}

type City struct {
	name string
}

func NewCity(name string) (City, error) {
	name = strings.TrimSpace(name)
	if _, ok := cityPoints[name]; !ok {
		return City{}, ErrUnknownCity
	}
	return City{name: name}, nil
}

func (c City) String() string {
	return c.name
}

func (c City) PickupPoints() []string {
	points := cityPoints[c.name]
	out := make([]string, len(points))
	copy(out, points)
	return out
}

func (c City) ServesPoint(point string) bool {
	for _, p := range cityPoints[c.name] {
		if p == point {
			return true
		}
	}
	return false
}

func ServedCities() []string {
	out := make([]string, 0, len(cityPoints))
	for name := range cityPoints {
		out = append(out, name)
	}
	return out
}
