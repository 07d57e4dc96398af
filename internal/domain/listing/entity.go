package listing

import (
	"strings"
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyBrand      = errs.New("brand cannot be empty")
	ErrEmptyModel      = errs.New("model cannot be empty")
	ErrInvalidYear     = errs.New("year is out of range")
	ErrInvalidCapacity = errs.New("capacity must be at least one seat")
	ErrNegativePrice   = errs.New("price cannot be negative")
	ErrInvalidFuelType = errs.New("invalid fuel type")
	ErrInvalidGearbox  = errs.New("invalid transmission")
	ErrInvalidWindow   = errs.New("availability window is invalid")
)

const earliestModelYear = 1980

type Listing struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	brand        string
	model        string
	year         int
	fuelType     FuelType
	transmission Transmission
	capacity     int
	city         City
	priceCents   int64
	imageURL     string
	window       availability.Window
	createdAt    time.Time
	updatedAt    time.Time
}

type NewListingParams struct {
	OwnerID      uuid.UUID
	Brand        string
	Model        string
	Year         int
	FuelType     FuelType
	Transmission Transmission
	Capacity     int
	City         City
	PriceCents   int64
	ImageURL     string
	Window       availability.Window
}

func NewListing(p NewListingParams, now time.Time) (*Listing, error) {
	brand := strings.TrimSpace(p.Brand)
	if brand == "" {
		return nil, ErrEmptyBrand
	}
	model := strings.TrimSpace(p.Model)
	if model == "" {
		return nil, ErrEmptyModel
	}
	if p.Year < earliestModelYear || p.Year > now.Year()+1 {
		return nil, ErrInvalidYear
	}
	if !p.FuelType.IsValid() {
		return nil, ErrInvalidFuelType
	}
	if !p.Transmission.IsValid() {
		return nil, ErrInvalidGearbox
	}
	if p.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if p.PriceCents < 0 {
		return nil, ErrNegativePrice
	}
	if p.Window.Till.Before(p.Window.From) {
		return nil, ErrInvalidWindow
	}

	return &Listing{
		id:           uuid.New(),
		ownerID:      p.OwnerID,
		brand:        brand,
		model:        model,
		year:         p.Year,
		fuelType:     p.FuelType,
		transmission: p.Transmission,
		capacity:     p.Capacity,
		city:         p.City,
		priceCents:   p.PriceCents,
		imageURL:     strings.TrimSpace(p.ImageURL),
		window:       p.Window,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructListing(
	id, ownerID uuid.UUID,
	brand, model string,
	year int,
	fuelType FuelType,
	transmission Transmission,
	capacity int,
	city City,
	priceCents int64,
	imageURL string,
	window availability.Window,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:           id,
		ownerID:      ownerID,
		brand:        brand,
		model:        model,
		year:         year,
		fuelType:     fuelType,
		transmission: transmission,
		capacity:     capacity,
		city:         city,
		priceCents:   priceCents,
		imageURL:     imageURL,
		window:       window,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (l *Listing) ID() uuid.UUID              { return l.id }
func (l *Listing) OwnerID() uuid.UUID         { return l.ownerID }
func (l *Listing) Brand() string              { return l.brand }
func (l *Listing) Model() string              { return l.model }
func (l *Listing) Year() int                  { return l.year }
func (l *Listing) FuelType() FuelType         { return l.fuelType }
func (l *Listing) Transmission() Transmission { return l.transmission }
func (l *Listing) Capacity() int              { return l.capacity }
func (l *Listing) City() City                 { return l.city }
func (l *Listing) PriceCents() int64          { return l.priceCents }
func (l *Listing) ImageURL() string           { return l.imageURL }
func (l *Listing) Window() availability.Window {
	return l.window
}
func (l *Listing) CreatedAt() time.Time { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time { return l.updatedAt }

func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.ownerID == userID
}

// UpdateWindow is the only post-creation mutation of the offer window,
// performed by explicit owner edits.
func (l *Listing) UpdateWindow(w availability.Window, now time.Time) error {
	if w.Till.Before(w.From) {
		return ErrInvalidWindow
	}
	l.window = w
	l.updatedAt = now
	return nil
}

func (l *Listing) UpdatePrice(priceCents int64, now time.Time) error {
	if priceCents < 0 {
		return ErrNegativePrice
	}
	l.priceCents = priceCents
	l.updatedAt = now
	return nil
}
