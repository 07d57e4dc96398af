package request

import (
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/listing"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Brand        string    `json:"brand" binding:"required"`
	Model        string    `json:"model" binding:"required"`
	Year         int       `json:"year" binding:"required"`
	FuelType     string    `json:"fuel_type" binding:"required,oneof=petrol diesel electric hybrid"`
	Transmission string    `json:"transmission" binding:"required,oneof=manual automatic"`
	Capacity     int       `json:"capacity" binding:"required,min=1"`
	City         string    `json:"city" binding:"required"`
	PriceCents   int64     `json:"price_cents" binding:"required,min=0"`
	ImageURL     string    `json:"image_url,omitempty"`
	WindowFrom   time.Time `json:"window_from" binding:"required"`
	WindowTill   time.Time `json:"window_till" binding:"required"`
}

func (r CreateListingRequest) ToDomain(ownerID uuid.UUID, now time.Time) (*listing.Listing, error) {
	city, err := listing.NewCity(r.City)
	if err != nil {
		return nil, err
	}

	window, err := availability.NewWindow(r.WindowFrom, r.WindowTill)
	if err != nil {
		return nil, err
	}

	return listing.NewListing(listing.NewListingParams{
		OwnerID:      ownerID,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		FuelType:     listing.FuelType(r.FuelType),
		Transmission: listing.Transmission(r.Transmission),
		Capacity:     r.Capacity,
		City:         city,
		PriceCents:   r.PriceCents,
		ImageURL:     r.ImageURL,
		Window:       window,
	}, now)
}

type UpdateListingRequest struct {
	PriceCents *int64     `json:"price_cents,omitempty" binding:"omitempty,min=0"`
	WindowFrom *time.Time `json:"window_from,omitempty"`
	WindowTill *time.Time `json:"window_till,omitempty"`
}
