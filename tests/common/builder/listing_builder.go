//go:build unit || e2e

package builder

import (
	"time"

	"bookcars/internal/domain/availability"
	"bookcars/internal/domain/listing"
	reqdto "bookcars/internal/handler/dto/request"
	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingBuilder struct {
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
	Now          time.Time
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		OwnerID:      uuid.New(),
		Brand:        "Hyundai",
		Model:        "Creta",
		Year:         2022,
		FuelType:     string(listing.FuelPetrol),
		Transmission: string(listing.TransmissionManual),
		Capacity:     5,
		City:         "Hyderabad",
		PriceCents:   25000,
		ImageURL:     "https://img.example.com/creta.jpg",
		WindowFrom:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		WindowTill:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Now:          time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	city, err := listing.NewCity(b.City)
	if err != nil {
		return nil, err
	}

	return listing.NewListing(listing.NewListingParams{
		OwnerID:      b.OwnerID,
		Brand:        b.Brand,
		Model:        b.Model,
		Year:         b.Year,
		FuelType:     listing.FuelType(b.FuelType),
		Transmission: listing.Transmission(b.Transmission),
		Capacity:     b.Capacity,
		City:         city,
		PriceCents:   b.PriceCents,
		ImageURL:     b.ImageURL,
		Window:       availability.Window{From: b.WindowFrom, Till: b.WindowTill},
	}, b.Now)
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		Brand:        b.Brand,
		Model:        b.Model,
		Year:         b.Year,
		FuelType:     b.FuelType,
		Transmission: b.Transmission,
		Capacity:     b.Capacity,
		City:         b.City,
		PriceCents:   b.PriceCents,
		ImageURL:     b.ImageURL,
		WindowFrom:   b.WindowFrom,
		WindowTill:   b.WindowTill,
	}
}

func (b *ListingBuilder) BuildView() *queries.ListingView {
	return &queries.ListingView{
		ID:           uuid.New(),
		OwnerID:      b.OwnerID,
		OwnerName:    "Ravi Kumar",
		Brand:        b.Brand,
		Model:        b.Model,
		Year:         b.Year,
		FuelType:     b.FuelType,
		Transmission: b.Transmission,
		Capacity:     b.Capacity,
		City:         b.City,
		PriceCents:   b.PriceCents,
		ImageURL:     b.ImageURL,
		WindowFrom:   b.WindowFrom,
		WindowTill:   b.WindowTill,
		CreatedAt:    b.Now,
		UpdatedAt:    b.Now,
	}
}

func (b *ListingBuilder) WithOwnerID(id uuid.UUID) *ListingBuilder {
	b.OwnerID = id
	return b
}

func (b *ListingBuilder) WithBrand(brand string) *ListingBuilder {
	b.Brand = brand
	return b
}

func (b *ListingBuilder) WithModel(model string) *ListingBuilder {
	b.Model = model
	return b
}

func (b *ListingBuilder) WithYear(year int) *ListingBuilder {
	b.Year = year
	return b
}

func (b *ListingBuilder) WithFuelType(fuelType string) *ListingBuilder {
	b.FuelType = fuelType
	return b
}

func (b *ListingBuilder) WithTransmission(transmission string) *ListingBuilder {
	b.Transmission = transmission
	return b
}

func (b *ListingBuilder) WithCapacity(capacity int) *ListingBuilder {
	b.Capacity = capacity
	return b
}

func (b *ListingBuilder) WithCity(city string) *ListingBuilder {
	b.City = city
	return b
}

func (b *ListingBuilder) WithPriceCents(cents int64) *ListingBuilder {
	b.PriceCents = cents
	return b
}

func (b *ListingBuilder) WithWindow(from, till time.Time) *ListingBuilder {
	b.WindowFrom = from
	b.WindowTill = till
	return b
}
