package response

import (
	"time"

	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listingId"`
	ListingBrand string    `json:"listingBrand"`
	ListingModel string    `json:"listingModel"`
	RenterID     uuid.UUID `json:"renterId"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	PickupPoint  string    `json:"pickupPoint"`
	DropoffPoint string    `json:"dropoffPoint"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"priceCents"`
	PaymentRef   string    `json:"paymentRef,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listingId"`
	ListingBrand string    `json:"listingBrand"`
	ListingModel string    `json:"listingModel"`
	StartAt      time.Time `json:"startAt"`
	EndAt        time.Time `json:"endAt"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"priceCents"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateBookingResponse struct {
	Booking       *BookingResponse `json:"booking"`
	PaymentIntent string           `json:"paymentIntent,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
