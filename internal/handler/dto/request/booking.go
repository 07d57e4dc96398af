package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID    uuid.UUID `json:"listing_id" binding:"required"`
	StartAt      time.Time `json:"start_at" binding:"required"`
	EndAt        time.Time `json:"end_at" binding:"required"`
	PickupPoint  string    `json:"pickup_point" binding:"required"`
	DropoffPoint string    `json:"dropoff_point" binding:"required"`
	ContactName  string    `json:"contact_name" binding:"required"`
	ContactEmail string    `json:"contact_email" binding:"required,email"`
	ContactPhone string    `json:"contact_phone" binding:"required"`
}

type ConfirmBookingRequest struct {
	PaymentRef string `json:"payment_ref" binding:"required"`
}
