package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ListingView struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	OwnerName    string    `json:"owner_name"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	FuelType     string    `json:"fuel_type"`
	Transmission string    `json:"transmission"`
	Capacity     int       `json:"capacity"`
	City         string    `json:"city"`
	PriceCents   int64     `json:"price_cents"`
	ImageURL     string    `json:"image_url"`
	WindowFrom   time.Time `json:"window_from"`
	WindowTill   time.Time `json:"window_till"`
	AvgRating    *float64  `json:"avg_rating,omitempty"`
	ReviewCount  int64     `json:"review_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListingListItem struct {
	ID          uuid.UUID `json:"id"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	FuelType    string    `json:"fuel_type"`
	Capacity    int       `json:"capacity"`
	City        string    `json:"city"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url"`
	AvgRating   *float64  `json:"avg_rating,omitempty"`
	ReviewCount int64     `json:"review_count"`
}

type BookingView struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ListingBrand string    `json:"listing_brand"`
	ListingModel string    `json:"listing_model"`
	RenterID     uuid.UUID `json:"renter_id"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	PickupPoint  string    `json:"pickup_point"`
	DropoffPoint string    `json:"dropoff_point"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"price_cents"`
	PaymentRef   string    `json:"payment_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ListingBrand string    `json:"listing_brand"`
	ListingModel string    `json:"listing_model"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"price_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// CalendarDay carries one day of a listing's month view.
type CalendarDay struct {
	Day   time.Time `json:"day"`
	Class string    `json:"class"`
}

type QuoteView struct {
	ListingID  uuid.UUID `json:"listing_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Hours      int64     `json:"hours"`
	PriceCents int64     `json:"price_cents"`
	Available  bool      `json:"available"`
}

type DashboardView struct {
	TotalUsers        int64    `json:"total_users"`
	TotalListings     int64    `json:"total_listings"`
	TotalBookings     int64    `json:"total_bookings"`
	ActiveBookings    int64    `json:"active_bookings"`
	CompletedBookings int64    `json:"completed_bookings"`
	CanceledBookings  int64    `json:"canceled_bookings"`
	RevenueCents      int64    `json:"revenue_cents"`
	AvgRating         *float64 `json:"avg_rating,omitempty"`
}

// SearchListingsParams narrows the catalog; nil fields are unconstrained.
type SearchListingsParams struct {
	City        *string
	From        *time.Time
	Till        *time.Time
	MinCapacity *int
	FuelType    *string
	Limit       int32
	Offset      int32
}
