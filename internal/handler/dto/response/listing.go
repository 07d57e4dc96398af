package response

import (
	"time"

	"bookcars/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ListingResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerId"`
	OwnerName    string    `json:"ownerName"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	FuelType     string    `json:"fuelType"`
	Transmission string    `json:"transmission"`
	Capacity     int       `json:"capacity"`
	City         string    `json:"city"`
	PriceCents   int64     `json:"priceCents"`
	ImageURL     string    `json:"imageUrl"`
	WindowFrom   time.Time `json:"windowFrom"`
	WindowTill   time.Time `json:"windowTill"`
	AvgRating    *float64  `json:"avgRating,omitempty"`
	ReviewCount  int64     `json:"reviewCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ListingListResponse struct {
	ID          uuid.UUID `json:"id"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	FuelType    string    `json:"fuelType"`
	Capacity    int       `json:"capacity"`
	City        string    `json:"city"`
	PriceCents  int64     `json:"priceCents"`
	ImageURL    string    `json:"imageUrl"`
	AvgRating   *float64  `json:"avgRating,omitempty"`
	ReviewCount int64     `json:"reviewCount"`
}

type CalendarDayResponse struct {
	Day   string `json:"day"`
	Class string `json:"class"`
}

type BlockedSlotsResponse struct {
	Day     string      `json:"day"`
	Blocked []time.Time `json:"blocked"`
}

type QuoteResponse struct {
	ListingID  uuid.UUID `json:"listingId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Hours      int64     `json:"hours"`
	PriceCents int64     `json:"priceCents"`
	Available  bool      `json:"available"`
}

func FromListingView(v *queries.ListingView) *ListingResponse {
	var resp ListingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromListingListItem(v *queries.ListingListItem) *ListingListResponse {
	var resp ListingListResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromCalendarDay(d queries.CalendarDay) CalendarDayResponse {
	return CalendarDayResponse{
		Day:   d.Day.Format("2006-01-02"),
		Class: d.Class,
	}
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	var resp QuoteResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
