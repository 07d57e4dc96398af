package response

import (
	"bookcars/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type DashboardResponse struct {
	TotalUsers        int64    `json:"totalUsers"`
	TotalListings     int64    `json:"totalListings"`
	TotalBookings     int64    `json:"totalBookings"`
	ActiveBookings    int64    `json:"activeBookings"`
	CompletedBookings int64    `json:"completedBookings"`
	CanceledBookings  int64    `json:"canceledBookings"`
	RevenueCents      int64    `json:"revenueCents"`
	AvgRating         *float64 `json:"avgRating,omitempty"`
}

func FromDashboardView(v *queries.DashboardView) *DashboardResponse {
	var resp DashboardResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
