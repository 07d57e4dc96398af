//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"bookcars/internal/domain/user"
	"bookcars/internal/handler/api"
	resdto "bookcars/internal/handler/dto/response"
	"bookcars/internal/infra"
	"bookcars/internal/usecase/commands"
	"bookcars/internal/usecase/queries"
	"bookcars/tests/common/builder"
	"bookcars/tests/common/httptest"
	"bookcars/tests/common/testutil"
	commandsmock "bookcars/tests/mock/commands"
	queriesmock "bookcars/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ListingHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockCtrl          *gomock.Controller
	mockCommands      *commandsmock.MockListingCommands
	mockQueries       *queriesmock.MockListingQueries
	mockReviewQueries *queriesmock.MockReviewQueries
	handler           *api.ListingHandler
	ownerID           uuid.UUID
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockListingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockListingQueries(s.mockCtrl)
	s.mockReviewQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.handler = api.NewListingHandler(s.mockCommands, s.mockQueries, s.mockReviewQueries)
	s.ownerID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.ownerID)
		c.Set("user_role", user.RoleOwner)
		c.Next()
	}

	s.router.GET("/listings", s.handler.Search)
	s.router.GET("/listings/:id", s.handler.GetByID)
	s.router.GET("/listings/:id/calendar", s.handler.Calendar)
	s.router.GET("/listings/:id/blocked-slots", s.handler.BlockedSlots)
	s.router.GET("/listings/:id/quote", s.handler.Quote)
	s.router.GET("/listings/:id/reviews", s.handler.Reviews)
	s.router.POST("/listings", authMiddleware, s.handler.Create)
	s.router.PATCH("/listings/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/listings/:id", authMiddleware, s.handler.Delete)
}

func (s *ListingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}

// ================================================================================
// TestSearch
// ================================================================================

func (s *ListingHandlerTestSuite) TestSearch() {
	items := []*queries.ListingListItem{
		{ID: uuid.New(), Brand: "Hyundai", Model: "Creta", City: "Hyderabad"},
		{ID: uuid.New(), Brand: "Maruti", Model: "Swift", City: "Hyderabad"},
	}

	s.Run("success: no filters uses defaults", func() {
		expected := queries.SearchListingsParams{Limit: 50, Offset: 0}
		s.mockQueries.EXPECT().Search(gomock.Any(), expected).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings", nil, "")

		var response []*resdto.ListingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: all filters forwarded", func() {
		city := "Hyderabad"
		from := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
		till := time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)
		capacity := 5
		fuel := "petrol"
		expected := queries.SearchListingsParams{
			City: &city, From: &from, Till: &till, MinCapacity: &capacity, FuelType: &fuel,
			Limit: 10, Offset: 0,
		}
		s.mockQueries.EXPECT().Search(gomock.Any(), expected).
			Return(items[:1], nil).Times(1)

		url := "/listings?city=Hyderabad&from=2024-06-03T10:00:00Z&till=2024-06-03T18:00:00Z&capacity=5&fuel_type=petrol&limit=10"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on malformed filters", func() {
		testCases := []struct {
			name string
			url  string
		}{
			{name: "bad from time", url: "/listings?from=yesterday"},
			{name: "bad till time", url: "/listings?till=2024-13-99"},
			{name: "bad capacity", url: "/listings?capacity=zero"},
			{name: "non-positive capacity", url: "/listings?capacity=0"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}

// ================================================================================
// TestGetByID
// ================================================================================

func (s *ListingHandlerTestSuite) TestGetByID() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String()

	returnView := builder.NewListingBuilder().BuildView()
	returnView.ID = listingID

	s.Run("success: returns 200 OK with ListingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), listingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(listingID, response.ID)
		s.Equal(returnView.Brand, response.Brand)
		s.Equal(returnView.PriceCents, response.PriceCents)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings/invalid-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid listing ID")
	})

	s.Run("error: 404 Not Found for missing listing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), listingID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "listing not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestCalendar
// ================================================================================

func (s *ListingHandlerTestSuite) TestCalendar() {
	listingID := uuid.New()
	baseURL := "/listings/" + listingID.String() + "/calendar"

	days := []queries.CalendarDay{
		{Day: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Class: "available"},
		{Day: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), Class: "partially_booked"},
		{Day: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Class: "fully_booked"},
	}

	s.Run("success: returns day classifications", func() {
		s.mockQueries.EXPECT().Calendar(gomock.Any(), listingID, 2024, time.June).
			Return(days, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?year=2024&month=6", nil, "")

		var response []resdto.CalendarDayResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 3)
		s.Equal("2024-06-01", response[0].Day)
		s.Equal("available", response[0].Class)
		s.Equal("fully_booked", response[2].Class)
	})

	s.Run("error: 400 Bad Request on bad year or month", func() {
		for _, u := range []string{baseURL, baseURL + "?year=2024", baseURL + "?year=2024&month=13", baseURL + "?year=twenty&month=6"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, u, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: 404 Not Found for missing listing", func() {
		s.mockQueries.EXPECT().Calendar(gomock.Any(), listingID, 2024, time.June).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "listing not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?year=2024&month=6", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *ListingHandlerTestSuite) TestQuote() {
	listingID := uuid.New()
	baseURL := "/listings/" + listingID.String() + "/quote"

	start := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 18, 0, 0, 0, time.UTC)
	quote := &queries.QuoteView{
		ListingID:  listingID,
		StartAt:    start,
		EndAt:      end,
		Hours:      8,
		PriceCents: 200000,
		Available:  true,
	}

	s.Run("success: returns priced quote", func() {
		s.mockQueries.EXPECT().Quote(gomock.Any(), listingID, start, end).
			Return(quote, nil).Times(1)

		url := baseURL + "?start=2024-06-03T10:00:00Z&end=2024-06-03T18:00:00Z"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(8), response.Hours)
		s.Equal(int64(200000), response.PriceCents)
		s.True(response.Available)
	})

	s.Run("error: 400 Bad Request on missing times", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ListingHandlerTestSuite) TestCreate() {
	url := "/listings"

	reqBody := builder.NewListingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewListingBuilder().BuildView()

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().CreateListing(gomock.Any(), gomock.Any(), s.ownerID, user.RoleOwner).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: brand", mutate: testutil.Field("brand", nil)},
			{name: "missing field: city", mutate: testutil.Field("city", nil)},
			{name: "invalid fuel_type", mutate: testutil.Field("fuel_type", "steam")},
			{name: "invalid transmission", mutate: testutil.Field("transmission", "cvt-ish")},
			{name: "zero capacity", mutate: testutil.Field("capacity", 0)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 403 Forbidden for non-owner accounts", func() {
		s.mockCommands.EXPECT().CreateListing(gomock.Any(), gomock.Any(), s.ownerID, user.RoleOwner).
			Return(nil, commands.ErrCannotListVehicles).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 422 Unprocessable Entity on domain validation", func() {
		s.mockCommands.EXPECT().CreateListing(gomock.Any(), gomock.Any(), s.ownerID, user.RoleOwner).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ListingHandlerTestSuite) TestDelete() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteListing(gomock.Any(), listingID, s.ownerID, user.RoleOwner).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when listing has active bookings", func() {
		s.mockCommands.EXPECT().DeleteListing(gomock.Any(), listingID, s.ownerID, user.RoleOwner).
			Return(commands.ErrListingHasBookings).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 409 Conflict when past bookings or reviews reference the listing", func() {
		s.mockCommands.EXPECT().DeleteListing(gomock.Any(), listingID, s.ownerID, user.RoleOwner).
			Return(commands.ErrListingHasHistory).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "history")
	})

	s.Run("error: 403 Forbidden for someone else's listing", func() {
		s.mockCommands.EXPECT().DeleteListing(gomock.Any(), listingID, s.ownerID, user.RoleOwner).
			Return(commands.ErrNotListingOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 Not Found for missing listing", func() {
		s.mockCommands.EXPECT().DeleteListing(gomock.Any(), listingID, s.ownerID, user.RoleOwner).
			Return(commands.ErrListingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
