//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"bookcars/internal/domain/user"
	"bookcars/internal/handler/api"
	resdto "bookcars/internal/handler/dto/response"
	"bookcars/internal/infra"
	"bookcars/internal/pkg/errs"
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

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleRenter)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.List)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetByID)
	s.router.POST("/bookings/:id/confirm", authMiddleware, s.handler.Confirm)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	idemKey := uuid.New().String()
	idemHeader := map[string]string{"Idempotency-Key": idemKey}

	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns 201 Created with payment intent", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.userID, uuid.MustParse(idemKey)).
			Return(&commands.CreateBookingResult{Booking: returnView, PaymentIntent: "pi_secret_123"}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader)

		var response resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.Booking.ID)
		s.Equal("pi_secret_123", response.PaymentIntent)
	})

	s.Run("success: replayed request returns 200 OK", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.userID, uuid.MustParse(idemKey)).
			Return(&commands.CreateBookingResult{Booking: returnView, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request when Idempotency-Key missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 400 Bad Request when Idempotency-Key is not a UUID", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "UUID")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: listing_id", mutate: testutil.Field("listing_id", nil)},
			{name: "missing field: start_at", mutate: testutil.Field("start_at", nil)},
			{name: "missing field: end_at", mutate: testutil.Field("end_at", nil)},
			{name: "missing field: pickup_point", mutate: testutil.Field("pickup_point", nil)},
			{name: "missing field: contact_name", mutate: testutil.Field("contact_name", nil)},
			{name: "invalid contact_email", mutate: testutil.Field("contact_email", "not-an-email")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token", idemHeader)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", idemHeader)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "listing not found", commandsError: commands.ErrListingNotFound, expectedStatus: http.StatusNotFound},
			{name: "invalid period", commandsError: commands.ErrInvalidPeriod, expectedStatus: http.StatusBadRequest},
			{name: "outside window", commandsError: commands.ErrOutsideWindow, expectedStatus: http.StatusUnprocessableEntity},
			{name: "booking conflict", commandsError: commands.ErrBookingConflict, expectedStatus: http.StatusConflict},
			{name: "duplicate booking", commandsError: commands.ErrDuplicateBooking, expectedStatus: http.StatusConflict},
			{name: "idempotency in progress", commandsError: commands.ErrIdempotencyInProgress, expectedStatus: http.StatusConflict},
			{name: "domain validation", commandsError: commands.ErrDomainValidation, expectedStatus: http.StatusUnprocessableEntity},
			{name: "payment failed", commandsError: commands.ErrPaymentFailed, expectedStatus: http.StatusBadGateway},
			{name: "internal error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idemHeader)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGetByID
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetByID() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().BuildView()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleRenter, bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.Status, response.Status)
		s.Equal(returnView.PriceCents, response.PriceCents)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 403 Forbidden when booking belongs to someone else", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleRenter, bookingID).
			Return(nil, queries.ErrBookingAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleRenter, bookingID).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "booking not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	items := []*queries.BookingListItem{
		{ID: uuid.New(), Status: "pending"},
		{ID: uuid.New(), Status: "confirmed"},
	}

	s.Run("success: defaults to renter scope", func() {
		s.mockQueries.EXPECT().ListByRenter(gomock.Any(), s.userID, int32(50), int32(0)).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: scope=owner lists bookings on owned listings", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.userID, int32(50), int32(0)).
			Return(items[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?scope=owner", nil, "bearer-token")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: pagination params are forwarded", func() {
		s.mockQueries.EXPECT().ListByRenter(gomock.Any(), s.userID, int32(10), int32(20)).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=10&offset=20", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().ListByRenter(gomock.Any(), s.userID, int32(50), int32(0)).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}

// ================================================================================
// TestConfirm
// ================================================================================

func (s *BookingHandlerTestSuite) TestConfirm() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/confirm"
	reqBody := map[string]string{"payment_ref": "pi_123"}

	returnView := builder.NewBookingBuilder().BuildView()
	returnView.ID = bookingID
	returnView.Status = "confirmed"

	s.Run("success: returns 200 OK with confirmed booking", func() {
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), bookingID, s.userID, "pi_123").
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("confirmed", response.Status)
	})

	s.Run("error: 400 Bad Request when payment_ref missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "booking not found", commandsError: commands.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "not booking party", commandsError: commands.ErrNotBookingParty, expectedStatus: http.StatusForbidden},
			{name: "lifecycle violation", commandsError: errors.New("only pending bookings can be confirmed"), expectedStatus: http.StatusConflict},
			{name: "database failure", commandsError: commands.ErrDatabaseOperationFailed, expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), bookingID, s.userID, "pi_123").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.userID, user.RoleRenter).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 409 Conflict when inside the cancellation cutoff", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.userID, user.RoleRenter).
			Return(errors.New("cancellation window has passed")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 403 Forbidden for someone else's booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.userID, user.RoleRenter).
			Return(commands.ErrNotBookingParty).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 500 with a generic message on database failure", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.userID, user.RoleRenter).
			Return(errs.Mark(errors.New("connection refused"), commands.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection refused")
	})
}
