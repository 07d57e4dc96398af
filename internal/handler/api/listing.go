package api

import (
	"net/http"
	"strconv"
	"time"

	"bookcars/internal/domain/user"
	reqdto "bookcars/internal/handler/dto/request"
	resdto "bookcars/internal/handler/dto/response"
	"bookcars/internal/handler/middleware"
	"bookcars/internal/infra"
	"bookcars/internal/usecase/commands"
	"bookcars/internal/usecase/queries"

	errors "github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultSlotGranularity = time.Hour

type ListingHandler struct {
	listingCommands commands.ListingCommands
	listingQueries  queries.ListingQueries
	reviewQueries   queries.ReviewQueries
}

func NewListingHandler(
	listingCommands commands.ListingCommands,
	listingQueries queries.ListingQueries,
	reviewQueries queries.ReviewQueries,
) *ListingHandler {
	return &ListingHandler{
		listingCommands: listingCommands,
		listingQueries:  listingQueries,
		reviewQueries:   reviewQueries,
	}
}

// @Summary Search listings
// @Description Search the catalog by city, period, capacity and fuel type
// @Tags listings
// @Produce json
// @Param city query string false "City name"
// @Param from query string false "Desired pickup time (RFC3339)"
// @Param till query string false "Desired dropoff time (RFC3339)"
// @Param capacity query int false "Minimum seat count"
// @Param fuel_type query string false "Fuel type"
// @Success 200 {array} resdto.ListingListResponse
// @Router /listings [get]
func (h *ListingHandler) Search(c *gin.Context) {
	params, err := parseSearchParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.listingQueries.Search(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := make([]*resdto.ListingListResponse, len(items))
	for i, item := range items {
		resp[i] = resdto.FromListingListItem(item)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	view, err := h.listingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Listing calendar
// @Description Day-by-day availability classification for one month
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {array} resdto.CalendarDayResponse
// @Router /listings/{id}/calendar [get]
func (h *ListingHandler) Calendar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	days, err := h.listingQueries.Calendar(c.Request.Context(), id, year, time.Month(month))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := make([]resdto.CalendarDayResponse, len(days))
	for i, d := range days {
		resp[i] = resdto.FromCalendarDay(d)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Blocked pickup slots
// @Description Slot start times on a day that collide with existing bookings
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Param day query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} resdto.BlockedSlotsResponse
// @Router /listings/{id}/blocked-slots [get]
func (h *ListingHandler) BlockedSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day, expected YYYY-MM-DD"})
		return
	}

	blocked, err := h.listingQueries.BlockedSlots(c.Request.Context(), id, day, defaultSlotGranularity)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.BlockedSlotsResponse{
		Day:     day.Format("2006-01-02"),
		Blocked: blocked,
	})
}

// @Summary Quote
// @Description Price a rental period and report whether it is bookable
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Param start query string true "Pickup time (RFC3339)"
// @Param end query string true "Dropoff time (RFC3339)"
// @Success 200 {object} resdto.QuoteResponse
// @Router /listings/{id}/quote [get]
func (h *ListingHandler) Quote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time"})
		return
	}

	quote, err := h.listingQueries.Quote(c.Request.Context(), id, start, end)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental period"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(quote))
}

// @Summary Listing reviews
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {array} resdto.ReviewResponse
// @Router /listings/{id}/reviews [get]
func (h *ListingHandler) Reviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	limit, offset := parsePagination(c)
	views, err := h.reviewQueries.ListByListing(c.Request.Context(), id, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resp := make([]*resdto.ReviewResponse, len(views))
	for i, v := range views {
		resp[i] = resdto.FromReviewView(v)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Create listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.listingCommands.CreateListing(c.Request.Context(), req, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCannotListVehicles):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only owners can list vehicles"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Listing validation failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromListingView(view))
}

// @Summary Update listing
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body reqdto.UpdateListingRequest true "Update request"
// @Success 200 {object} resdto.ListingResponse
// @Router /listings/{id} [patch]
func (h *ListingHandler) Update(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	var req reqdto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.listingCommands.UpdateListing(c.Request.Context(), id, req, userID, role)
	if err != nil {
		h.respondListingCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary Delete listing
// @Tags listings
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	userID, role, ok := actor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	if err := h.listingCommands.DeleteListing(c.Request.Context(), id, userID, role); err != nil {
		if errors.Is(err, commands.ErrListingHasBookings) {
			c.JSON(http.StatusConflict, gin.H{"error": "Listing has active bookings"})
			return
		}
		if errors.Is(err, commands.ErrListingHasHistory) {
			c.JSON(http.StatusConflict, gin.H{"error": "Listing has booking or review history"})
			return
		}
		h.respondListingCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ListingHandler) respondListingCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, commands.ErrNotListingOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Listing does not belong to you"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Listing validation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func actor(c *gin.Context) (uuid.UUID, user.Role, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, role, true
}

func parseSearchParams(c *gin.Context) (queries.SearchListingsParams, error) {
	var params queries.SearchListingsParams

	if city := c.Query("city"); city != "" {
		params.City = &city
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return params, errors.New("invalid from time")
		}
		params.From = &t
	}
	if till := c.Query("till"); till != "" {
		t, err := time.Parse(time.RFC3339, till)
		if err != nil {
			return params, errors.New("invalid till time")
		}
		params.Till = &t
	}
	if capStr := c.Query("capacity"); capStr != "" {
		n, err := strconv.Atoi(capStr)
		if err != nil || n < 1 {
			return params, errors.New("invalid capacity")
		}
		params.MinCapacity = &n
	}
	if fuel := c.Query("fuel_type"); fuel != "" {
		params.FuelType = &fuel
	}

	params.Limit, params.Offset = parsePagination(c)
	return params, nil
}

func parsePagination(c *gin.Context) (limit, offset int32) {
	limit = 50
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 200 {
			limit = int32(n)
		}
	}
	if s := c.Query("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			offset = int32(n)
		}
	}
	return limit, offset
}
