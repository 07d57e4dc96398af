package api

import (
	"net/http"

	reqdto "bookcars/internal/handler/dto/request"
	resdto "bookcars/internal/handler/dto/response"
	"bookcars/internal/handler/middleware"
	"bookcars/internal/usecase/commands"

	errors "github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewCommands commands.ReviewCommands
}

func NewReviewHandler(reviewCommands commands.ReviewCommands) *ReviewHandler {
	return &ReviewHandler{reviewCommands: reviewCommands}
}

// @Summary Create review
// @Description Rate a completed booking
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Review request"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entity, err := h.reviewCommands.CreateReview(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, commands.ErrNotReviewer):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the renter can review the booking"})
		case errors.Is(err, commands.ErrBookingNotEnded):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only completed bookings can be reviewed"})
		case errors.Is(err, commands.ErrDuplicateReview):
			c.JSON(http.StatusConflict, gin.H{"error": "Booking has already been reviewed"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Review validation failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReviewEntity(entity))
}
