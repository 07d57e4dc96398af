package api

import (
	"net/http"

	resdto "bookcars/internal/handler/dto/response"
	"bookcars/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminQueries queries.AdminQueries
}

func NewAdminHandler(adminQueries queries.AdminQueries) *AdminHandler {
	return &AdminHandler{adminQueries: adminQueries}
}

// @Summary Dashboard
// @Description Marketplace-wide aggregates for the back office
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DashboardResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	view, err := h.adminQueries.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDashboardView(view))
}
