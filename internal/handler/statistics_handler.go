package handler

import (
	"net/http"
	"strconv"
	"time"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/profit"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/statistics")
	{
		statsGroup.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetDashboard)
	}
}

// @Summary      Get dashboard statistics
// @Description  Period buckets, annual totals, month-over-month growth, top clients/routes and container distribution for one reporting year
// @Tags         statistics
// @Produce      json
// @Param        year        query int    false "Reporting year (defaults to current)"
// @Param        granularity query string false "day | week | month (defaults to month)"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "Invalid year or granularity"
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /api/statistics [get]
func (h *StatisticsHandler) GetDashboard(c *gin.Context) {
	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid year"))
			return
		}
		year = parsed
	}

	granularity := profit.Granularity(c.DefaultQuery("granularity", string(profit.GranularityMonth)))

	dashboard, err := h.statisticsService.GetDashboard(c.Request.Context(), year, granularity)
	if err != nil {
		if !granularity.Valid() {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
