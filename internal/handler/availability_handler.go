package handler

import (
	"net/http"

	"rentwheels/internal/service"
	"rentwheels/pkg/response"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityService service.AvailabilityService
}

func NewAvailabilityHandler(availabilityService service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

func (h *AvailabilityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/availability", h.CheckAvailability)
}

// CheckAvailability reports per-vehicle free units for a date range
// @Summary      Check fleet availability
// @Description  Returns remaining units per vehicle for the inclusive date window, with the next free date for fully booked vehicles
// @Tags         availability
// @Produce      json
// @Param        start_date query string true  "Start date (YYYY-MM-DD)"
// @Param        end_date   query string true  "End date (YYYY-MM-DD)"
// @Param        vehicle    query string false "Restrict to one vehicle slug"
// @Success      200 {object} response.Response{data=[]service.AvailabilityEntry}
// @Failure      400 {object} response.Response "Malformed or reversed dates"
// @Router       /api/availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	query := service.AvailabilityQuery{
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
		VehicleSlug: c.Query("vehicle"),
	}
	if query.StartDate == "" || query.EndDate == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "start_date and end_date are required"))
		return
	}

	results, err := h.availabilityService.Check(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, results))
}
