package handler

import (
	"errors"
	"net/http"

	"rentwheels/internal/engine"
	"rentwheels/internal/middleware"
	"rentwheels/internal/service"
	"rentwheels/pkg/pagination"
	"rentwheels/pkg/response"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Storefront: anyone may submit a booking request
	router.POST("/api/bookings", h.CreateBooking)
	router.GET("/api/bookings/:code", h.TrackBooking)

	// Admin console
	admin := router.Group("/api/admin/bookings")
	admin.Use(middleware.RequireRole("admin", "staff"))
	{
		admin.GET("", h.ListBookings)
		admin.GET("/:id", h.GetBooking)
		admin.PATCH("/:id/status", h.UpdateStatus)
	}
}

// CreateBooking records a booking request with a frozen price snapshot
// @Summary      Create a booking
// @Description  Prices the trip, re-checks capacity transactionally, and records the booking as PENDING
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBookingRequest  true  "Booking details"
// @Success      201      {object}  response.Response{data=model.Booking}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response "No active rate card"
// @Failure      409      {object}  response.Response "No free units"
// @Router       /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleUnavailable):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		case errors.Is(err, engine.ErrRateNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Pricing unavailable for this vehicle, please contact support"))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated,
		"Booking received, our team will confirm it shortly.", booking))
}

// TrackBooking looks a booking up by its customer-facing code
// @Summary      Track a booking
// @Tags         bookings
// @Produce      json
// @Param        code path string true "Booking code (RW-XXXXXXXX)"
// @Success      200 {object} response.Response{data=model.Booking}
// @Failure      404 {object} response.Response
// @Router       /api/bookings/{code} [get]
func (h *BookingHandler) TrackBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBookingByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// ListBookings lists bookings for the admin console
// @Summary      List bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        status query string false "Filter by status (PENDING, CONFIRMED, COMPLETED, CANCELLED)"
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Items per page"
// @Success      200 {object} response.Response{data=object}
// @Router       /api/admin/bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	params := pagination.Parse(c)
	status := c.Query("status")

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), status, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(bookings, total, params)))
}

// GetBooking fetches one booking by id
// @Summary      Get a booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Booking id"
// @Success      200 {object} response.Response{data=model.Booking}
// @Failure      404 {object} response.Response
// @Router       /api/admin/bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}

// UpdateStatus moves a booking through its lifecycle
// @Summary      Update booking status
// @Description  Applies a lifecycle transition; confirming re-checks vehicle capacity first
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                              true "Booking id"
// @Param        payload  body  service.UpdateBookingStatusRequest  true "Target status"
// @Success      200 {object} response.Response{data=model.Booking}
// @Failure      400 {object} response.Response "Illegal transition"
// @Failure      409 {object} response.Response "No free units"
// @Router       /api/admin/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	userID := middleware.UserIDFromContext(c)
	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		case errors.Is(err, service.ErrVehicleUnavailable):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}
