package handler

import (
	"errors"
	"net/http"

	"rentwheels/internal/middleware"
	"rentwheels/internal/service"
	"rentwheels/pkg/pagination"
	"rentwheels/pkg/response"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService service.VehicleService
}

func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Storefront: active vehicles only
	router.GET("/api/vehicles", h.ListPublicVehicles)

	// Admin console fleet management
	admin := router.Group("/api/admin/vehicles")
	admin.Use(middleware.RequireRole("admin", "staff"))
	{
		admin.GET("", h.ListVehicles)
		admin.POST("", h.CreateVehicle)
		admin.GET("/:slug", h.GetVehicle)
		admin.PUT("/:slug", h.UpdateVehicle)
		admin.DELETE("/:slug", h.DeleteVehicle)

		admin.PUT("/:slug/inventory", h.SetInventory)
		admin.GET("/:slug/rate-cards", h.ListRateCards)
		admin.POST("/:slug/rate-cards", h.CreateRateCard)
	}

	inventory := router.Group("/api/admin/inventory")
	inventory.Use(middleware.RequireRole("admin", "staff"))
	{
		inventory.GET("", h.ListInventory)
	}
}

// ListPublicVehicles lists active vehicles for the storefront picker
// @Summary      List rentable vehicles
// @Tags         vehicles
// @Produce      json
// @Param        page   query int false "Page number"
// @Param        limit  query int false "Items per page"
// @Success      200 {object} response.Response{data=object}
// @Router       /api/vehicles [get]
func (h *VehicleHandler) ListPublicVehicles(c *gin.Context) {
	h.listVehicles(c, true)
}

// ListVehicles lists every vehicle, active or not
// @Summary      List all vehicles
// @Tags         vehicles
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.Response{data=object}
// @Router       /api/admin/vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	h.listVehicles(c, false)
}

func (h *VehicleHandler) listVehicles(c *gin.Context, activeOnly bool) {
	params := pagination.Parse(c)

	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), activeOnly, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(vehicles, total, params)))
}

// CreateVehicle adds a vehicle to the fleet
// @Summary      Create a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateVehicleRequest true "Vehicle"
// @Success      201 {object} response.Response{data=model.Vehicle}
// @Failure      400 {object} response.Response
// @Router       /api/admin/vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req service.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vehicle))
}

// GetVehicle fetches one vehicle by slug
// @Summary      Get a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Produce      json
// @Param        slug path string true "Vehicle slug"
// @Success      200 {object} response.Response{data=model.Vehicle}
// @Failure      404 {object} response.Response
// @Router       /api/admin/vehicles/{slug} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeVehicleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// UpdateVehicle updates vehicle details
// @Summary      Update a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug    path string                       true "Vehicle slug"
// @Param        payload body service.UpdateVehicleRequest true "Changes"
// @Success      200 {object} response.Response{data=model.Vehicle}
// @Router       /api/admin/vehicles/{slug} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req service.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("slug"), req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// DeleteVehicle removes a vehicle from the fleet
// @Summary      Delete a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Produce      json
// @Param        slug path string true "Vehicle slug"
// @Success      200 {object} response.Response
// @Router       /api/admin/vehicles/{slug} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("slug")); err != nil {
		writeVehicleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": c.Param("slug")}))
}

// SetInventory upserts the unit counts for a vehicle
// @Summary      Set fleet inventory
// @Tags         vehicles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug    path string                      true "Vehicle slug"
// @Param        payload body service.SetInventoryRequest true "Unit counts"
// @Success      200 {object} response.Response{data=model.FleetInventory}
// @Router       /api/admin/vehicles/{slug}/inventory [put]
func (h *VehicleHandler) SetInventory(c *gin.Context) {
	var req service.SetInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	entry, err := h.vehicleService.SetInventory(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("slug"), req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}

// ListInventory lists every fleet inventory row
// @Summary      List fleet inventory
// @Tags         vehicles
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.FleetInventory}
// @Router       /api/admin/inventory [get]
func (h *VehicleHandler) ListInventory(c *gin.Context) {
	entries, err := h.vehicleService.ListInventory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// CreateRateCard replaces the active rate card for a variant
// @Summary      Create a rate card
// @Description  Retires the current active card of the same variant and activates the new one
// @Tags         vehicles
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug    path string                       true "Vehicle slug"
// @Param        payload body service.CreateRateCardRequest true "Rate card"
// @Success      201 {object} response.Response{data=model.RateCard}
// @Failure      400 {object} response.Response
// @Router       /api/admin/vehicles/{slug}/rate-cards [post]
func (h *VehicleHandler) CreateRateCard(c *gin.Context) {
	var req service.CreateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	card, err := h.vehicleService.CreateRateCard(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("slug"), req)
	if err != nil {
		writeVehicleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, card))
}

// ListRateCards lists all rate cards for a vehicle, newest first
// @Summary      List rate cards
// @Tags         vehicles
// @Security     BearerAuth
// @Produce      json
// @Param        slug path string true "Vehicle slug"
// @Success      200 {object} response.Response{data=[]model.RateCard}
// @Router       /api/admin/vehicles/{slug}/rate-cards [get]
func (h *VehicleHandler) ListRateCards(c *gin.Context) {
	cards, err := h.vehicleService.ListRateCards(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cards))
}

func writeVehicleError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrVehicleNotFound) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
}
