package handler

import (
	"errors"
	"net/http"

	"rentwheels/internal/engine"
	"rentwheels/internal/service"
	"rentwheels/pkg/response"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quoteService service.QuoteService
}

func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	quotes := router.Group("/api/quotes")
	{
		quotes.POST("/self-drive", h.QuoteSelfDrive)
		quotes.POST("/chauffeur", h.QuoteChauffeur)
	}
}

// QuoteSelfDrive prices a self-drive trip
// @Summary      Price a self-drive rental
// @Description  Computes a flat distance-tier quote with tax for the requested vehicle and dates
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SelfDriveQuoteRequest  true  "Trip description"
// @Success      200      {object}  response.Response{data=service.QuoteResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response "No active rate card"
// @Router       /api/quotes/self-drive [post]
func (h *QuoteHandler) QuoteSelfDrive(c *gin.Context) {
	var req service.SelfDriveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quote, err := h.quoteService.QuoteSelfDrive(c.Request.Context(), req)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quote))
}

// QuoteChauffeur prices a chauffeur-driven trip
// @Summary      Price a chauffeur-driven trip
// @Description  Computes a local package or outstation per-km quote with driver allowance and tax
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ChauffeurQuoteRequest  true  "Trip description"
// @Success      200      {object}  response.Response{data=service.QuoteResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response "No active rate card"
// @Router       /api/quotes/chauffeur [post]
func (h *QuoteHandler) QuoteChauffeur(c *gin.Context) {
	var req service.ChauffeurQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	quote, err := h.quoteService.QuoteChauffeur(c.Request.Context(), req)
	if err != nil {
		writeQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, quote))
}

// writeQuoteError maps engine errors onto HTTP statuses. A missing rate card
// is 404 "pricing unavailable" so the storefront renders a contact-support
// message instead of a zero price.
func writeQuoteError(c *gin.Context, err error) {
	if errors.Is(err, engine.ErrRateNotFound) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Pricing unavailable for this vehicle, please contact support"))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
}
