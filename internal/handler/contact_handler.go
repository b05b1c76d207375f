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

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/contact", h.CreateMessage)

	admin := router.Group("/api/admin/contact-messages")
	admin.Use(middleware.RequireRole("admin", "staff"))
	{
		admin.GET("", h.ListMessages)
		admin.PATCH("/:id/read", h.MarkRead)
	}
}

// CreateMessage accepts a storefront enquiry
// @Summary      Submit a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        payload body service.CreateContactRequest true "Message"
// @Success      201 {object} response.Response{data=model.ContactMessage}
// @Failure      400 {object} response.Response
// @Router       /api/contact [post]
func (h *ContactHandler) CreateMessage(c *gin.Context) {
	var req service.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	msg, err := h.contactService.CreateMessage(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated,
		"Thanks for reaching out, we will get back to you shortly.", msg))
}

// ListMessages lists enquiries for the admin inbox
// @Summary      List contact messages
// @Tags         contact
// @Security     BearerAuth
// @Produce      json
// @Param        unread query bool false "Only unread messages"
// @Param        page   query int  false "Page number"
// @Param        limit  query int  false "Items per page"
// @Success      200 {object} response.Response{data=object}
// @Router       /api/admin/contact-messages [get]
func (h *ContactHandler) ListMessages(c *gin.Context) {
	params := pagination.Parse(c)
	unreadOnly := c.Query("unread") == "true"

	msgs, total, err := h.contactService.ListMessages(c.Request.Context(), unreadOnly, params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.NewPage(msgs, total, params)))
}

// MarkRead marks one enquiry as handled
// @Summary      Mark contact message read
// @Tags         contact
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Message id"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response
// @Router       /api/admin/contact-messages/{id}/read [patch]
func (h *ContactHandler) MarkRead(c *gin.Context) {
	err := h.contactService.MarkRead(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"read": true}))
}
