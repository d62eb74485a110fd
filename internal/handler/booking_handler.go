package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/middleware"
	"github.com/Dannesh12/urban-slot-finder/internal/service"
	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookings service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List returns the caller's bookings
// GET /api/v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		handleError(c, domain.ErrNotAuthenticated)
		return
	}
	response.Success(c, h.bookings.ListForUser(c.Request.Context(), user.ID))
}

// Create books a slot
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	booking, err := h.bookings.Create(c.Request.Context(), user, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, booking)
}

// UpdateStatus moves a booking through its lifecycle
// POST /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	booking, err := h.bookings.Transition(c.Request.Context(), user, c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, booking)
}

// UpdatePayment records a payment outcome
// POST /api/v1/bookings/:id/payment
func (h *BookingHandler) UpdatePayment(c *gin.Context) {
	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	booking, err := h.bookings.SetPaymentStatus(c.Request.Context(), user, c.Param("id"), domain.PaymentStatus(req.PaymentStatus))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, booking)
}

// Delete removes a booking
// DELETE /api/v1/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if err := h.bookings.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id"), "deleted": true})
}
