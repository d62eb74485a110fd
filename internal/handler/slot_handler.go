package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Dannesh12/urban-slot-finder/internal/domain"
	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/middleware"
	"github.com/Dannesh12/urban-slot-finder/internal/service"
	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

// SlotHandler handles parking slot HTTP requests
type SlotHandler struct {
	slots service.SlotService
}

// NewSlotHandler creates a new SlotHandler
func NewSlotHandler(slots service.SlotService) *SlotHandler {
	return &SlotHandler{slots: slots}
}

// List returns all slots, or only the caller's with ?owned=true
// GET /api/v1/slots
func (h *SlotHandler) List(c *gin.Context) {
	if c.Query("owned") == "true" {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			handleError(c, domain.ErrNotAuthenticated)
			return
		}
		response.Success(c, h.slots.ListOwned(c.Request.Context(), user.ID))
		return
	}
	response.Success(c, h.slots.List(c.Request.Context()))
}

// Get returns one slot
// GET /api/v1/slots/:id
func (h *SlotHandler) Get(c *gin.Context) {
	slot, err := h.slots.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, slot)
}

// Create publishes a slot
// POST /api/v1/slots
func (h *SlotHandler) Create(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	slot, err := h.slots.Create(c.Request.Context(), user, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateOccupancy sets how many spaces are taken
// PATCH /api/v1/slots/:id/occupancy
func (h *SlotHandler) UpdateOccupancy(c *gin.Context) {
	var req dto.UpdateOccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	slot, err := h.slots.SetOccupancy(c.Request.Context(), user, c.Param("id"), *req.CurrentOccupancy)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, slot)
}

// SetActive opens or closes a slot for bookings
// PATCH /api/v1/slots/:id/active
func (h *SlotHandler) SetActive(c *gin.Context) {
	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	slot, err := h.slots.SetActive(c.Request.Context(), user, c.Param("id"), *req.IsActive)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, slot)
}

// Delete removes a slot
// DELETE /api/v1/slots/:id
func (h *SlotHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if err := h.slots.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": c.Param("id"), "deleted": true})
}
