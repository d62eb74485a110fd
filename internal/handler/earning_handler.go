package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Dannesh12/urban-slot-finder/internal/dto"
	"github.com/Dannesh12/urban-slot-finder/internal/service"
	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// EarningHandler handles ads, activation, withdrawal and referral requests
type EarningHandler struct {
	earning service.EarningService
}

// NewEarningHandler creates a new EarningHandler
func NewEarningHandler(earning service.EarningService) *EarningHandler {
	return &EarningHandler{earning: earning}
}

// ListAds returns the ads that can be watched
// GET /api/v1/ads
func (h *EarningHandler) ListAds(c *gin.Context) {
	response.Success(c, h.earning.ListAds(c.Request.Context()))
}

// WatchAd credits the reward of an ad
// POST /api/v1/ads/:id/watch
func (h *EarningHandler) WatchAd(c *gin.Context) {
	result, err := h.earning.WatchAd(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, result)
}

// Activate pays the activation fee
// POST /api/v1/activation
func (h *EarningHandler) Activate(c *gin.Context) {
	var req dto.ActivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.earning.Activate(c.Request.Context(), req.Method)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// ListWithdrawals returns withdrawal requests visible to the caller
// GET /api/v1/withdrawals
func (h *EarningHandler) ListWithdrawals(c *gin.Context) {
	items, err := h.earning.ListWithdrawals(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

// RequestWithdrawal asks for a payout
// POST /api/v1/withdrawals
func (h *EarningHandler) RequestWithdrawal(c *gin.Context) {
	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	w, err := h.earning.RequestWithdrawal(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, w)
}

// ProcessWithdrawal approves or rejects a payout
// POST /api/v1/withdrawals/:id/process
func (h *EarningHandler) ProcessWithdrawal(c *gin.Context) {
	var req dto.ProcessWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	w, err := h.earning.ProcessWithdrawal(c.Request.Context(), c.Param("id"), *req.Approve)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, w)
}

// Referrals returns the caller's referral summary
// GET /api/v1/referrals
func (h *EarningHandler) Referrals(c *gin.Context) {
	result, err := h.earning.Referrals(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

// ReferralQRCode renders the referral link as a PNG
// GET /api/v1/referrals/qr?size=256
func (h *EarningHandler) ReferralQRCode(c *gin.Context) {
	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxQRSize {
			response.BadRequest(c, "size must be between 1 and 1024")
			return
		}
		size = n
	}

	png, err := h.earning.ReferralQRCode(c.Request.Context(), size)
	if err != nil {
		handleError(c, err)
		return
	}
	response.PNG(c, png)
}
