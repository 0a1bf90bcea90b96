package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/services"
)

type MembershipController struct {
	membership *services.MembershipService
	logger     *zap.Logger
}

func NewMembershipController(membership *services.MembershipService, logger *zap.Logger) *MembershipController {
	return &MembershipController{membership: membership, logger: logger}
}

// CheckMembership handles GET /api/membership?address=. A chain read
// failure reports non-member rather than an error.
func (mc *MembershipController) CheckMembership(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address required"})
		return
	}

	result := mc.membership.CheckMembership(c.Request.Context(), address)
	if !result.IsMember {
		c.JSON(http.StatusOK, gin.H{"isMember": false, "address": address})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckRedemption handles GET /api/redemption?address=.
func (mc *MembershipController) CheckRedemption(c *gin.Context) {
	address := strings.ToLower(c.Query("address"))
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address required"})
		return
	}

	hasRedeemed := mc.membership.CheckRedemption(c.Request.Context(), address)
	c.JSON(http.StatusOK, gin.H{"hasRedeemed": hasRedeemed, "address": address})
}

type markRedeemedRequest struct {
	Address string `json:"address"`
}

// MarkRedeemed handles POST /api/redemption. Idempotent per address.
func (mc *MembershipController) MarkRedeemed(c *gin.Context) {
	var req markRedeemedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address required"})
		return
	}

	normalized := strings.ToLower(req.Address)
	if err := mc.membership.MarkRedeemed(c.Request.Context(), normalized); err != nil {
		mc.logger.Error("failed to mark redemption", zap.String("address", normalized), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark redemption"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "address": normalized})
}
