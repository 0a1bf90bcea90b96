package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/waatech/merch-backend/errors"
	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/services"
)

// CheckoutController turns a cart snapshot into a provider session. The
// two providers share one contract; demo mode is handled inside each
// provider and is indistinguishable here beyond the demo marker.
type CheckoutController struct {
	stripeProvider   services.CheckoutProvider
	coinbaseProvider services.CheckoutProvider
	logger           *zap.Logger
}

func NewCheckoutController(stripeProvider, coinbaseProvider services.CheckoutProvider, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		stripeProvider:   stripeProvider,
		coinbaseProvider: coinbaseProvider,
		logger:           logger,
	}
}

type checkoutRequest struct {
	Items []models.CartItem `json:"items"`
}

// CreateStripeSession handles POST /api/checkout/stripe.
func (cc *CheckoutController) CreateStripeSession(c *gin.Context) {
	cc.createSession(c, cc.stripeProvider, "Failed to create checkout session")
}

// CreateCryptoSession handles POST /api/checkout/crypto.
func (cc *CheckoutController) CreateCryptoSession(c *gin.Context) {
	cc.createSession(c, cc.coinbaseProvider, "Failed to create crypto checkout session")
}

func (cc *CheckoutController) createSession(c *gin.Context, provider services.CheckoutProvider, failureMsg string) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items in cart"})
		return
	}

	session, err := provider.CreateSession(c.Request.Context(), req.Items)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		// Provider details stay server-side; the caller gets a generic
		// message and no automatic retry.
		cc.logger.Error("checkout session creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg})
		return
	}

	if session.Demo {
		c.JSON(http.StatusOK, gin.H{"url": session.URL, "demo": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}
