package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/repository"
	"github.com/waatech/merch-backend/services"
)

// PersistenceFactory returns the persistence strategy for one session.
type PersistenceFactory func(sessionID string) repository.CartPersistence

// CartController exposes the session cart over HTTP. Each request rebuilds
// the store from the session's persisted lines, applies one mutation, and
// responds with the resulting cart state.
type CartController struct {
	persistFor PersistenceFactory
	membership *services.MembershipService
	logger     *zap.Logger
}

func NewCartController(persistFor PersistenceFactory, membership *services.MembershipService, logger *zap.Logger) *CartController {
	return &CartController{
		persistFor: persistFor,
		membership: membership,
		logger:     logger,
	}
}

type addItemRequest struct {
	ProductID     string `json:"product_id" binding:"required"`
	Size          string `json:"size"`
	WalletAddress string `json:"wallet_address"`
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

func (cc *CartController) store(c *gin.Context) (*services.CartStore, bool) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session"})
		return nil, false
	}
	return services.NewCartStore(c.Request.Context(), cc.persistFor(sessionID), cc.logger), true
}

func cartResponse(store *services.CartStore) gin.H {
	return gin.H{
		"items":      store.Items(),
		"isOpen":     store.IsOpen(),
		"totalItems": store.TotalItems(),
		"totalPrice": store.TotalPrice(),
	}
}

// GetCart returns the current cart for a session.
func (cc *CartController) GetCart(c *gin.Context) {
	store, ok := cc.store(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartResponse(store))
}

// AddItem adds one unit of a product, merging into an existing line for
// the same product and size. Member-exclusive products require a wallet
// that holds a membership token and has not redeemed yet.
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	product, found := models.GetProductByID(req.ProductID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if !product.InStock {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product out of stock"})
		return
	}
	if req.Size != "" && !validSize(product, req.Size) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
		return
	}

	if product.MemberExclusive {
		if req.WalletAddress == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "membership required"})
			return
		}
		ctx := c.Request.Context()
		result := cc.membership.CheckMembership(ctx, req.WalletAddress)
		if !result.IsMember {
			c.JSON(http.StatusForbidden, gin.H{"error": "membership required"})
			return
		}
		if cc.membership.CheckRedemption(ctx, req.WalletAddress) {
			c.JSON(http.StatusForbidden, gin.H{"error": "welcome package already redeemed"})
			return
		}
	}

	store, ok := cc.store(c)
	if !ok {
		return
	}
	store.AddItem(c.Request.Context(), product, req.Size)
	c.JSON(http.StatusOK, cartResponse(store))
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	store, ok := cc.store(c)
	if !ok {
		return
	}
	store.UpdateQuantity(c.Request.Context(), req.ProductID, req.Quantity, req.Size)
	c.JSON(http.StatusOK, cartResponse(store))
}

// RemoveItem deletes a line. Removing an absent line is not an error.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID := c.Query("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
		return
	}

	store, ok := cc.store(c)
	if !ok {
		return
	}
	store.RemoveItem(c.Request.Context(), productID, c.Query("size"))
	c.JSON(http.StatusOK, cartResponse(store))
}

// ClearCart removes all lines from the session cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	store, ok := cc.store(c)
	if !ok {
		return
	}
	store.ClearCart(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

func validSize(product models.Product, size string) bool {
	for _, s := range product.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
