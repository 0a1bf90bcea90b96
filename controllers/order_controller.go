package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/services"
)

type OrderController struct {
	orders *services.OrderService
	logger *zap.Logger
}

func NewOrderController(orders *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{orders: orders, logger: logger}
}

// SubmitOrder handles POST /api/order. Validation failures return 400;
// a placed order returns 200 regardless of notification outcome.
func (oc *OrderController) SubmitOrder(c *gin.Context) {
	var req models.OrderSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and items are required"})
		return
	}

	result, svcErr := oc.orders.SubmitOrder(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, result)
}
