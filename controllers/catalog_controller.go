package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waatech/merch-backend/models"
)

type CatalogController struct{}

func NewCatalogController() *CatalogController {
	return &CatalogController{}
}

// ListProducts returns the full catalog, optionally filtered by category.
// The welcome package is listed separately so storefronts can gate it.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	products := models.Products
	if category := c.Query("category"); category != "" {
		products = models.GetProductsByCategory(category)
	}
	c.JSON(http.StatusOK, gin.H{
		"products":       products,
		"welcomePackage": models.WelcomePackage,
	})
}

// GetProduct returns one catalog entry by ID.
func (cc *CatalogController) GetProduct(c *gin.Context) {
	product, ok := models.GetProductByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
