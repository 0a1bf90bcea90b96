package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/waatech/merch-backend/models"
)

// Flat-rate shipping in cents. Standard is pre-added on the Coinbase path;
// the Stripe path offers both tiers as provider-native options instead.
const (
	ShippingStandardCents = 599
	ShippingExpressCents  = 1499
)

// CheckoutSession is a created provider session. Demo marks a locally
// simulated session created without contacting the provider.
type CheckoutSession struct {
	URL  string `json:"url"`
	Demo bool   `json:"demo,omitempty"`
}

// CheckoutProvider creates a hosted payment session for a cart snapshot.
// Implementations enter demo mode when their credential is absent.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, items []models.CartItem) (*CheckoutSession, error)
}

// itemLabel renders "Name (Size)" for line items and descriptions.
func itemLabel(item models.CartItem) string {
	if item.Size != "" {
		return fmt.Sprintf("%s (%s)", item.Product.Name, item.Size)
	}
	return item.Product.Name
}

// orderDescription renders "2x WAA Classic Tee - Black (M), 1x ..." for
// provider charge descriptions.
func orderDescription(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, itemLabel(item)))
	}
	return strings.Join(parts, ", ")
}

// serializeItems embeds a compact copy of the order items in provider
// metadata for later webhook reconciliation.
func serializeItems(items []models.CartItem) string {
	type metaItem struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Size     string `json:"size,omitempty"`
		Quantity int    `json:"quantity"`
		Price    int    `json:"price"`
	}
	meta := make([]metaItem, 0, len(items))
	for _, item := range items {
		meta = append(meta, metaItem{
			ID:       item.Product.ID,
			Name:     item.Product.Name,
			Size:     item.Size,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
		})
	}
	data, _ := json.Marshal(meta)
	return string(data)
}
