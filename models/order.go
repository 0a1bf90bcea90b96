package models

import "time"

// OrderSubmission is the manual order request body, used when no payment
// provider is configured or for pay-on-pickup flows.
type OrderSubmission struct {
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"required"`
	Phone         string     `json:"phone,omitempty"`
	Items         []CartItem `json:"items" validate:"required,min=1"`
	WalletAddress string     `json:"walletAddress,omitempty"`
}

// Order is constructed at submission time. Orders are not persisted as a
// queryable entity: they exist as notification payloads and as the orderId
// returned to the customer.
type Order struct {
	OrderID        string     `json:"orderId"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	WalletAddress  string     `json:"walletAddress,omitempty"`
	Items          []CartItem `json:"items"`
	Subtotal       int        `json:"subtotal"`
	HasFreePackage bool       `json:"hasFreePackage"`
	PlacedAt       time.Time  `json:"placedAt"`
}

// OrderResult is the response for a successfully placed order.
type OrderResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}
