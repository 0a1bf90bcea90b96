package models

// CartItem is one cart line. Lines are keyed by (product id, size): two
// additions of the same pair merge into one line, different sizes stay
// separate lines.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
}

// LineTotal returns price * quantity in cents.
func (i CartItem) LineTotal() int {
	return i.Product.Price * i.Quantity
}

// Subtotal sums price * quantity over the given items, in cents.
func Subtotal(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
