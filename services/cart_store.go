package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/repository"
)

// CartStore is the single source of truth for one session's cart. Lines
// are keyed by (product id, size). Every mutation persists the item lines
// through the injected strategy; the open/closed panel flag is transient
// and always starts closed.
type CartStore struct {
	mu      sync.Mutex
	items   []models.CartItem
	isOpen  bool
	persist repository.CartPersistence
	logger  *zap.Logger
}

// NewCartStore restores prior items from persistence. A load failure or an
// unreadable record starts the cart empty rather than failing.
func NewCartStore(ctx context.Context, persist repository.CartPersistence, logger *zap.Logger) *CartStore {
	store := &CartStore{persist: persist, logger: logger}

	items, err := persist.Load(ctx)
	if err != nil {
		logger.Warn("failed to load persisted cart, starting empty", zap.Error(err))
		return store
	}
	store.items = items
	return store
}

// AddItem merges into an existing line for the same (product id, size),
// otherwise appends a new line with quantity 1. Opens the cart panel.
func (s *CartStore) AddItem(ctx context.Context, product models.Product, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID && s.items[i].Size == size {
			s.items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, models.CartItem{Product: product, Quantity: 1, Size: size})
	}
	s.isOpen = true
	s.save(ctx)
}

// RemoveItem deletes the matching line. Absent lines are a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, productID, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID, size)
	s.save(ctx)
}

// UpdateQuantity sets a line's quantity to an absolute value. A value of
// zero or below removes the line entirely.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID, size)
		s.save(ctx)
		return
	}

	for i := range s.items {
		if s.items[i].Product.ID == productID && s.items[i].Size == size {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.save(ctx)
}

// ClearCart empties all lines. The cart panel stays as it was.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.save(ctx)
}

func (s *CartStore) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
}

func (s *CartStore) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
}

func (s *CartStore) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
}

// IsOpen reports the transient cart panel state.
func (s *CartStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems sums quantities across all lines, for badge display.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the subtotal in cents, exclusive of shipping.
func (s *CartStore) TotalPrice() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Subtotal(s.items)
}

func (s *CartStore) removeLocked(productID, size string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if !(item.Product.ID == productID && item.Size == size) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// save persists the item lines only. Persistence failures are logged and
// never block the mutation: the in-memory state is authoritative for the
// session.
func (s *CartStore) save(ctx context.Context) {
	if err := s.persist.Save(ctx, s.items); err != nil {
		s.logger.Error("failed to persist cart", zap.Error(err))
	}
}
