package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waatech/merch-backend/models"
)

// CartPersistence is the durable storage strategy injected into a cart
// store. Only the item lines are persisted; UI state never is.
type CartPersistence interface {
	Load(ctx context.Context) ([]models.CartItem, error)
	Save(ctx context.Context, items []models.CartItem) error
}

// persistedCart is the stored record shape. No version field: a reader
// that cannot decode it treats the cart as absent.
type persistedCart struct {
	Items []models.CartItem `json:"items"`
}

// RedisCartPersistence stores one cart per session as a JSON blob with TTL.
type RedisCartPersistence struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisCartPersistence(client *redis.Client, sessionID string, ttl time.Duration) *RedisCartPersistence {
	return &RedisCartPersistence{
		client:    client,
		sessionID: sessionID,
		ttl:       ttl,
	}
}

func (r *RedisCartPersistence) key() string {
	return fmt.Sprintf("waa:cart:%s", r.sessionID)
}

func (r *RedisCartPersistence) Load(ctx context.Context) ([]models.CartItem, error) {
	data, err := r.client.Get(ctx, r.key()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stored persistedCart
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		// Incompatible shape: start empty rather than fail.
		return nil, nil
	}
	return stored.Items, nil
}

func (r *RedisCartPersistence) Save(ctx context.Context, items []models.CartItem) error {
	data, err := json.Marshal(persistedCart{Items: items})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(), data, r.ttl).Err()
}

// MemoryCartPersistence is an in-memory strategy for tests and for running
// without Redis. Safe for concurrent use.
type MemoryCartPersistence struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewMemoryCartPersistence() *MemoryCartPersistence {
	return &MemoryCartPersistence{}
}

func (m *MemoryCartPersistence) Load(_ context.Context) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CartItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryCartPersistence) Save(_ context.Context, items []models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]models.CartItem, len(items))
	copy(m.items, items)
	return nil
}
