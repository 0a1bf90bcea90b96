package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waatech/merch-backend/models"
)

const redemptionKeyPrefix = "waa:redemption:"

// RedemptionLedger records which wallets have already claimed the welcome
// package. Keys are always lowercased addresses.
type RedemptionLedger interface {
	Has(ctx context.Context, address string) (bool, error)
	Mark(ctx context.Context, address string) error
}

// RedisRedemptionLedger is the durable ledger implementation.
type RedisRedemptionLedger struct {
	client *redis.Client
}

func NewRedisRedemptionLedger(client *redis.Client) *RedisRedemptionLedger {
	return &RedisRedemptionLedger{client: client}
}

func (r *RedisRedemptionLedger) key(address string) string {
	return redemptionKeyPrefix + strings.ToLower(address)
}

func (r *RedisRedemptionLedger) Has(ctx context.Context, address string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(address)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Mark writes the redemption record once. SetNX keeps the original
// timestamp, so a second mark is indistinguishable from the first.
func (r *RedisRedemptionLedger) Mark(ctx context.Context, address string) error {
	record := models.RedemptionRecord{
		Address:    strings.ToLower(address),
		RedeemedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.SetNX(ctx, r.key(address), data, 0).Err()
}

// MemoryRedemptionLedger backs development and tests, mirroring the
// dev-mode in-memory set of the production service.
type MemoryRedemptionLedger struct {
	mu      sync.Mutex
	records map[string]models.RedemptionRecord
}

func NewMemoryRedemptionLedger() *MemoryRedemptionLedger {
	return &MemoryRedemptionLedger{records: make(map[string]models.RedemptionRecord)}
}

func (m *MemoryRedemptionLedger) Has(_ context.Context, address string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.records[strings.ToLower(address)]
	return ok, nil
}

func (m *MemoryRedemptionLedger) Mark(_ context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(address)
	if _, ok := m.records[key]; ok {
		return nil
	}
	m.records[key] = models.RedemptionRecord{Address: key, RedeemedAt: time.Now().UTC()}
	return nil
}

// Record returns the stored record for a lowercased address, for tests.
func (m *MemoryRedemptionLedger) Record(address string) (models.RedemptionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[strings.ToLower(address)]
	return rec, ok
}
