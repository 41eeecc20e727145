package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/redis/go-redis/v9"
)

// DefaultPlanCatalogKey is the Redis key holding the active catalog
const DefaultPlanCatalogKey = "bsc:plans:active"

// RedisPlanCatalogCache stores the active plan catalog as one JSON value
type RedisPlanCatalogCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisPlanCatalogCache creates a cache over an existing client.
// A zero ttl keeps the entry until it is invalidated.
func NewRedisPlanCatalogCache(client redis.Cmdable, ttl time.Duration) *RedisPlanCatalogCache {
	return &RedisPlanCatalogCache{
		client: client,
		key:    DefaultPlanCatalogKey,
		ttl:    ttl,
	}
}

// Get returns the cached catalog. A missing key is a miss, not an error.
func (c *RedisPlanCatalogCache) Get(ctx context.Context) ([]enrollment.BenefitPlan, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read plan catalog: %w", err)
	}

	var plans []enrollment.BenefitPlan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, false, fmt.Errorf("failed to decode plan catalog: %w", err)
	}
	return plans, true, nil
}

// Set replaces the cached catalog
func (c *RedisPlanCatalogCache) Set(ctx context.Context, plans []enrollment.BenefitPlan) error {
	data, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("failed to encode plan catalog: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write plan catalog: %w", err)
	}
	return nil
}

// Invalidate drops the cached catalog
func (c *RedisPlanCatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate plan catalog: %w", err)
	}
	return nil
}

// InMemoryPlanCatalogCache keeps the catalog in process memory.
// It does not share state across instances.
type InMemoryPlanCatalogCache struct {
	mu        sync.RWMutex
	plans     []enrollment.BenefitPlan
	expiresAt time.Time
	loaded    bool
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemoryPlanCatalogCache creates an in-memory cache.
// A zero ttl keeps the entry until it is invalidated.
func NewInMemoryPlanCatalogCache(ttl time.Duration) *InMemoryPlanCatalogCache {
	return &InMemoryPlanCatalogCache{ttl: ttl, now: time.Now}
}

// Get returns a copy of the cached catalog
func (c *InMemoryPlanCatalogCache) Get(_ context.Context) ([]enrollment.BenefitPlan, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded || (c.ttl > 0 && c.now().After(c.expiresAt)) {
		return nil, false, nil
	}
	out := make([]enrollment.BenefitPlan, len(c.plans))
	copy(out, c.plans)
	return out, true, nil
}

// Set replaces the cached catalog
func (c *InMemoryPlanCatalogCache) Set(_ context.Context, plans []enrollment.BenefitPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.plans = make([]enrollment.BenefitPlan, len(plans))
	copy(c.plans, plans)
	c.loaded = true
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

// Invalidate drops the cached catalog
func (c *InMemoryPlanCatalogCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.plans = nil
	c.loaded = false
	return nil
}

var (
	_ appenrollment.PlanCatalogCache = (*RedisPlanCatalogCache)(nil)
	_ appenrollment.PlanCatalogCache = (*InMemoryPlanCatalogCache)(nil)
)
